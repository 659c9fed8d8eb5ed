package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"shipstack.backend/internal/domain/entities"
	"shipstack.backend/internal/domain/repositories"
)

// WalletUsecase exposes wallet reads. The balance is never stored: it
// is derived from completed ledger entries on every call.
type WalletUsecase struct {
	walletRepo repositories.WalletRepository
	ledgerRepo repositories.LedgerRepository
}

func NewWalletUsecase(walletRepo repositories.WalletRepository, ledgerRepo repositories.LedgerRepository) *WalletUsecase {
	return &WalletUsecase{
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
	}
}

// GetBalance returns the derived balance for the user's active wallet
func (u *WalletUsecase) GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	wallet, err := u.walletRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	credits, debits, err := u.ledgerRepo.CompletedTotals(ctx, wallet.ID)
	if err != nil {
		return decimal.Zero, err
	}
	return credits.Sub(debits), nil
}

// GetWallet returns the user's active wallet
func (u *WalletUsecase) GetWallet(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	return u.walletRepo.GetActiveByUserID(ctx, userID)
}
