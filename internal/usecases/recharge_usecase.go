package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"shipstack.backend/internal/domain/entities"
	domainerrors "shipstack.backend/internal/domain/errors"
	"shipstack.backend/internal/domain/repositories"
	"shipstack.backend/internal/infrastructure/gateway"
	"shipstack.backend/pkg/logger"
	"shipstack.backend/pkg/utils"
)

// paymentLinker is the slice of the gateway client the recharge flow needs
type paymentLinker interface {
	CreatePaymentLink(ctx context.Context, amount decimal.Decimal, transactionID, customerName, customerEmail, customerContact string) (*gateway.PaymentLink, error)
}

// RechargeLink is the response to a recharge initiation
type RechargeLink struct {
	TransactionID string `json:"transactionId"`
	PaymentURL    string `json:"paymentUrl"`
}

// RechargeUsecase manages wallet top-ups: a pending credit is posted
// first, then the gateway issues a hosted payment link whose callback
// settles the entry. The recharge expiry job fails entries whose
// callback never arrives.
type RechargeUsecase struct {
	userRepo   repositories.UserRepository
	walletRepo repositories.WalletRepository
	ledgerRepo repositories.LedgerRepository
	gateway    paymentLinker
}

func NewRechargeUsecase(
	userRepo repositories.UserRepository,
	walletRepo repositories.WalletRepository,
	ledgerRepo repositories.LedgerRepository,
	gw paymentLinker,
) *RechargeUsecase {
	return &RechargeUsecase{
		userRepo:   userRepo,
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
		gateway:    gw,
	}
}

// CreateRechargeLink posts a pending credit and returns the gateway's
// hosted payment URL. If the gateway cannot issue a link the pending
// entry is failed immediately so it never waits out the sweep.
func (u *RechargeUsecase) CreateRechargeLink(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*RechargeLink, error) {
	if !amount.IsPositive() {
		return nil, domainerrors.ErrInvalidAmount
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	wallet, err := u.walletRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	transactionID := utils.GenerateTransactionID()
	entry := &entities.LedgerEntry{
		WalletID:      wallet.ID,
		Type:          entities.EntryTypeCredit,
		Amount:        amount,
		Description:   "Wallet recharge",
		TransactionID: transactionID,
		Status:        entities.EntryStatusPending,
	}
	if err := u.ledgerRepo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	link, err := u.gateway.CreatePaymentLink(ctx, amount, transactionID, user.Name, user.Email, user.ContactNumber)
	if err != nil {
		if _, failErr := u.ledgerRepo.MarkFailed(ctx, transactionID); failErr != nil {
			logger.Error(ctx, "failed to void recharge entry after gateway error",
				zap.String("transaction_id", transactionID), zap.Error(failErr))
		}
		return nil, domainerrors.BadGateway("could not create payment link", err)
	}

	return &RechargeLink{
		TransactionID: transactionID,
		PaymentURL:    link.ShortURL,
	}, nil
}

// HandleCallback settles a pending recharge from the gateway redirect.
// Unknown transaction ids and repeated callbacks are deliberate no-ops:
// the gateway retries callbacks and we must never 5xx on them.
func (u *RechargeUsecase) HandleCallback(ctx context.Context, transactionID, status string) error {
	entry, err := u.ledgerRepo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			logger.Warn(ctx, "recharge callback for unknown transaction",
				zap.String("transaction_id", transactionID))
			return nil
		}
		return err
	}

	var done bool
	if status == "paid" {
		done, err = u.ledgerRepo.MarkCompleted(ctx, transactionID)
	} else {
		done, err = u.ledgerRepo.MarkFailed(ctx, transactionID)
	}
	if err != nil {
		return err
	}
	if !done {
		logger.Info(ctx, "recharge callback ignored, entry already terminal",
			zap.String("transaction_id", transactionID),
			zap.String("status", string(entry.Status)))
	}
	return nil
}
