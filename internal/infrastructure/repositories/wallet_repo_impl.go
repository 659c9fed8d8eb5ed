package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"shipstack.backend/internal/domain/entities"
	domainerrors "shipstack.backend/internal/domain/errors"
	"shipstack.backend/internal/infrastructure/models"
	"shipstack.backend/pkg/utils"
)

// WalletRepositoryImpl implements WalletRepository
type WalletRepositoryImpl struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepositoryImpl {
	return &WalletRepositoryImpl{db: db}
}

func (r *WalletRepositoryImpl) Create(ctx context.Context, wallet *entities.Wallet) error {
	if wallet.ID == uuid.Nil {
		wallet.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	m := &models.Wallet{
		ID:        wallet.ID,
		UserID:    wallet.UserID,
		Currency:  wallet.Currency,
		Status:    string(wallet.Status),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	wallet.CreatedAt = m.CreatedAt
	wallet.UpdatedAt = m.UpdatedAt
	return nil
}

// GetActiveByUserID returns the user's wallet unless it is closed.
// Inside a locked unit-of-work scope this read takes the wallet row
// lock that serializes balance-check-then-debit.
func (r *WalletRepositoryImpl) GetActiveByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	var m models.Wallet
	err := GetDB(ctx, r.db).
		Where("user_id = ? AND status <> ?", userID, string(entities.WalletStatusClosed)).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.ErrWalletNotFound
	}
	if err != nil {
		return nil, err
	}
	return walletToEntity(&m), nil
}

func walletToEntity(m *models.Wallet) *entities.Wallet {
	return &entities.Wallet{
		ID:        m.ID,
		UserID:    m.UserID,
		Currency:  m.Currency,
		Status:    entities.WalletStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// parseAmount converts a stored decimal column back to a Decimal.
// Stored values are always written by this package, so a parse failure
// means a corrupted row; treat it as zero rather than poisoning sums.
func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
