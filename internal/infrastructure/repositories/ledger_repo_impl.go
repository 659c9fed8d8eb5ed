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

// LedgerRepositoryImpl implements LedgerRepository
type LedgerRepositoryImpl struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepositoryImpl {
	return &LedgerRepositoryImpl{db: db}
}

func (r *LedgerRepositoryImpl) CreateEntry(ctx context.Context, entry *entities.LedgerEntry) error {
	if !entry.Amount.IsPositive() {
		return domainerrors.ErrInvalidAmount
	}
	if entry.ID == uuid.Nil {
		entry.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	m := &models.LedgerEntry{
		ID:              entry.ID,
		WalletID:        entry.WalletID,
		TransactionType: string(entry.Type),
		Amount:          entry.Amount.StringFixed(2),
		Description:     entry.Description,
		TransactionID:   entry.TransactionID,
		Status:          string(entry.Status),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	} else {
		m.CreatedAt = entry.CreatedAt
	}
	return GetDB(ctx, r.db).Create(m).Error
}

func (r *LedgerRepositoryImpl) GetByTransactionID(ctx context.Context, transactionID string) (*entities.LedgerEntry, error) {
	var m models.LedgerEntry
	err := GetDB(ctx, r.db).Where("transaction_id = ?", transactionID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ledgerToEntity(&m), nil
}

// MarkCompleted transitions a pending entry to completed. done=false
// means the entry was already terminal (or missing), which callers
// treat as a no-op so duplicate callback delivery stays harmless.
func (r *LedgerRepositoryImpl) MarkCompleted(ctx context.Context, transactionID string) (bool, error) {
	return r.transition(ctx, transactionID, entities.EntryStatusCompleted)
}

// MarkFailed transitions a pending entry to failed
func (r *LedgerRepositoryImpl) MarkFailed(ctx context.Context, transactionID string) (bool, error) {
	return r.transition(ctx, transactionID, entities.EntryStatusFailed)
}

func (r *LedgerRepositoryImpl) transition(ctx context.Context, transactionID string, to entities.EntryStatus) (bool, error) {
	res := GetDB(ctx, r.db).Model(&models.LedgerEntry{}).
		Where("transaction_id = ? AND status = ?", transactionID, string(entities.EntryStatusPending)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CompletedTotals sums completed credits and debits for a wallet. The
// sum runs over decimal values in Go so no precision is lost to float
// aggregation.
func (r *LedgerRepositoryImpl) CompletedTotals(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	var rows []models.LedgerEntry
	err := GetDB(ctx, r.db).
		Select("transaction_type", "amount").
		Where("wallet_id = ? AND status = ?", walletID, string(entities.EntryStatusCompleted)).
		Find(&rows).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	credits, debits := decimal.Zero, decimal.Zero
	for _, row := range rows {
		amount := parseAmount(row.Amount)
		if row.TransactionType == string(entities.EntryTypeCredit) {
			credits = credits.Add(amount)
		} else {
			debits = debits.Add(amount)
		}
	}
	return credits, debits, nil
}

func (r *LedgerRepositoryImpl) GetStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*entities.LedgerEntry, error) {
	var ms []models.LedgerEntry
	if err := GetDB(ctx, r.db).
		Where("status = ? AND created_at <= ?", string(entities.EntryStatusPending), olderThan).
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var entries []*entities.LedgerEntry
	for _, m := range ms {
		model := m
		entries = append(entries, ledgerToEntity(&model))
	}
	return entries, nil
}

func (r *LedgerRepositoryImpl) FailEntries(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Model(&models.LedgerEntry{}).
		Where("id IN ? AND status = ?", ids, string(entities.EntryStatusPending)).
		Updates(map[string]interface{}{
			"status":     string(entities.EntryStatusFailed),
			"updated_at": time.Now(),
		}).Error
}

func ledgerToEntity(m *models.LedgerEntry) *entities.LedgerEntry {
	return &entities.LedgerEntry{
		ID:            m.ID,
		WalletID:      m.WalletID,
		Type:          entities.EntryType(m.TransactionType),
		Amount:        parseAmount(m.Amount),
		Description:   m.Description,
		TransactionID: m.TransactionID,
		Status:        entities.EntryStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
