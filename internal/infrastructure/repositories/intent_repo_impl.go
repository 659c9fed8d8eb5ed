package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"shipstack.backend/internal/domain/entities"
	domainerrors "shipstack.backend/internal/domain/errors"
	"shipstack.backend/internal/infrastructure/models"
	"shipstack.backend/pkg/utils"
)

// IntentRepositoryImpl implements IntentRepository
type IntentRepositoryImpl struct {
	db *gorm.DB
}

func NewIntentRepository(db *gorm.DB) *IntentRepositoryImpl {
	return &IntentRepositoryImpl{db: db}
}

func (r *IntentRepositoryImpl) Create(ctx context.Context, intent *entities.OrderIntent) error {
	if intent.ID == uuid.Nil {
		intent.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	m := &models.OrderIntent{
		ID:            intent.ID,
		UserID:        intent.UserID,
		WarehouseID:   intent.WarehouseID,
		OrderUniqueID: intent.OrderUniqueID,
		Amount:        intent.Amount.StringFixed(2),
		Status:        string(intent.Status),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	intent.CreatedAt = now
	return GetDB(ctx, r.db).Create(m).Error
}

func (r *IntentRepositoryImpl) MarkCommitted(ctx context.Context, id uuid.UUID, uploadWBN, waybill string) error {
	return r.update(ctx, id, map[string]interface{}{
		"status":     string(entities.IntentStatusCommitted),
		"upload_wbn": uploadWBN,
		"waybill":    waybill,
	})
}

func (r *IntentRepositoryImpl) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return r.update(ctx, id, map[string]interface{}{
		"status":         string(entities.IntentStatusFailed),
		"failure_reason": reason,
	})
}

func (r *IntentRepositoryImpl) MarkStuck(ctx context.Context, id uuid.UUID, reason string) error {
	return r.update(ctx, id, map[string]interface{}{
		"status":         string(entities.IntentStatusStuck),
		"failure_reason": reason,
	})
}

func (r *IntentRepositoryImpl) update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	res := GetDB(ctx, r.db).Model(&models.OrderIntent{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *IntentRepositoryImpl) GetStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*entities.OrderIntent, error) {
	var ms []models.OrderIntent
	if err := GetDB(ctx, r.db).
		Where("status = ? AND created_at <= ?", string(entities.IntentStatusPending), olderThan).
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var intents []*entities.OrderIntent
	for _, m := range ms {
		intents = append(intents, intentToEntity(&m))
	}
	return intents, nil
}

func intentToEntity(m *models.OrderIntent) *entities.OrderIntent {
	return &entities.OrderIntent{
		ID:            m.ID,
		UserID:        m.UserID,
		WarehouseID:   m.WarehouseID,
		OrderUniqueID: m.OrderUniqueID,
		Amount:        parseAmount(m.Amount),
		Status:        entities.IntentStatus(m.Status),
		UploadWBN:     m.UploadWBN,
		Waybill:       m.Waybill,
		FailureReason: m.FailureReason,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
