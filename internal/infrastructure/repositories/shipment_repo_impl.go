package repositories

import (
	"context"
	"encoding/json"
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

// ShipmentRepositoryImpl implements ShipmentRepository
type ShipmentRepositoryImpl struct {
	db *gorm.DB
}

func NewShipmentRepository(db *gorm.DB) *ShipmentRepositoryImpl {
	return &ShipmentRepositoryImpl{db: db}
}

func (r *ShipmentRepositoryImpl) Create(ctx context.Context, shipment *entities.Shipment) error {
	if shipment.ID == uuid.Nil {
		shipment.ID = utils.GenerateUUIDv7()
	}
	details, err := json.Marshal(shipment.ProductDetails)
	if err != nil {
		return err
	}
	now := time.Now()
	m := &models.Shipment{
		ID:                shipment.ID,
		OrderID:           shipment.OrderID,
		TrackingNumber:    shipment.TrackingNumber,
		Waybill:           shipment.Waybill,
		ShipmentStatus:    shipment.Status,
		WeightGrams:       shipment.WeightGrams.StringFixed(2),
		CODAmount:         shipment.CODAmount.StringFixed(2),
		ProductDetails:    string(details),
		IsLabelDownloaded: shipment.IsLabelDownloaded,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	return GetDB(ctx, r.db).Create(m).Error
}

func (r *ShipmentRepositoryImpl) GetByWaybill(ctx context.Context, waybill string) (*entities.Shipment, error) {
	var m models.Shipment
	err := GetDB(ctx, r.db).Where("waybill = ?", waybill).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return shipmentToEntity(&m), nil
}

func (r *ShipmentRepositoryImpl) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entities.Shipment, error) {
	var ms []models.Shipment
	if err := GetDB(ctx, r.db).Where("order_id = ?", orderID).Find(&ms).Error; err != nil {
		return nil, err
	}

	var shipments []*entities.Shipment
	for _, m := range ms {
		model := m
		shipments = append(shipments, shipmentToEntity(&model))
	}
	return shipments, nil
}

func (r *ShipmentRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.updateBy(ctx, "id = ?", id, map[string]interface{}{"shipment_status": status})
}

func (r *ShipmentRepositoryImpl) UpdateWeight(ctx context.Context, waybill string, weightGrams decimal.Decimal) error {
	return r.updateBy(ctx, "waybill = ?", waybill, map[string]interface{}{"weight": weightGrams.StringFixed(2)})
}

func (r *ShipmentRepositoryImpl) MarkLabelDownloaded(ctx context.Context, waybill string) error {
	return r.updateBy(ctx, "waybill = ?", waybill, map[string]interface{}{"is_label_downloaded": true})
}

func (r *ShipmentRepositoryImpl) updateBy(ctx context.Context, cond string, arg interface{}, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	res := GetDB(ctx, r.db).Model(&models.Shipment{}).Where(cond, arg).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func shipmentToEntity(m *models.Shipment) *entities.Shipment {
	var details entities.ProductDetails
	if m.ProductDetails != "" {
		_ = json.Unmarshal([]byte(m.ProductDetails), &details)
	}
	return &entities.Shipment{
		ID:                m.ID,
		OrderID:           m.OrderID,
		TrackingNumber:    m.TrackingNumber,
		Waybill:           m.Waybill,
		Status:            m.ShipmentStatus,
		WeightGrams:       parseAmount(m.WeightGrams),
		CODAmount:         parseAmount(m.CODAmount),
		ProductDetails:    details,
		IsLabelDownloaded: m.IsLabelDownloaded,
		CreatedAt:         m.CreatedAt,
	}
}
