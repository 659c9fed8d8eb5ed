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

// OrderRepositoryImpl implements OrderRepository
type OrderRepositoryImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepositoryImpl {
	return &OrderRepositoryImpl{db: db}
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, order *entities.Order) error {
	if order.ID == uuid.Nil {
		order.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	if order.OrderDate.IsZero() {
		order.OrderDate = now
	}
	m := &models.Order{
		ID:             order.ID,
		OrderUniqueID:  order.OrderUniqueID,
		CustomerID:     order.CustomerID,
		WarehouseID:    order.WarehouseID,
		ClientID:       order.ClientID,
		PaymentMode:    order.PaymentMode,
		PackagesCount:  order.PackagesCount,
		TotalCODAmount: order.TotalCODAmount.StringFixed(2),
		UploadWBN:      order.UploadWBN,
		OrderDate:      order.OrderDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return GetDB(ctx, r.db).Create(m).Error
}

func (r *OrderRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	var m models.Order
	err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return orderToEntity(&m), nil
}

func (r *OrderRepositoryImpl) GetByUniqueID(ctx context.Context, orderUniqueID string) (*entities.Order, error) {
	var m models.Order
	err := GetDB(ctx, r.db).Where("order_unique_id = ?", orderUniqueID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return orderToEntity(&m), nil
}

func (r *OrderRepositoryImpl) ExistsUniqueID(ctx context.Context, orderUniqueID string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.Order{}).
		Where("order_unique_id = ?", orderUniqueID).
		Count(&count).Error
	return count > 0, err
}

func (r *OrderRepositoryImpl) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entities.Order, error) {
	var ms []models.Order
	if err := GetDB(ctx, r.db).
		Where("client_id = ?", clientID).
		Order("order_date DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return ordersToEntities(ms), nil
}

func (r *OrderRepositoryImpl) ListAll(ctx context.Context) ([]*entities.Order, error) {
	var ms []models.Order
	if err := GetDB(ctx, r.db).Order("order_date DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return ordersToEntities(ms), nil
}

func (r *OrderRepositoryImpl) UpdatePayment(ctx context.Context, id uuid.UUID, paymentMode string, codAmount decimal.Decimal) error {
	fields := map[string]interface{}{
		"payment_mode":     paymentMode,
		"total_cod_amount": codAmount.StringFixed(2),
		"updated_at":       time.Now(),
	}
	res := GetDB(ctx, r.db).Model(&models.Order{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func ordersToEntities(ms []models.Order) []*entities.Order {
	var orders []*entities.Order
	for _, m := range ms {
		model := m
		orders = append(orders, orderToEntity(&model))
	}
	return orders
}

func orderToEntity(m *models.Order) *entities.Order {
	return &entities.Order{
		ID:             m.ID,
		OrderUniqueID:  m.OrderUniqueID,
		CustomerID:     m.CustomerID,
		WarehouseID:    m.WarehouseID,
		ClientID:       m.ClientID,
		PaymentMode:    m.PaymentMode,
		PackagesCount:  m.PackagesCount,
		TotalCODAmount: parseAmount(m.TotalCODAmount),
		UploadWBN:      m.UploadWBN,
		OrderDate:      m.OrderDate,
		CreatedAt:      m.CreatedAt,
	}
}
