package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"shipstack.backend/internal/domain/entities"
	domainerrors "shipstack.backend/internal/domain/errors"
	"shipstack.backend/internal/infrastructure/models"
	"shipstack.backend/pkg/utils"
)

// WarehouseRepositoryImpl implements WarehouseRepository
type WarehouseRepositoryImpl struct {
	db *gorm.DB
}

func NewWarehouseRepository(db *gorm.DB) *WarehouseRepositoryImpl {
	return &WarehouseRepositoryImpl{db: db}
}

func (r *WarehouseRepositoryImpl) Create(ctx context.Context, warehouse *entities.Warehouse) error {
	if warehouse.ID == uuid.Nil {
		warehouse.ID = utils.GenerateUUIDv7()
	}
	if warehouse.Country == "" {
		warehouse.Country = "India"
	}
	now := time.Now()
	m := &models.Warehouse{
		ID:             warehouse.ID,
		UserID:         warehouse.UserID,
		FacilityName:   warehouse.FacilityName,
		ContactPerson:  warehouse.ContactPerson,
		Phone:          warehouse.Phone,
		PickupLocation: warehouse.PickupLocation,
		City:           warehouse.City,
		State:          warehouse.State,
		Pincode:        warehouse.Pincode,
		Country:        warehouse.Country,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return GetDB(ctx, r.db).Create(m).Error
}

func (r *WarehouseRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Warehouse, error) {
	var m models.Warehouse
	err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return warehouseToEntity(&m), nil
}

func (r *WarehouseRepositoryImpl) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Warehouse, error) {
	var ms []models.Warehouse
	if err := GetDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var warehouses []*entities.Warehouse
	for _, m := range ms {
		model := m
		warehouses = append(warehouses, warehouseToEntity(&model))
	}
	return warehouses, nil
}

func warehouseToEntity(m *models.Warehouse) *entities.Warehouse {
	return &entities.Warehouse{
		ID:             m.ID,
		UserID:         m.UserID,
		FacilityName:   m.FacilityName,
		ContactPerson:  m.ContactPerson,
		Phone:          m.Phone,
		PickupLocation: m.PickupLocation,
		City:           m.City,
		State:          m.State,
		Pincode:        m.Pincode,
		Country:        m.Country,
		CreatedAt:      m.CreatedAt,
	}
}
