package usecases

import (
	"context"

	"github.com/google/uuid"
	"shipstack.backend/internal/domain/entities"
	"shipstack.backend/internal/domain/repositories"
)

// warehouseRegistrar registers pickup locations with the carrier
type warehouseRegistrar interface {
	RegisterWarehouse(ctx context.Context, name, contactPerson, phone, address, city, pin, country string) error
}

// WarehouseUsecase manages pickup locations. A warehouse must be known
// to the carrier before it can be named on a manifest, so creation
// registers it upstream first and only persists on success.
type WarehouseUsecase struct {
	warehouseRepo repositories.WarehouseRepository
	carrier       warehouseRegistrar
}

func NewWarehouseUsecase(warehouseRepo repositories.WarehouseRepository, carrierClient warehouseRegistrar) *WarehouseUsecase {
	return &WarehouseUsecase{
		warehouseRepo: warehouseRepo,
		carrier:       carrierClient,
	}
}

// CreateWarehouse registers a pickup location with the carrier and
// stores it.
func (u *WarehouseUsecase) CreateWarehouse(ctx context.Context, userID uuid.UUID, input *entities.CreateWarehouseInput) (*entities.Warehouse, error) {
	country := input.Country
	if country == "" {
		country = "India"
	}

	if err := u.carrier.RegisterWarehouse(ctx,
		input.FacilityName, input.ContactPerson, input.Phone,
		input.PickupLocation, input.City, input.Pincode, country,
	); err != nil {
		return nil, err
	}

	warehouse := &entities.Warehouse{
		UserID:         userID,
		FacilityName:   input.FacilityName,
		ContactPerson:  input.ContactPerson,
		Phone:          input.Phone,
		PickupLocation: input.PickupLocation,
		City:           input.City,
		State:          input.State,
		Pincode:        input.Pincode,
		Country:        country,
	}
	if err := u.warehouseRepo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// ListWarehouses returns the caller's pickup locations
func (u *WarehouseUsecase) ListWarehouses(ctx context.Context, userID uuid.UUID) ([]*entities.Warehouse, error) {
	return u.warehouseRepo.ListByUserID(ctx, userID)
}
