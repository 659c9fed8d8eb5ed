package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"shipstack.backend/internal/domain/entities"
	domainerrors "shipstack.backend/internal/domain/errors"
	"shipstack.backend/internal/usecases"
)

func TestWarehouseUsecase_CreateWarehouse_RegistersWithCarrierFirst(t *testing.T) {
	warehouseRepo := new(MockWarehouseRepository)
	carrierClient := new(MockCarrierClient)
	uc := usecases.NewWarehouseUsecase(warehouseRepo, carrierClient)

	userID := uuid.New()
	carrierClient.On("RegisterWarehouse", mock.Anything,
		"Main Hub", "Ravi", "9876543210", "12 Industrial Estate", "Bengaluru", "560001", "India").
		Return(nil).Once()
	warehouseRepo.On("Create", mock.Anything, mock.MatchedBy(func(w *entities.Warehouse) bool {
		return w.UserID == userID && w.FacilityName == "Main Hub" && w.Country == "India"
	})).Return(nil).Once()

	warehouse, err := uc.CreateWarehouse(context.Background(), userID, &entities.CreateWarehouseInput{
		FacilityName:   "Main Hub",
		ContactPerson:  "Ravi",
		Phone:          "9876543210",
		PickupLocation: "12 Industrial Estate",
		City:           "Bengaluru",
		State:          "Karnataka",
		Pincode:        "560001",
	})
	require.NoError(t, err)
	assert.Equal(t, "India", warehouse.Country, "country defaults when omitted")
	warehouseRepo.AssertExpectations(t)
	carrierClient.AssertExpectations(t)
}

func TestWarehouseUsecase_CreateWarehouse_CarrierFailureDoesNotPersist(t *testing.T) {
	warehouseRepo := new(MockWarehouseRepository)
	carrierClient := new(MockCarrierClient)
	uc := usecases.NewWarehouseUsecase(warehouseRepo, carrierClient)

	carrierClient.On("RegisterWarehouse", mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).
		Return(domainerrors.ErrCarrierUnavailable).Once()

	_, err := uc.CreateWarehouse(context.Background(), uuid.New(), &entities.CreateWarehouseInput{
		FacilityName:   "Main Hub",
		ContactPerson:  "Ravi",
		Phone:          "9876543210",
		PickupLocation: "12 Industrial Estate",
		City:           "Bengaluru",
		Pincode:        "560001",
	})
	assert.ErrorIs(t, err, domainerrors.ErrCarrierUnavailable)
	warehouseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestWarehouseUsecase_ListWarehouses(t *testing.T) {
	warehouseRepo := new(MockWarehouseRepository)
	uc := usecases.NewWarehouseUsecase(warehouseRepo, new(MockCarrierClient))

	userID := uuid.New()
	warehouseRepo.On("ListByUserID", mock.Anything, userID).
		Return([]*entities.Warehouse{
			{ID: uuid.New(), UserID: userID, FacilityName: "Main Hub"},
		}, nil).Once()

	warehouses, err := uc.ListWarehouses(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, warehouses, 1)
	assert.Equal(t, "Main Hub", warehouses[0].FacilityName)
}
