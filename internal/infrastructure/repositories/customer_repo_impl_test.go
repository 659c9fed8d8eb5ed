package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"shipstack.backend/internal/domain/entities"
	domainerrors "shipstack.backend/internal/domain/errors"
)

func TestCustomerRepository_FullFlow(t *testing.T) {
	db := newTestDB(t)
	createCustomerTable(t, db)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	customer := &entities.Customer{
		FirstName:            "Ravi",
		LastName:             "Kumar",
		Email:                "ravi@example.com",
		MobileNumber:         "9876543210",
		ShippingAddressLine1: "12 MG Road",
		ShippingCity:         "Bengaluru",
		ShippingState:        "Karnataka",
		ShippingPincode:      "560001",
	}
	require.NoError(t, repo.Create(ctx, customer))
	require.NotEqual(t, uuid.Nil, customer.ID)

	got, err := repo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	require.Equal(t, "Ravi", got.FirstName)
	require.Equal(t, "560001", got.ShippingPincode)

	got.ShippingCity = "Mysuru"
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	require.Equal(t, "Mysuru", got.ShippingCity)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	require.ErrorIs(t, repo.Update(ctx, &entities.Customer{ID: uuid.New(), FirstName: "x"}), domainerrors.ErrNotFound)
}
