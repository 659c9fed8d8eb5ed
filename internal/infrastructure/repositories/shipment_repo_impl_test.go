package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"shipstack.backend/internal/domain/entities"
	domainerrors "shipstack.backend/internal/domain/errors"
)

func TestShipmentRepository_FullFlow(t *testing.T) {
	db := newTestDB(t)
	createOrderTables(t, db)
	repo := NewShipmentRepository(db)
	ctx := context.Background()

	orderID := uuid.New()
	productID := uuid.New()
	shipment := &entities.Shipment{
		OrderID:        orderID,
		TrackingNumber: "WB-1001",
		Waybill:        "WB-1001",
		Status:         "Manifested",
		WeightGrams:    decimal.RequireFromString("500"),
		CODAmount:      decimal.RequireFromString("750.00"),
		ProductDetails: entities.ProductDetails{
			ShippingMode: entities.ShippingModeExpress,
			Dimensions:   entities.Dimensions{Height: 10, Width: 20, Length: 30},
			Fragile:      true,
			Items: []entities.LineItem{{
				ProductID:   productID,
				Quantity:    2,
				Enriched:    true,
				Description: "Steel bottle",
				Category:    "Kitchen",
				SKU:         "SKU-9",
				Price:       decimal.RequireFromString("349.00"),
			}},
		},
	}
	require.NoError(t, repo.Create(ctx, shipment))

	got, err := repo.GetByWaybill(ctx, "WB-1001")
	require.NoError(t, err)
	require.Equal(t, orderID, got.OrderID)
	require.Equal(t, "Manifested", got.Status)
	require.Equal(t, entities.ShippingModeExpress, got.ProductDetails.ShippingMode)
	require.Equal(t, 30.0, got.ProductDetails.Dimensions.Length)
	require.Len(t, got.ProductDetails.Items, 1)
	require.True(t, got.ProductDetails.Items[0].Enriched)
	require.Equal(t, productID, got.ProductDetails.Items[0].ProductID)
	require.True(t, got.ProductDetails.Items[0].Price.Equal(decimal.RequireFromString("349")))

	require.NoError(t, repo.UpdateStatus(ctx, got.ID, "In Transit"))
	require.NoError(t, repo.UpdateWeight(ctx, "WB-1001", decimal.RequireFromString("750")))
	require.NoError(t, repo.MarkLabelDownloaded(ctx, "WB-1001"))

	got, err = repo.GetByWaybill(ctx, "WB-1001")
	require.NoError(t, err)
	require.Equal(t, "In Transit", got.Status)
	require.True(t, got.WeightGrams.Equal(decimal.RequireFromString("750")))
	require.True(t, got.IsLabelDownloaded)

	list, err := repo.ListByOrderID(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestShipmentRepository_MissingRows(t *testing.T) {
	db := newTestDB(t)
	createOrderTables(t, db)
	repo := NewShipmentRepository(db)
	ctx := context.Background()

	_, err := repo.GetByWaybill(ctx, "WB-missing")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	require.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), "Delivered"), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.UpdateWeight(ctx, "WB-missing", decimal.Zero), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.MarkLabelDownloaded(ctx, "WB-missing"), domainerrors.ErrNotFound)
}
