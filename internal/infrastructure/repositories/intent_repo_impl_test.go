package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"shipstack.backend/internal/domain/entities"
	domainerrors "shipstack.backend/internal/domain/errors"
)

func TestIntentRepository_FullFlow(t *testing.T) {
	db := newTestDB(t)
	createOrderTables(t, db)
	repo := NewIntentRepository(db)
	ctx := context.Background()

	intent := &entities.OrderIntent{
		UserID:        uuid.New(),
		WarehouseID:   uuid.New(),
		OrderUniqueID: "ORD-5001",
		Amount:        decimal.RequireFromString("320.50"),
		Status:        entities.IntentStatusPending,
	}
	require.NoError(t, repo.Create(ctx, intent))
	require.NotEqual(t, uuid.Nil, intent.ID)

	require.NoError(t, repo.MarkCommitted(ctx, intent.ID, "UPL-1", "WB-1"))

	stale, err := repo.GetStalePending(ctx, time.Now().Add(time.Minute), 10)
	require.NoError(t, err)
	require.Empty(t, stale, "committed intents are not stale")

	require.ErrorIs(t, repo.MarkFailed(ctx, uuid.New(), "boom"), domainerrors.ErrNotFound)
}

func TestIntentRepository_FailureStates(t *testing.T) {
	db := newTestDB(t)
	createOrderTables(t, db)
	repo := NewIntentRepository(db)
	ctx := context.Background()

	failed := &entities.OrderIntent{
		UserID:        uuid.New(),
		WarehouseID:   uuid.New(),
		OrderUniqueID: "ORD-5002",
		Amount:        decimal.RequireFromString("100"),
		Status:        entities.IntentStatusPending,
	}
	require.NoError(t, repo.Create(ctx, failed))
	require.NoError(t, repo.MarkFailed(ctx, failed.ID, "carrier rejected manifest"))

	stuck := &entities.OrderIntent{
		UserID:        uuid.New(),
		WarehouseID:   uuid.New(),
		OrderUniqueID: "ORD-5003",
		Amount:        decimal.RequireFromString("100"),
		Status:        entities.IntentStatusPending,
	}
	require.NoError(t, repo.Create(ctx, stuck))
	require.NoError(t, repo.MarkStuck(ctx, stuck.ID, "carrier committed but local tx failed"))

	stale, err := repo.GetStalePending(ctx, time.Now().Add(time.Minute), 10)
	require.NoError(t, err)
	require.Empty(t, stale, "failed and stuck are terminal")
}

func TestIntentRepository_StalePending(t *testing.T) {
	db := newTestDB(t)
	createOrderTables(t, db)
	repo := NewIntentRepository(db)
	ctx := context.Background()

	staleID := uuid.New()
	mustExec(t, db, `INSERT INTO order_intents(
		id,user_id,warehouse_id,order_unique_id,amount,status,upload_wbn,waybill,failure_reason,created_at,updated_at
	) VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		staleID.String(), uuid.NewString(), uuid.NewString(), "ORD-stale", "50.00", "pending", "", "", "",
		time.Now().Add(-time.Hour), time.Now().Add(-time.Hour))

	fresh := &entities.OrderIntent{
		UserID:        uuid.New(),
		WarehouseID:   uuid.New(),
		OrderUniqueID: "ORD-fresh",
		Amount:        decimal.RequireFromString("50"),
		Status:        entities.IntentStatusPending,
	}
	require.NoError(t, repo.Create(ctx, fresh))

	stale, err := repo.GetStalePending(ctx, time.Now().Add(-10*time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	require.Equal(t, staleID, stale[0].ID)
	require.Equal(t, "ORD-stale", stale[0].OrderUniqueID)
}
