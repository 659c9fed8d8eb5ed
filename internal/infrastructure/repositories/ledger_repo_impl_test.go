package repositories

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"shipstack.backend/internal/domain/entities"
	domainerrors "shipstack.backend/internal/domain/errors"
)

func TestLedgerRepository_FullFlow(t *testing.T) {
	db := newTestDB(t)
	createWalletTables(t, db)
	repo := NewLedgerRepository(db)
	ctx := context.Background()

	walletID := uuid.New()
	entry := &entities.LedgerEntry{
		WalletID:      walletID,
		Type:          entities.EntryTypeCredit,
		Amount:        decimal.RequireFromString("500.00"),
		Description:   "Wallet recharge",
		TransactionID: "TXN-1001",
		Status:        entities.EntryStatusPending,
	}
	require.NoError(t, repo.CreateEntry(ctx, entry))
	require.NotEqual(t, uuid.Nil, entry.ID)
	require.Equal(t, uuid.Version(7), entry.ID.Version(), "minted ids are time-ordered")

	got, err := repo.GetByTransactionID(ctx, "TXN-1001")
	require.NoError(t, err)
	require.Equal(t, walletID, got.WalletID)
	require.True(t, got.Amount.Equal(decimal.RequireFromString("500")))
	require.Equal(t, entities.EntryStatusPending, got.Status)

	_, err = repo.GetByTransactionID(ctx, "TXN-missing")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestLedgerRepository_RejectsNonPositiveAmounts(t *testing.T) {
	db := newTestDB(t)
	createWalletTables(t, db)
	repo := NewLedgerRepository(db)
	ctx := context.Background()

	for _, amount := range []string{"0", "-1", "-250.50"} {
		err := repo.CreateEntry(ctx, &entities.LedgerEntry{
			WalletID:      uuid.New(),
			Type:          entities.EntryTypeCredit,
			Amount:        decimal.RequireFromString(amount),
			TransactionID: "TXN-" + amount,
			Status:        entities.EntryStatusPending,
		})
		require.ErrorIs(t, err, domainerrors.ErrInvalidAmount, "amount %s", amount)
	}
}

func TestLedgerRepository_TransitionsAreTerminal(t *testing.T) {
	db := newTestDB(t)
	createWalletTables(t, db)
	repo := NewLedgerRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateEntry(ctx, &entities.LedgerEntry{
		WalletID:      uuid.New(),
		Type:          entities.EntryTypeCredit,
		Amount:        decimal.RequireFromString("100"),
		TransactionID: "TXN-2001",
		Status:        entities.EntryStatusPending,
	}))

	done, err := repo.MarkCompleted(ctx, "TXN-2001")
	require.NoError(t, err)
	require.True(t, done)

	// Duplicate callback delivery: already terminal, nothing changes.
	done, err = repo.MarkCompleted(ctx, "TXN-2001")
	require.NoError(t, err)
	require.False(t, done)

	done, err = repo.MarkFailed(ctx, "TXN-2001")
	require.NoError(t, err)
	require.False(t, done)

	got, err := repo.GetByTransactionID(ctx, "TXN-2001")
	require.NoError(t, err)
	require.Equal(t, entities.EntryStatusCompleted, got.Status)

	done, err = repo.MarkFailed(ctx, "TXN-unknown")
	require.NoError(t, err)
	require.False(t, done)
}

func TestLedgerRepository_CompletedTotals(t *testing.T) {
	db := newTestDB(t)
	createWalletTables(t, db)
	repo := NewLedgerRepository(db)
	ctx := context.Background()

	walletID := uuid.New()
	seed := []struct {
		txnType entities.EntryType
		amount  string
		status  entities.EntryStatus
	}{
		{entities.EntryTypeCredit, "1000.00", entities.EntryStatusCompleted},
		{entities.EntryTypeCredit, "250.50", entities.EntryStatusCompleted},
		{entities.EntryTypeCredit, "9999.00", entities.EntryStatusPending},
		{entities.EntryTypeCredit, "77.00", entities.EntryStatusFailed},
		{entities.EntryTypeDebit, "120.25", entities.EntryStatusCompleted},
		{entities.EntryTypeDebit, "400.00", entities.EntryStatusPending},
	}
	for i, s := range seed {
		require.NoError(t, repo.CreateEntry(ctx, &entities.LedgerEntry{
			WalletID:      walletID,
			Type:          s.txnType,
			Amount:        decimal.RequireFromString(s.amount),
			TransactionID: uuid.NewString(),
			Status:        s.status,
		}), "seed %d", i)
	}
	// Another wallet's entries must not bleed in.
	require.NoError(t, repo.CreateEntry(ctx, &entities.LedgerEntry{
		WalletID:      uuid.New(),
		Type:          entities.EntryTypeCredit,
		Amount:        decimal.RequireFromString("5000"),
		TransactionID: uuid.NewString(),
		Status:        entities.EntryStatusCompleted,
	}))

	credits, debits, err := repo.CompletedTotals(ctx, walletID)
	require.NoError(t, err)
	require.True(t, credits.Equal(decimal.RequireFromString("1250.50")), "credits = %s", credits)
	require.True(t, debits.Equal(decimal.RequireFromString("120.25")), "debits = %s", debits)
}

func TestLedgerRepository_CompletedTotals_RandomizedSequences(t *testing.T) {
	db := newTestDB(t)
	createWalletTables(t, db)
	repo := NewLedgerRepository(db)
	ctx := context.Background()

	seed := time.Now().UnixNano()
	rng := rand.New(rand.NewSource(seed))
	t.Logf("seed %d", seed)

	types := []entities.EntryType{entities.EntryTypeCredit, entities.EntryTypeDebit}
	statuses := []entities.EntryStatus{
		entities.EntryStatusPending,
		entities.EntryStatusCompleted,
		entities.EntryStatusFailed,
	}

	walletID := uuid.New()
	otherWalletID := uuid.New()
	wantCredits, wantDebits := decimal.Zero, decimal.Zero
	for i := 0; i < 60; i++ {
		txnType := types[rng.Intn(len(types))]
		status := statuses[rng.Intn(len(statuses))]
		// paise-grained amounts in (0, 10000]
		amount := decimal.New(int64(rng.Intn(1000000)+1), -2)

		target := walletID
		if rng.Intn(4) == 0 {
			target = otherWalletID
		}
		require.NoError(t, repo.CreateEntry(ctx, &entities.LedgerEntry{
			WalletID:      target,
			Type:          txnType,
			Amount:        amount,
			TransactionID: uuid.NewString(),
			Status:        status,
		}), "entry %d", i)

		if target != walletID || status != entities.EntryStatusCompleted {
			continue
		}
		if txnType == entities.EntryTypeCredit {
			wantCredits = wantCredits.Add(amount)
		} else {
			wantDebits = wantDebits.Add(amount)
		}
	}

	credits, debits, err := repo.CompletedTotals(ctx, walletID)
	require.NoError(t, err)
	require.True(t, credits.Equal(wantCredits), "credits = %s, want %s", credits, wantCredits)
	require.True(t, debits.Equal(wantDebits), "debits = %s, want %s", debits, wantDebits)
}

func TestLedgerRepository_StaleSweep(t *testing.T) {
	db := newTestDB(t)
	createWalletTables(t, db)
	repo := NewLedgerRepository(db)
	ctx := context.Background()

	staleID := uuid.New()
	freshID := uuid.New()
	mustExec(t, db, `INSERT INTO wallet_recharge(
		id,wallet_id,transaction_type,amount,description,transaction_id,status,created_at,updated_at
	) VALUES (?,?,?,?,?,?,?,?,?)`,
		staleID.String(), uuid.NewString(), "credit", "100.00", "", "TXN-stale", "pending",
		time.Now().Add(-time.Hour), time.Now().Add(-time.Hour))
	mustExec(t, db, `INSERT INTO wallet_recharge(
		id,wallet_id,transaction_type,amount,description,transaction_id,status,created_at,updated_at
	) VALUES (?,?,?,?,?,?,?,?,?)`,
		freshID.String(), uuid.NewString(), "credit", "100.00", "", "TXN-fresh", "pending",
		time.Now(), time.Now())

	stale, err := repo.GetStalePending(ctx, time.Now().Add(-15*time.Minute), 100)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	require.Equal(t, staleID, stale[0].ID)

	require.NoError(t, repo.FailEntries(ctx, []uuid.UUID{staleID}))
	require.NoError(t, repo.FailEntries(ctx, nil))

	got, err := repo.GetByTransactionID(ctx, "TXN-stale")
	require.NoError(t, err)
	require.Equal(t, entities.EntryStatusFailed, got.Status)

	got, err = repo.GetByTransactionID(ctx, "TXN-fresh")
	require.NoError(t, err)
	require.Equal(t, entities.EntryStatusPending, got.Status)
}
