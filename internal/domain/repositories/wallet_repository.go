package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"shipstack.backend/internal/domain/entities"
)

// WalletRepository defines wallet persistence operations.
// GetActiveByUserID honors the unit-of-work lock context: inside a
// locked transaction scope it acquires a row lock on the wallet, which
// is the serialization point for balance-check-then-debit.
type WalletRepository interface {
	Create(ctx context.Context, wallet *entities.Wallet) error
	GetActiveByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
}

// LedgerRepository defines the append-only wallet transaction log.
// MarkCompleted and MarkFailed only transition pending entries; calling
// either on a terminal entry reports done=false with no error, so
// duplicate gateway callbacks are harmless.
type LedgerRepository interface {
	CreateEntry(ctx context.Context, entry *entities.LedgerEntry) error
	GetByTransactionID(ctx context.Context, transactionID string) (*entities.LedgerEntry, error)
	MarkCompleted(ctx context.Context, transactionID string) (done bool, err error)
	MarkFailed(ctx context.Context, transactionID string) (done bool, err error)
	// CompletedTotals returns the sums of completed credits and debits
	// for a wallet; the derived balance is credits minus debits.
	CompletedTotals(ctx context.Context, walletID uuid.UUID) (credits, debits decimal.Decimal, err error)
	GetStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*entities.LedgerEntry, error)
	FailEntries(ctx context.Context, ids []uuid.UUID) error
}
