package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletStatus is the lifecycle state of a wallet
type WalletStatus string

const (
	WalletStatusActive    WalletStatus = "active"
	WalletStatusSuspended WalletStatus = "suspended"
	WalletStatusClosed    WalletStatus = "closed"
)

// Wallet is the prepaid account attached one-to-one to a user. It is
// created atomically with the user at signup and never stores a
// balance: the balance is always derived from completed ledger entries.
type Wallet struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"userId"`
	Currency  string       `json:"currency"`
	Status    WalletStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// EntryType distinguishes money in from money out
type EntryType string

const (
	EntryTypeCredit EntryType = "credit"
	EntryTypeDebit  EntryType = "debit"
)

// EntryStatus is the settlement state of a ledger entry.
// pending -> completed and pending -> failed are the only legal
// transitions; completed and failed are terminal.
type EntryStatus string

const (
	EntryStatusPending   EntryStatus = "pending"
	EntryStatusCompleted EntryStatus = "completed"
	EntryStatusFailed    EntryStatus = "failed"
)

// LedgerEntry is an append-only wallet transaction. Only completed
// entries count toward the derived balance.
type LedgerEntry struct {
	ID            uuid.UUID       `json:"id"`
	WalletID      uuid.UUID       `json:"walletId"`
	Type          EntryType       `json:"transactionType"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	TransactionID string          `json:"transactionId"`
	Status        EntryStatus     `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Terminal reports whether the entry can no longer transition
func (e *LedgerEntry) Terminal() bool {
	return e.Status == EntryStatusCompleted || e.Status == EntryStatusFailed
}
