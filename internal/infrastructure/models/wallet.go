package models

import (
	"time"

	"github.com/google/uuid"
)

type Wallet struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Currency  string    `gorm:"type:varchar(3);not null"`
	Status    string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LedgerEntry rows live in the wallet_recharge table; the name predates
// debits flowing through the same log.
type LedgerEntry struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	WalletID        uuid.UUID `gorm:"type:uuid;not null;index"`
	TransactionType string    `gorm:"type:varchar(10);not null"`
	Amount          string    `gorm:"type:decimal(18,2);not null"`
	Description     string    `gorm:"type:text"`
	TransactionID   string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Status          string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

func (LedgerEntry) TableName() string { return "wallet_recharge" }
