package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrderUniqueID  string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	CustomerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	WarehouseID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientID       uuid.UUID `gorm:"type:uuid;not null;index"`
	PaymentMode    string    `gorm:"type:varchar(20);not null"`
	PackagesCount  int       `gorm:"not null"`
	TotalCODAmount string    `gorm:"column:total_cod_amount;type:decimal(18,2);not null;default:0"`
	UploadWBN      string    `gorm:"column:upload_wbn;type:varchar(64)"`
	OrderDate      time.Time `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Shipment struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrderID           uuid.UUID `gorm:"type:uuid;not null;index"`
	TrackingNumber    string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Waybill           string    `gorm:"type:varchar(64);index;not null"`
	ShipmentStatus    string    `gorm:"type:varchar(50);not null"`
	WeightGrams       string    `gorm:"column:weight;type:decimal(12,2);not null;default:0"`
	CODAmount         string    `gorm:"column:cod_amount;type:decimal(18,2);not null;default:0"`
	ProductDetails    string    `gorm:"type:jsonb"`
	IsLabelDownloaded bool      `gorm:"default:false"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type OrderIntent struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	WarehouseID   uuid.UUID `gorm:"type:uuid;not null"`
	OrderUniqueID string    `gorm:"type:varchar(64);not null;index"`
	Amount        string    `gorm:"type:decimal(18,2);not null"`
	Status        string    `gorm:"type:varchar(20);not null;index"`
	UploadWBN     string    `gorm:"column:upload_wbn;type:varchar(64)"`
	Waybill       string    `gorm:"type:varchar(64)"`
	FailureReason string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time
}
