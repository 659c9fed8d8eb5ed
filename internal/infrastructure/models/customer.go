package models

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	FirstName             string    `gorm:"type:varchar(100);not null"`
	LastName              string    `gorm:"type:varchar(100)"`
	Email                 string    `gorm:"type:varchar(255)"`
	MobileNumber          string    `gorm:"type:varchar(20);not null"`
	ShippingAddressLine1  string    `gorm:"type:text;not null"`
	ShippingAddressLine2  string    `gorm:"type:text"`
	ShippingCity          string    `gorm:"type:varchar(100)"`
	ShippingState         string    `gorm:"type:varchar(100)"`
	ShippingPincode       string    `gorm:"type:varchar(10)"`
	ShippingSameAsBilling bool      `gorm:"default:true"`
	BillingAddressLine1   string    `gorm:"type:text"`
	BillingAddressLine2   string    `gorm:"type:text"`
	BillingCity           string    `gorm:"type:varchar(100)"`
	BillingState          string    `gorm:"type:varchar(100)"`
	BillingPincode        string    `gorm:"type:varchar(10)"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
