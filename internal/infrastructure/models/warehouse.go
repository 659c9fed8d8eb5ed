package models

import (
	"time"

	"github.com/google/uuid"
)

type Warehouse struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	FacilityName   string    `gorm:"type:varchar(255);not null"`
	ContactPerson  string    `gorm:"type:varchar(100);not null"`
	Phone          string    `gorm:"type:varchar(20);not null"`
	PickupLocation string    `gorm:"type:text;not null"`
	City           string    `gorm:"type:varchar(100);not null"`
	State          string    `gorm:"type:varchar(100)"`
	Pincode        string    `gorm:"type:varchar(10);not null"`
	Country        string    `gorm:"type:varchar(50);not null;default:India"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
