package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name              string    `gorm:"type:varchar(255);not null"`
	Email             string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash      string    `gorm:"column:password;type:varchar(255);not null"`
	Role              string    `gorm:"type:varchar(20);not null;default:client"`
	ContactNumber     string    `gorm:"type:varchar(20);not null"`
	Margin            string    `gorm:"type:decimal(6,2);not null;default:0"`
	IsPasswordUpdated bool      `gorm:"default:false"`
	Active            bool      `gorm:"default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

type PasswordOTP struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	OTP       string    `gorm:"type:varchar(10);not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (PasswordOTP) TableName() string { return "user_otps" }
