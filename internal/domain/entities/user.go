package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User roles
const (
	UserRoleAdmin  = "admin"
	UserRoleClient = "client"
)

// User represents an account holder. Margin is the per-user percentage
// surcharge applied to every carrier rate quote.
type User struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	PasswordHash      string          `json:"-"`
	Role              string          `json:"role"`
	ContactNumber     string          `json:"contactNumber"`
	Margin            decimal.Decimal `json:"margin"`
	IsPasswordUpdated bool            `json:"isPasswordUpdated"`
	Active            bool            `json:"active"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// SignupInput represents input for creating a client account
type SignupInput struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Role          string `json:"role"`
	ContactNumber string `json:"contactNumber" binding:"required"`
	Margin        string `json:"margin"`
}

// LoginInput represents login credentials
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// PasswordOTP is a one-time code issued for password reset
type PasswordOTP struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	OTP       string
	ExpiresAt time.Time
	CreatedAt time.Time
}
