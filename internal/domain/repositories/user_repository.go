package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"shipstack.backend/internal/domain/entities"
)

// UserRepository defines user persistence operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	List(ctx context.Context, limit, offset int) ([]*entities.User, int, error)
	UpdateMargin(ctx context.Context, id uuid.UUID, margin decimal.Decimal) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OTPRepository stores password-reset one-time codes
type OTPRepository interface {
	Create(ctx context.Context, otp *entities.PasswordOTP) error
	GetLatestValid(ctx context.Context, userID uuid.UUID) (*entities.PasswordOTP, error)
	DeleteForUser(ctx context.Context, userID uuid.UUID) error
}
