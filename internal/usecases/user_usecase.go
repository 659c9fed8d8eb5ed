package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"shipstack.backend/internal/domain/entities"
	domainerrors "shipstack.backend/internal/domain/errors"
	"shipstack.backend/internal/domain/repositories"
)

// UserUsecase covers the admin-facing account operations
type UserUsecase struct {
	userRepo repositories.UserRepository
}

func NewUserUsecase(userRepo repositories.UserRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo}
}

// ListUsers returns a page of accounts with the total count
func (u *UserUsecase) ListUsers(ctx context.Context, limit, offset int) ([]*entities.User, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return u.userRepo.List(ctx, limit, offset)
}

// UpdateMargin sets the percentage surcharge applied to a client's
// quotes. Takes effect on the next quote; in-flight orders keep the
// price they were quoted.
func (u *UserUsecase) UpdateMargin(ctx context.Context, id uuid.UUID, margin decimal.Decimal) error {
	if margin.IsNegative() {
		return domainerrors.BadRequest("margin must be a non-negative percentage")
	}
	return u.userRepo.UpdateMargin(ctx, id, margin)
}

// SetActive toggles whether an account can log in
func (u *UserUsecase) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return u.userRepo.SetActive(ctx, id, active)
}

// DeleteUser removes an account
func (u *UserUsecase) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return u.userRepo.Delete(ctx, id)
}
