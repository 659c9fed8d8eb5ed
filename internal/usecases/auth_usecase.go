package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"shipstack.backend/internal/domain/entities"
	domainerrors "shipstack.backend/internal/domain/errors"
	"shipstack.backend/internal/domain/repositories"
	"shipstack.backend/pkg/crypto"
	"shipstack.backend/pkg/jwt"
)

const otpTTL = 10 * time.Minute

// accountMailer sends account notifications; delivery is fire-and-forget
type accountMailer interface {
	SendCredentials(ctx context.Context, to, name, password string)
	SendOTP(ctx context.Context, to, otp string)
}

// AuthUsecase handles account creation and authentication
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	otpRepo    repositories.OTPRepository
	walletRepo repositories.WalletRepository
	uow        repositories.UnitOfWork
	jwtService *jwt.JWTService
	mailer     accountMailer
}

func NewAuthUsecase(
	userRepo repositories.UserRepository,
	otpRepo repositories.OTPRepository,
	walletRepo repositories.WalletRepository,
	uow repositories.UnitOfWork,
	jwtService *jwt.JWTService,
	mailer accountMailer,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		otpRepo:    otpRepo,
		walletRepo: walletRepo,
		uow:        uow,
		jwtService: jwtService,
		mailer:     mailer,
	}
}

// Signup creates a client account with its wallet in one transaction.
// The generated first-login password is mailed to the new client;
// mail delivery never blocks or fails the signup.
func (u *AuthUsecase) Signup(ctx context.Context, input *entities.SignupInput) (*entities.User, error) {
	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.Conflict("email already registered")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	margin := decimal.Zero
	if input.Margin != "" {
		margin, err = decimal.NewFromString(input.Margin)
		if err != nil || margin.IsNegative() {
			return nil, domainerrors.BadRequest("margin must be a non-negative percentage")
		}
	}

	role := input.Role
	if role == "" {
		role = entities.UserRoleClient
	}

	password := crypto.InitialPassword(input.Name, input.ContactNumber)
	passwordHash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Name:          input.Name,
		Email:         input.Email,
		PasswordHash:  passwordHash,
		Role:          role,
		ContactNumber: input.ContactNumber,
		Margin:        margin,
		Active:        true,
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		wallet := &entities.Wallet{
			UserID:   user.ID,
			Currency: "INR",
			Status:   entities.WalletStatusActive,
		}
		return u.walletRepo.Create(txCtx, wallet)
	})
	if err != nil {
		return nil, err
	}

	go u.mailer.SendCredentials(context.WithoutCancel(ctx), user.Email, user.Name, password)

	return user, nil
}

// Login authenticates a user and returns a bearer token
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (string, *entities.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", nil, domainerrors.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !user.Active {
		return "", nil, domainerrors.Forbidden("account is deactivated")
	}
	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return "", nil, domainerrors.ErrInvalidCredentials
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ForgotPassword issues a reset OTP. Unknown emails are silently
// accepted so the endpoint cannot be used to probe for accounts.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil
		}
		return err
	}

	otp, err := crypto.GenerateOTP()
	if err != nil {
		return err
	}

	if err := u.otpRepo.DeleteForUser(ctx, user.ID); err != nil {
		return err
	}
	if err := u.otpRepo.Create(ctx, &entities.PasswordOTP{
		UserID:    user.ID,
		OTP:       otp,
		ExpiresAt: time.Now().Add(otpTTL),
	}); err != nil {
		return err
	}

	go u.mailer.SendOTP(context.WithoutCancel(ctx), user.Email, otp)
	return nil
}

// VerifyOTPAndReset checks the latest unexpired OTP and, on match,
// replaces the password and consumes the code.
func (u *AuthUsecase) VerifyOTPAndReset(ctx context.Context, email, otp, newPassword string) error {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.Unauthorized("invalid or expired code")
		}
		return err
	}

	record, err := u.otpRepo.GetLatestValid(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.Unauthorized("invalid or expired code")
		}
		return err
	}
	if record.OTP != otp {
		return domainerrors.Unauthorized("invalid or expired code")
	}

	passwordHash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := u.userRepo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return err
	}
	return u.otpRepo.DeleteForUser(ctx, user.ID)
}

// GetUserByID returns a user by id
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}
