package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"shipstack.backend/internal/domain/entities"
	domainerrors "shipstack.backend/internal/domain/errors"
	"shipstack.backend/internal/infrastructure/models"
	"shipstack.backend/pkg/utils"
)

// UserRepositoryImpl implements UserRepository
type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	m := &models.User{
		ID:                user.ID,
		Name:              user.Name,
		Email:             user.Email,
		PasswordHash:      user.PasswordHash,
		Role:              user.Role,
		ContactNumber:     user.ContactNumber,
		Margin:            user.Margin.StringFixed(2),
		IsPasswordUpdated: user.IsPasswordUpdated,
		Active:            user.Active,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	return GetDB(ctx, r.db).Create(m).Error
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return userToEntity(&m), nil
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	err := GetDB(ctx, r.db).Where("email = ?", email).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return userToEntity(&m), nil
}

func (r *UserRepositoryImpl) List(ctx context.Context, limit, offset int) ([]*entities.User, int, error) {
	var total int64
	if err := GetDB(ctx, r.db).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.User
	if err := GetDB(ctx, r.db).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var users []*entities.User
	for _, m := range ms {
		model := m
		users = append(users, userToEntity(&model))
	}
	return users, int(total), nil
}

func (r *UserRepositoryImpl) UpdateMargin(ctx context.Context, id uuid.UUID, margin decimal.Decimal) error {
	return r.update(ctx, id, map[string]interface{}{"margin": margin.StringFixed(2)})
}

func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.update(ctx, id, map[string]interface{}{
		"password":            passwordHash,
		"is_password_updated": true,
	})
}

func (r *UserRepositoryImpl) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.update(ctx, id, map[string]interface{}{"active": active})
}

func (r *UserRepositoryImpl) update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	res := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res := GetDB(ctx, r.db).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func userToEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:                m.ID,
		Name:              m.Name,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		Role:              m.Role,
		ContactNumber:     m.ContactNumber,
		Margin:            parseAmount(m.Margin),
		IsPasswordUpdated: m.IsPasswordUpdated,
		Active:            m.Active,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// OTPRepositoryImpl implements OTPRepository
type OTPRepositoryImpl struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) *OTPRepositoryImpl {
	return &OTPRepositoryImpl{db: db}
}

func (r *OTPRepositoryImpl) Create(ctx context.Context, otp *entities.PasswordOTP) error {
	if otp.ID == uuid.Nil {
		otp.ID = utils.GenerateUUIDv7()
	}
	m := &models.PasswordOTP{
		ID:        otp.ID,
		UserID:    otp.UserID,
		OTP:       otp.OTP,
		ExpiresAt: otp.ExpiresAt,
		CreatedAt: time.Now(),
	}
	return GetDB(ctx, r.db).Create(m).Error
}

func (r *OTPRepositoryImpl) GetLatestValid(ctx context.Context, userID uuid.UUID) (*entities.PasswordOTP, error) {
	var m models.PasswordOTP
	err := GetDB(ctx, r.db).
		Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Order("created_at DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entities.PasswordOTP{
		ID:        m.ID,
		UserID:    m.UserID,
		OTP:       m.OTP,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}, nil
}

func (r *OTPRepositoryImpl) DeleteForUser(ctx context.Context, userID uuid.UUID) error {
	return GetDB(ctx, r.db).Where("user_id = ?", userID).Delete(&models.PasswordOTP{}).Error
}
