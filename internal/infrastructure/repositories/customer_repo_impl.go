package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"shipstack.backend/internal/domain/entities"
	domainerrors "shipstack.backend/internal/domain/errors"
	"shipstack.backend/internal/infrastructure/models"
	"shipstack.backend/pkg/utils"
)

// CustomerRepositoryImpl implements CustomerRepository
type CustomerRepositoryImpl struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepositoryImpl {
	return &CustomerRepositoryImpl{db: db}
}

func (r *CustomerRepositoryImpl) Create(ctx context.Context, customer *entities.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = utils.GenerateUUIDv7()
	}
	m := customerToModel(customer)
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	return GetDB(ctx, r.db).Create(m).Error
}

func (r *CustomerRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	var m models.Customer
	err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return customerToEntity(&m), nil
}

func (r *CustomerRepositoryImpl) Update(ctx context.Context, customer *entities.Customer) error {
	m := customerToModel(customer)
	m.UpdatedAt = time.Now()
	res := GetDB(ctx, r.db).Model(&models.Customer{}).Where("id = ?", customer.ID).Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func customerToModel(c *entities.Customer) *models.Customer {
	return &models.Customer{
		ID:                    c.ID,
		FirstName:             c.FirstName,
		LastName:              c.LastName,
		Email:                 c.Email,
		MobileNumber:          c.MobileNumber,
		ShippingAddressLine1:  c.ShippingAddressLine1,
		ShippingAddressLine2:  c.ShippingAddressLine2,
		ShippingCity:          c.ShippingCity,
		ShippingState:         c.ShippingState,
		ShippingPincode:       c.ShippingPincode,
		ShippingSameAsBilling: c.ShippingSameAsBilling,
		BillingAddressLine1:   c.BillingAddressLine1,
		BillingAddressLine2:   c.BillingAddressLine2,
		BillingCity:           c.BillingCity,
		BillingState:          c.BillingState,
		BillingPincode:        c.BillingPincode,
	}
}

func customerToEntity(m *models.Customer) *entities.Customer {
	return &entities.Customer{
		ID:                    m.ID,
		FirstName:             m.FirstName,
		LastName:              m.LastName,
		Email:                 m.Email,
		MobileNumber:          m.MobileNumber,
		ShippingAddressLine1:  m.ShippingAddressLine1,
		ShippingAddressLine2:  m.ShippingAddressLine2,
		ShippingCity:          m.ShippingCity,
		ShippingState:         m.ShippingState,
		ShippingPincode:       m.ShippingPincode,
		ShippingSameAsBilling: m.ShippingSameAsBilling,
		BillingAddressLine1:   m.BillingAddressLine1,
		BillingAddressLine2:   m.BillingAddressLine2,
		BillingCity:           m.BillingCity,
		BillingState:          m.BillingState,
		BillingPincode:        m.BillingPincode,
		CreatedAt:             m.CreatedAt,
	}
}
