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

// ProductRepositoryImpl implements ProductRepository
type ProductRepositoryImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepositoryImpl {
	return &ProductRepositoryImpl{db: db}
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *entities.Product) error {
	if product.ID == uuid.Nil {
		product.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	m := &models.Product{
		ID:         product.ID,
		ItemName:   product.ItemName,
		SKUCode:    product.SKUCode,
		Price:      product.Price.StringFixed(2),
		CategoryID: product.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return GetDB(ctx, r.db).Create(m).Error
}

// productWithCategory is the scan target for the category join
type productWithCategory struct {
	models.Product
	CategoryName string
}

func (r *ProductRepositoryImpl) GetWithCategory(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	var row productWithCategory
	err := GetDB(ctx, r.db).Model(&models.Product{}).
		Select("products.*, categories.name AS category_name").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("products.id = ?", id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p := productToEntity(&row.Product)
	p.CategoryName = row.CategoryName
	return p, nil
}

func (r *ProductRepositoryImpl) List(ctx context.Context, limit, offset int) ([]*entities.Product, int, error) {
	var total int64
	if err := GetDB(ctx, r.db).Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []productWithCategory
	if err := GetDB(ctx, r.db).Model(&models.Product{}).
		Select("products.*, categories.name AS category_name").
		Joins("JOIN categories ON categories.id = products.category_id").
		Order("products.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	var products []*entities.Product
	for _, row := range rows {
		p := productToEntity(&row.Product)
		p.CategoryName = row.CategoryName
		products = append(products, p)
	}
	return products, int(total), nil
}

func (r *ProductRepositoryImpl) CreateCategory(ctx context.Context, category *entities.Category) error {
	if category.ID == uuid.Nil {
		category.ID = utils.GenerateUUIDv7()
	}
	m := &models.Category{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: time.Now(),
	}
	err := GetDB(ctx, r.db).Create(m).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerrors.ErrAlreadyExists
	}
	return err
}

func (r *ProductRepositoryImpl) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	var ms []models.Category
	if err := GetDB(ctx, r.db).Order("name ASC").Find(&ms).Error; err != nil {
		return nil, err
	}

	var categories []*entities.Category
	for _, m := range ms {
		categories = append(categories, &entities.Category{
			ID:        m.ID,
			Name:      m.Name,
			CreatedAt: m.CreatedAt,
		})
	}
	return categories, nil
}

func productToEntity(m *models.Product) *entities.Product {
	return &entities.Product{
		ID:         m.ID,
		ItemName:   m.ItemName,
		SKUCode:    m.SKUCode,
		Price:      parseAmount(m.Price),
		CategoryID: m.CategoryID,
		CreatedAt:  m.CreatedAt,
	}
}
