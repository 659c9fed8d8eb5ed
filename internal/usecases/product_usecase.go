package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"shipstack.backend/internal/domain/entities"
	domainerrors "shipstack.backend/internal/domain/errors"
	"shipstack.backend/internal/domain/repositories"
)

// CreateProductInput is the payload for adding a catalog item
type CreateProductInput struct {
	ItemName   string `json:"itemName" binding:"required"`
	SKUCode    string `json:"skuCode"`
	Price      string `json:"price" binding:"required"`
	CategoryID string `json:"categoryId" binding:"required"`
}

// ProductUsecase manages the catalog used by shipment-line enrichment
type ProductUsecase struct {
	productRepo repositories.ProductRepository
}

func NewProductUsecase(productRepo repositories.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

// CreateProduct adds a catalog item
func (u *ProductUsecase) CreateProduct(ctx context.Context, input *CreateProductInput) (*entities.Product, error) {
	price, err := decimal.NewFromString(input.Price)
	if err != nil || price.IsNegative() {
		return nil, domainerrors.BadRequest("price must be a non-negative amount")
	}
	categoryID, err := uuid.Parse(input.CategoryID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid category id")
	}

	product := &entities.Product{
		ItemName:   input.ItemName,
		SKUCode:    input.SKUCode,
		Price:      price,
		CategoryID: categoryID,
	}
	if err := u.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct returns a catalog item with its category name
func (u *ProductUsecase) GetProduct(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	return u.productRepo.GetWithCategory(ctx, id)
}

// ListProducts returns a page of catalog items with the total count
func (u *ProductUsecase) ListProducts(ctx context.Context, limit, offset int) ([]*entities.Product, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return u.productRepo.List(ctx, limit, offset)
}

// CreateCategory adds a product category
func (u *ProductUsecase) CreateCategory(ctx context.Context, name string) (*entities.Category, error) {
	if name == "" {
		return nil, domainerrors.BadRequest("category name is required")
	}
	category := &entities.Category{Name: name}
	if err := u.productRepo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns all product categories
func (u *ProductUsecase) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	return u.productRepo.ListCategories(ctx)
}
