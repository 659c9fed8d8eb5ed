package repositories

import (
	"context"

	"github.com/google/uuid"
	"shipstack.backend/internal/domain/entities"
)

// WarehouseRepository defines pickup-location persistence operations
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entities.Warehouse) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Warehouse, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Warehouse, error)
}

// ProductRepository defines catalog lookups. GetWithCategory joins the
// category name used by shipment-line enrichment.
type ProductRepository interface {
	Create(ctx context.Context, product *entities.Product) error
	GetWithCategory(ctx context.Context, id uuid.UUID) (*entities.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Product, int, error)
	CreateCategory(ctx context.Context, category *entities.Category) error
	ListCategories(ctx context.Context) ([]*entities.Category, error)
}
