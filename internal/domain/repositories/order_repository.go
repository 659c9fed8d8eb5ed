package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"shipstack.backend/internal/domain/entities"
)

// OrderRepository defines order persistence operations
type OrderRepository interface {
	Create(ctx context.Context, order *entities.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Order, error)
	GetByUniqueID(ctx context.Context, orderUniqueID string) (*entities.Order, error)
	ExistsUniqueID(ctx context.Context, orderUniqueID string) (bool, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entities.Order, error)
	ListAll(ctx context.Context) ([]*entities.Order, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, paymentMode string, codAmount decimal.Decimal) error
}

// ShipmentRepository defines shipment persistence operations
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *entities.Shipment) error
	GetByWaybill(ctx context.Context, waybill string) (*entities.Shipment, error)
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entities.Shipment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateWeight(ctx context.Context, waybill string, weightGrams decimal.Decimal) error
	MarkLabelDownloaded(ctx context.Context, waybill string) error
}

// CustomerRepository stores receiver snapshots
type CustomerRepository interface {
	Create(ctx context.Context, customer *entities.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error)
	Update(ctx context.Context, customer *entities.Customer) error
}

// IntentRepository stores the durable staging records written before
// each carrier commit
type IntentRepository interface {
	Create(ctx context.Context, intent *entities.OrderIntent) error
	MarkCommitted(ctx context.Context, id uuid.UUID, uploadWBN, waybill string) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
	MarkStuck(ctx context.Context, id uuid.UUID, reason string) error
	GetStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*entities.OrderIntent, error)
}
