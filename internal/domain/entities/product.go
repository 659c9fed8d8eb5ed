package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category groups catalog products
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Product is a catalog item used to enrich shipment lines.
// CategoryName is populated on joined reads.
type Product struct {
	ID           uuid.UUID       `json:"id"`
	ItemName     string          `json:"itemName"`
	SKUCode      string          `json:"skuCode"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   uuid.UUID       `json:"categoryId"`
	CategoryName string          `json:"categoryName,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}
