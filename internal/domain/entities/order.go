package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Shipping modes accepted from clients, mapped to carrier short codes
const (
	ShippingModeExpress = "Express"
	ShippingModeSurface = "Surface"
)

// Payment modes for an order
const (
	PaymentModePrepaid = "prepaid"
	PaymentModeCOD     = "COD"
)

// Order groups the shipments created by one carrier manifest call.
// UploadWBN is the carrier-assigned batch identifier; an order row
// exists only after a successful carrier commit.
type Order struct {
	ID             uuid.UUID       `json:"id"`
	OrderUniqueID  string          `json:"orderUniqueId"`
	CustomerID     uuid.UUID       `json:"customerId"`
	WarehouseID    uuid.UUID       `json:"warehouseId"`
	ClientID       uuid.UUID       `json:"clientId"`
	PaymentMode    string          `json:"paymentMode"`
	PackagesCount  int             `json:"packagesCount"`
	TotalCODAmount decimal.Decimal `json:"totalCodAmount"`
	UploadWBN      string          `json:"uploadWbn"`
	OrderDate      time.Time       `json:"orderDate"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// Shipment is one physical package within an order. The waybill is
// assigned by the carrier and is the join key into its tracking API.
type Shipment struct {
	ID                uuid.UUID       `json:"id"`
	OrderID           uuid.UUID       `json:"orderId"`
	TrackingNumber    string          `json:"trackingNumber"`
	Waybill           string          `json:"waybill"`
	Status            string          `json:"shipmentStatus"`
	WeightGrams       decimal.Decimal `json:"weight"`
	CODAmount         decimal.Decimal `json:"codAmount"`
	ProductDetails    ProductDetails  `json:"productDetails"`
	IsLabelDownloaded bool            `json:"isLabelDownloaded"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// ProductDetails is the opaque per-shipment payload persisted as JSON
type ProductDetails struct {
	ShippingMode     string     `json:"shipping_mode"`
	Dimensions       Dimensions `json:"dimensions"`
	Fragile          bool       `json:"fragile"`
	PlasticPackaging bool       `json:"plastic_packaging"`
	Items            []LineItem `json:"items"`
}

// Dimensions of a package in centimetres
type Dimensions struct {
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
}

// LineItem is one catalog item inside a shipment. Enriched reports
// whether the catalog lookup matched: an unenriched item keeps the
// requested product id and quantity but carries no catalog data, so
// callers can tell "no catalog match" apart from "no items requested".
type LineItem struct {
	ProductID   uuid.UUID       `json:"productId"`
	Quantity    int             `json:"quantity"`
	Enriched    bool            `json:"enriched"`
	Description string          `json:"description"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	SKU         string          `json:"sku"`
	Price       decimal.Decimal `json:"price"`
}

// ItemRef is a catalog reference on an inbound shipment line
type ItemRef struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// ShipmentLine is one requested package in a forward-order request
type ShipmentLine struct {
	Name             string    `json:"name" binding:"required"`
	Address          string    `json:"address" binding:"required"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	Pin              string    `json:"pin" binding:"required"`
	Phone            string    `json:"phone" binding:"required"`
	Email            string    `json:"email"`
	PaymentMode      string    `json:"payment_mode" binding:"required"`
	Order            string    `json:"order" binding:"required"`
	ShippingMode     string    `json:"shipping_mode" binding:"required"`
	WeightGrams      float64   `json:"weight" binding:"required"`
	FragileShipment  bool      `json:"fragile_shipment"`
	CODAmount        float64   `json:"cod_amount"`
	PlasticPackaging bool      `json:"plastic_packaging"`
	Height           float64   `json:"shipment_height"`
	Width            float64   `json:"shipment_width"`
	Length           float64   `json:"shipment_length"`
	Items            []ItemRef `json:"items"`
}

// IntentStatus tracks the saga staging record around the carrier call
type IntentStatus string

const (
	// IntentStatusPending: written before the carrier commit
	IntentStatusPending IntentStatus = "pending"
	// IntentStatusCommitted: carrier succeeded and local rows exist
	IntentStatusCommitted IntentStatus = "committed"
	// IntentStatusFailed: carrier rejected; nothing persisted
	IntentStatusFailed IntentStatus = "failed"
	// IntentStatusStuck: carrier succeeded but local persistence did
	// not; needs manual reconciliation against the recorded waybill
	IntentStatusStuck IntentStatus = "stuck"
)

// OrderIntent is the durable staging record written before the carrier
// commit so a crash between the external call and local persistence is
// detectable and recoverable.
type OrderIntent struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"userId"`
	WarehouseID   uuid.UUID       `json:"warehouseId"`
	OrderUniqueID string          `json:"orderUniqueId"`
	Amount        decimal.Decimal `json:"amount"`
	Status        IntentStatus    `json:"status"`
	UploadWBN     string          `json:"uploadWbn"`
	Waybill       string          `json:"waybill"`
	FailureReason string          `json:"failureReason"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
