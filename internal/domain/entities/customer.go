package entities

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the receiver snapshot taken at order creation time
type Customer struct {
	ID                    uuid.UUID `json:"id"`
	FirstName             string    `json:"firstName"`
	LastName              string    `json:"lastName"`
	Email                 string    `json:"email"`
	MobileNumber          string    `json:"mobileNumber"`
	ShippingAddressLine1  string    `json:"shippingAddressLine1"`
	ShippingAddressLine2  string    `json:"shippingAddressLine2"`
	ShippingCity          string    `json:"shippingCity"`
	ShippingState         string    `json:"shippingState"`
	ShippingPincode       string    `json:"shippingPincode"`
	ShippingSameAsBilling bool      `json:"shippingSameAsBilling"`
	BillingAddressLine1   string    `json:"billingAddressLine1"`
	BillingAddressLine2   string    `json:"billingAddressLine2"`
	BillingCity           string    `json:"billingCity"`
	BillingState          string    `json:"billingState"`
	BillingPincode        string    `json:"billingPincode"`
	CreatedAt             time.Time `json:"createdAt"`
}
