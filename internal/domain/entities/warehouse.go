package entities

import (
	"time"

	"github.com/google/uuid"
)

// Warehouse is a registered pickup location
type Warehouse struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"userId"`
	FacilityName   string    `json:"facilityName"`
	ContactPerson  string    `json:"contactPerson"`
	Phone          string    `json:"phone"`
	PickupLocation string    `json:"pickupLocation"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	Pincode        string    `json:"pincode"`
	Country        string    `json:"country"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CreateWarehouseInput is the payload for registering a pickup location
type CreateWarehouseInput struct {
	FacilityName   string `json:"facilityName" binding:"required"`
	ContactPerson  string `json:"contactPerson" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	PickupLocation string `json:"pickupLocation" binding:"required"`
	City           string `json:"city" binding:"required"`
	State          string `json:"state"`
	Pincode        string `json:"pincode" binding:"required"`
	Country        string `json:"country"`
}
