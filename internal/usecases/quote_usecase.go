package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"shipstack.backend/internal/domain/entities"
	domainerrors "shipstack.backend/internal/domain/errors"
	"shipstack.backend/internal/domain/repositories"
	"shipstack.backend/internal/infrastructure/carrier"
)

// rateClient is the slice of the carrier client the quote path needs
type rateClient interface {
	GetRate(ctx context.Context, req carrier.RateRequest) (decimal.Decimal, error)
}

// QuoteInput is a shipping cost request
type QuoteInput struct {
	OriginPin     string          `json:"origin_pin" binding:"required"`
	DestPin       string          `json:"dest_pin" binding:"required"`
	WeightGrams   int             `json:"weight" binding:"required"`
	ShippingMode  string          `json:"shipping_mode" binding:"required"`
	PaymentMode   string          `json:"payment_mode"`
	DeclaredValue decimal.Decimal `json:"declared_value"`
}

// QuoteUsecase prices a shipment: carrier base rate plus the caller's
// margin percentage. The margin is read fresh from the user row so an
// admin change applies to the very next quote.
type QuoteUsecase struct {
	userRepo repositories.UserRepository
	rates    rateClient
}

func NewQuoteUsecase(userRepo repositories.UserRepository, rates rateClient) *QuoteUsecase {
	return &QuoteUsecase{
		userRepo: userRepo,
		rates:    rates,
	}
}

// GetShippingCost returns the margin-adjusted price for a route
func (u *QuoteUsecase) GetShippingCost(ctx context.Context, userID uuid.UUID, input QuoteInput) (decimal.Decimal, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	mode, err := carrierMode(input.ShippingMode)
	if err != nil {
		return decimal.Zero, err
	}

	base, err := u.rates.GetRate(ctx, carrier.RateRequest{
		Mode:          mode,
		WeightGrams:   input.WeightGrams,
		OriginPin:     input.OriginPin,
		DestPin:       input.DestPin,
		PaymentType:   carrierPaymentType(input.PaymentMode),
		DeclaredValue: input.DeclaredValue,
	})
	if err != nil {
		return decimal.Zero, err
	}

	return applyMargin(base, user.Margin), nil
}

// applyMargin adds the percentage surcharge and rounds half-up to two
// decimal places.
func applyMargin(base, marginPercent decimal.Decimal) decimal.Decimal {
	surcharge := base.Mul(marginPercent).Div(decimal.NewFromInt(100))
	return base.Add(surcharge).Round(2)
}

// carrierMode maps client-facing mode names to carrier short codes
func carrierMode(shippingMode string) (string, error) {
	switch shippingMode {
	case entities.ShippingModeExpress:
		return carrier.ModeExpress, nil
	case entities.ShippingModeSurface:
		return carrier.ModeSurface, nil
	default:
		return "", domainerrors.BadRequest("unknown shipping mode: " + shippingMode)
	}
}

// carrierPaymentType maps our payment modes to the rate API's values
func carrierPaymentType(paymentMode string) string {
	if paymentMode == entities.PaymentModeCOD {
		return "COD"
	}
	return "Pre-paid"
}
