package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"shipstack.backend/internal/domain/entities"
	domainerrors "shipstack.backend/internal/domain/errors"
	"shipstack.backend/internal/domain/repositories"
	"shipstack.backend/pkg/logger"
)

// trackingClient is the slice of the carrier client the read paths need
type trackingClient interface {
	TrackShipment(ctx context.Context, waybill string) (string, error)
	PackingSlip(ctx context.Context, waybills []string) ([]byte, error)
	EditShipment(ctx context.Context, waybill string, fields map[string]interface{}) error
}

// OrderDetails aggregates one order with its receiver and shipments
type OrderDetails struct {
	Order     *entities.Order      `json:"order"`
	Customer  *entities.Customer   `json:"customer"`
	Shipments []*entities.Shipment `json:"shipments"`
}

// ListFilters narrows an order listing. Empty fields match everything.
type ListFilters struct {
	Status        string `json:"status"`
	Waybill       string `json:"waybill"`
	OrderUniqueID string `json:"order_id"`
	PaymentMode   string `json:"payment_mode"`
}

// EditShipmentInput updates a manifested package
type EditShipmentInput struct {
	Waybill     string  `json:"waybill" binding:"required"`
	WeightGrams float64 `json:"weight"`
	PaymentMode string  `json:"payment_mode"`
	CODAmount   float64 `json:"cod_amount"`
}

// TrackingUsecase serves the post-manifest read and edit paths: order
// details with live status refresh, listings, labels and shipment edits.
type TrackingUsecase struct {
	orderRepo    repositories.OrderRepository
	shipmentRepo repositories.ShipmentRepository
	customerRepo repositories.CustomerRepository
	carrier      trackingClient
}

func NewTrackingUsecase(
	orderRepo repositories.OrderRepository,
	shipmentRepo repositories.ShipmentRepository,
	customerRepo repositories.CustomerRepository,
	carrierClient trackingClient,
) *TrackingUsecase {
	return &TrackingUsecase{
		orderRepo:    orderRepo,
		shipmentRepo: shipmentRepo,
		customerRepo: customerRepo,
		carrier:      carrierClient,
	}
}

// TrackWaybill returns the carrier's current status for a waybill
func (u *TrackingUsecase) TrackWaybill(ctx context.Context, waybill string) (string, error) {
	return u.carrier.TrackShipment(ctx, waybill)
}

// GetOrderDetails loads an order and refreshes each shipment's status
// from the carrier. A tracking failure keeps the stored status: stale
// beats unavailable.
func (u *TrackingUsecase) GetOrderDetails(ctx context.Context, userID uuid.UUID, role, orderUniqueID string) (*OrderDetails, error) {
	order, err := u.orderRepo.GetByUniqueID(ctx, orderUniqueID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOrderAccess(order, userID, role); err != nil {
		return nil, err
	}

	shipments, err := u.shipmentRepo.ListByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	for _, shipment := range shipments {
		status, err := u.carrier.TrackShipment(ctx, shipment.Waybill)
		if err != nil {
			logger.Warn(ctx, "tracking refresh failed, keeping stored status",
				zap.String("waybill", shipment.Waybill), zap.Error(err))
			continue
		}
		if status != "" && status != shipment.Status {
			if err := u.shipmentRepo.UpdateStatus(ctx, shipment.ID, status); err != nil {
				return nil, err
			}
			shipment.Status = status
		}
	}

	customer, err := u.customerRepo.GetByID(ctx, order.CustomerID)
	if err != nil {
		return nil, err
	}

	return &OrderDetails{
		Order:     order,
		Customer:  customer,
		Shipments: shipments,
	}, nil
}

// ListOrders returns the caller's orders (all orders for admins),
// narrowed by the given filters.
func (u *TrackingUsecase) ListOrders(ctx context.Context, userID uuid.UUID, role string, filters ListFilters) ([]*OrderDetails, error) {
	var (
		orders []*entities.Order
		err    error
	)
	if role == entities.UserRoleAdmin {
		orders, err = u.orderRepo.ListAll(ctx)
	} else {
		orders, err = u.orderRepo.ListByClient(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	var result []*OrderDetails
	for _, order := range orders {
		if filters.OrderUniqueID != "" && order.OrderUniqueID != filters.OrderUniqueID {
			continue
		}
		if filters.PaymentMode != "" && !strings.EqualFold(order.PaymentMode, filters.PaymentMode) {
			continue
		}

		shipments, err := u.shipmentRepo.ListByOrderID(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		if !matchShipmentFilters(shipments, filters) {
			continue
		}

		result = append(result, &OrderDetails{Order: order, Shipments: shipments})
	}
	return result, nil
}

// GetLabel fetches the PDF label for a waybill and records the download
func (u *TrackingUsecase) GetLabel(ctx context.Context, userID uuid.UUID, role, waybill string) ([]byte, error) {
	if _, err := u.authorizeWaybill(ctx, userID, role, waybill); err != nil {
		return nil, err
	}

	pdf, err := u.carrier.PackingSlip(ctx, []string{waybill})
	if err != nil {
		return nil, err
	}
	if err := u.shipmentRepo.MarkLabelDownloaded(ctx, waybill); err != nil {
		return nil, err
	}
	return pdf, nil
}

// EditShipment pushes package changes to the carrier first, then
// mirrors them locally. A local update is only attempted after the
// carrier accepted the edit.
func (u *TrackingUsecase) EditShipment(ctx context.Context, userID uuid.UUID, role string, input EditShipmentInput) error {
	order, err := u.authorizeWaybill(ctx, userID, role, input.Waybill)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if input.WeightGrams > 0 {
		fields["weight"] = input.WeightGrams
	}
	if input.PaymentMode != "" {
		fields["payment_mode"] = input.PaymentMode
		fields["cod_amount"] = input.CODAmount
	}
	if len(fields) == 0 {
		return domainerrors.BadRequest("nothing to edit")
	}

	if err := u.carrier.EditShipment(ctx, input.Waybill, fields); err != nil {
		return err
	}

	if input.WeightGrams > 0 {
		if err := u.shipmentRepo.UpdateWeight(ctx, input.Waybill, decimal.NewFromFloat(input.WeightGrams)); err != nil {
			return err
		}
	}
	if input.PaymentMode != "" {
		if err := u.orderRepo.UpdatePayment(ctx, order.ID, input.PaymentMode, decimal.NewFromFloat(input.CODAmount)); err != nil {
			return err
		}
	}
	return nil
}

func (u *TrackingUsecase) authorizeWaybill(ctx context.Context, userID uuid.UUID, role, waybill string) (*entities.Order, error) {
	shipment, err := u.shipmentRepo.GetByWaybill(ctx, waybill)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("waybill not found")
		}
		return nil, err
	}
	order, err := u.orderRepo.GetByID(ctx, shipment.OrderID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOrderAccess(order, userID, role); err != nil {
		return nil, err
	}
	return order, nil
}

func authorizeOrderAccess(order *entities.Order, userID uuid.UUID, role string) error {
	if role == entities.UserRoleAdmin || order.ClientID == userID {
		return nil
	}
	return domainerrors.Forbidden("order belongs to another account")
}

func matchShipmentFilters(shipments []*entities.Shipment, filters ListFilters) bool {
	if filters.Waybill == "" && filters.Status == "" {
		return true
	}
	for _, s := range shipments {
		if filters.Waybill != "" && s.Waybill != filters.Waybill {
			continue
		}
		if filters.Status != "" && !strings.EqualFold(s.Status, filters.Status) {
			continue
		}
		return true
	}
	return false
}
