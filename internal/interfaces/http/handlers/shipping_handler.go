package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"shipstack.backend/internal/domain/entities"
	domainerrors "shipstack.backend/internal/domain/errors"
	"shipstack.backend/internal/interfaces/http/middleware"
	"shipstack.backend/internal/interfaces/http/response"
	"shipstack.backend/internal/usecases"
)

type quoteService interface {
	GetShippingCost(ctx context.Context, userID uuid.UUID, input usecases.QuoteInput) (decimal.Decimal, error)
}

type orderService interface {
	CreateForwardOrder(ctx context.Context, userID uuid.UUID, input usecases.CreateOrderInput) (*entities.Order, error)
	GenerateUniqueOrderID(ctx context.Context) (string, error)
}

type trackingService interface {
	TrackWaybill(ctx context.Context, waybill string) (string, error)
	GetOrderDetails(ctx context.Context, userID uuid.UUID, role, orderUniqueID string) (*usecases.OrderDetails, error)
	ListOrders(ctx context.Context, userID uuid.UUID, role string, filters usecases.ListFilters) ([]*usecases.OrderDetails, error)
	GetLabel(ctx context.Context, userID uuid.UUID, role, waybill string) ([]byte, error)
	EditShipment(ctx context.Context, userID uuid.UUID, role string, input usecases.EditShipmentInput) error
}

// ShippingHandler handles quoting, order creation and post-manifest
// order endpoints
type ShippingHandler struct {
	quoteUsecase    quoteService
	orderUsecase    orderService
	trackingUsecase trackingService
}

// NewShippingHandler creates a new shipping handler
func NewShippingHandler(
	quoteUsecase *usecases.QuoteUsecase,
	orderUsecase *usecases.OrderUsecase,
	trackingUsecase *usecases.TrackingUsecase,
) *ShippingHandler {
	return &ShippingHandler{
		quoteUsecase:    quoteUsecase,
		orderUsecase:    orderUsecase,
		trackingUsecase: trackingUsecase,
	}
}

// GetShippingCost prices a route with the caller's margin applied
// POST /api/v1/shipping/cost
func (h *ShippingHandler) GetShippingCost(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input usecases.QuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	cost, err := h.quoteUsecase.GetShippingCost(c.Request.Context(), userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"total_amount": cost,
	})
}

// GenerateOrderID returns an unused 10-digit order id
// GET /api/v1/shipping/order-id
func (h *ShippingHandler) GenerateOrderID(c *gin.Context) {
	id, err := h.orderUsecase.GenerateUniqueOrderID(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"order_id": id,
	})
}

// CreateOrder runs the settlement flow for a forward order
// POST /api/v1/shipping/orders
func (h *ShippingHandler) CreateOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input usecases.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	order, err := h.orderUsecase.CreateForwardOrder(c.Request.Context(), userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message":         "Order created",
		"order_id":        order.ID,
		"order_unique_id": order.OrderUniqueID,
		"upload_wbn":      order.UploadWBN,
	})
}

type orderDetailsRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

// OrderDetails returns one order with live shipment statuses
// POST /api/v1/shipping/orders/details
func (h *ShippingHandler) OrderDetails(c *gin.Context) {
	userID, role, ok := callerIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var req orderDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	details, err := h.trackingUsecase.GetOrderDetails(c.Request.Context(), userID, role, req.OrderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, details)
}

// ListOrders returns the caller's orders, filtered
// POST /api/v1/shipping/orders/list
func (h *ShippingHandler) ListOrders(c *gin.Context) {
	userID, role, ok := callerIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var filters usecases.ListFilters
	if err := c.ShouldBindJSON(&filters); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	orders, err := h.trackingUsecase.ListOrders(c.Request.Context(), userID, role, filters)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// TrackWaybill returns the carrier's current status for a waybill
// GET /api/v1/shipping/track/:waybill
func (h *ShippingHandler) TrackWaybill(c *gin.Context) {
	waybill := c.Param("waybill")
	if waybill == "" {
		response.Error(c, domainerrors.BadRequest("waybill is required"))
		return
	}

	status, err := h.trackingUsecase.TrackWaybill(c.Request.Context(), waybill)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"waybill": waybill,
		"status":  status,
	})
}

type labelRequest struct {
	Waybill string `json:"waybill" binding:"required"`
}

// GetLabel streams the PDF shipping label for a waybill
// POST /api/v1/shipping/label
func (h *ShippingHandler) GetLabel(c *gin.Context) {
	userID, role, ok := callerIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var req labelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	pdf, err := h.trackingUsecase.GetLabel(c.Request.Context(), userID, role, req.Waybill)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(http.StatusOK, "application/pdf", pdf)
}

// EditShipment updates a manifested package with the carrier and locally
// POST /api/v1/shipping/edit
func (h *ShippingHandler) EditShipment(c *gin.Context) {
	userID, role, ok := callerIdentity(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input usecases.EditShipmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.trackingUsecase.EditShipment(c.Request.Context(), userID, role, input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Shipment updated",
	})
}

func callerIdentity(c *gin.Context) (uuid.UUID, string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, "", false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return uuid.Nil, "", false
	}
	return userID, role, true
}
