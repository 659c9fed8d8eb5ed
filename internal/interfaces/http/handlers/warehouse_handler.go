package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"shipstack.backend/internal/domain/entities"
	domainerrors "shipstack.backend/internal/domain/errors"
	"shipstack.backend/internal/interfaces/http/middleware"
	"shipstack.backend/internal/interfaces/http/response"
	"shipstack.backend/internal/usecases"
)

type warehouseService interface {
	CreateWarehouse(ctx context.Context, userID uuid.UUID, input *entities.CreateWarehouseInput) (*entities.Warehouse, error)
	ListWarehouses(ctx context.Context, userID uuid.UUID) ([]*entities.Warehouse, error)
}

// WarehouseHandler handles pickup-location endpoints
type WarehouseHandler struct {
	warehouseUsecase warehouseService
}

// NewWarehouseHandler creates a new warehouse handler
func NewWarehouseHandler(warehouseUsecase *usecases.WarehouseUsecase) *WarehouseHandler {
	return &WarehouseHandler{warehouseUsecase: warehouseUsecase}
}

// CreateWarehouse registers a pickup location
// POST /api/v1/warehouses
func (h *WarehouseHandler) CreateWarehouse(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.CreateWarehouseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	warehouse, err := h.warehouseUsecase.CreateWarehouse(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, warehouse)
}

// ListWarehouses returns the caller's pickup locations
// GET /api/v1/warehouses
func (h *WarehouseHandler) ListWarehouses(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	warehouses, err := h.warehouseUsecase.ListWarehouses(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"warehouses": warehouses,
	})
}
