package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"shipstack.backend/internal/domain/entities"
	domainerrors "shipstack.backend/internal/domain/errors"
	"shipstack.backend/internal/interfaces/http/response"
	"shipstack.backend/internal/usecases"
)

type userAdminService interface {
	ListUsers(ctx context.Context, limit, offset int) ([]*entities.User, int, error)
	UpdateMargin(ctx context.Context, id uuid.UUID, margin decimal.Decimal) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// AdminHandler handles admin account-management endpoints
type AdminHandler struct {
	userUsecase userAdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(userUsecase *usecases.UserUsecase) *AdminHandler {
	return &AdminHandler{userUsecase: userUsecase}
}

// ListUsers returns a page of accounts
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, total, err := h.userUsecase.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"users": users,
		"total": total,
	})
}

type updateMarginRequest struct {
	Margin string `json:"margin" binding:"required"`
}

// UpdateMargin sets a client's quote surcharge percentage
// PATCH /api/v1/admin/users/:id/margin
func (h *AdminHandler) UpdateMargin(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user id"))
		return
	}

	var req updateMarginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	margin, err := decimal.NewFromString(req.Margin)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid margin"))
		return
	}

	if err := h.userUsecase.UpdateMargin(c.Request.Context(), id, margin); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Margin updated",
	})
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetActive toggles whether an account can log in
// PATCH /api/v1/admin/users/:id/active
func (h *AdminHandler) SetActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user id"))
		return
	}

	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.userUsecase.SetActive(c.Request.Context(), id, *req.Active); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Account updated",
	})
}

// DeleteUser removes an account
// DELETE /api/v1/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user id"))
		return
	}

	if err := h.userUsecase.DeleteUser(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Account deleted",
	})
}
