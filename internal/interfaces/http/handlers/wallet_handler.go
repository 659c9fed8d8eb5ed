package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	domainerrors "shipstack.backend/internal/domain/errors"
	"shipstack.backend/internal/interfaces/http/middleware"
	"shipstack.backend/internal/interfaces/http/response"
	"shipstack.backend/internal/usecases"
)

type walletService interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}

type rechargeService interface {
	CreateRechargeLink(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*usecases.RechargeLink, error)
	HandleCallback(ctx context.Context, transactionID, status string) error
}

// WalletHandler handles wallet and recharge endpoints
type WalletHandler struct {
	walletUsecase   walletService
	rechargeUsecase rechargeService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletUsecase *usecases.WalletUsecase, rechargeUsecase *usecases.RechargeUsecase) *WalletHandler {
	return &WalletHandler{
		walletUsecase:   walletUsecase,
		rechargeUsecase: rechargeUsecase,
	}
}

// GetBalance returns the derived wallet balance
// GET /api/v1/wallet/balance
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	balance, err := h.walletUsecase.GetBalance(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"balance": balance,
	})
}

type rechargeRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// CreateRechargeLink starts a wallet top-up
// POST /api/v1/recharge/link
func (h *WalletHandler) CreateRechargeLink(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var req rechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid amount"))
		return
	}

	link, err := h.rechargeUsecase.CreateRechargeLink(c.Request.Context(), userID, amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, link)
}

// RechargeCallback settles a recharge from the gateway redirect.
// Always 200 on handled input: the gateway retries non-2xx responses.
// GET /api/v1/recharge/callback
func (h *WalletHandler) RechargeCallback(c *gin.Context) {
	transactionID := c.Query("transaction_id")
	status := c.Query("razorpay_payment_link_status")
	if status == "" {
		status = c.Query("status")
	}
	if transactionID == "" {
		response.Error(c, domainerrors.BadRequest("transaction_id is required"))
		return
	}

	if err := h.rechargeUsecase.HandleCallback(c.Request.Context(), transactionID, status); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "callback processed",
	})
}
