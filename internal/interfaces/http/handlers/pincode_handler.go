package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "shipstack.backend/internal/domain/errors"
	"shipstack.backend/internal/infrastructure/carrier"
	"shipstack.backend/internal/interfaces/http/response"
)

type pincodeService interface {
	PincodeServiceability(ctx context.Context, pincode string) (*carrier.PincodeInfo, error)
}

// PincodeHandler proxies serviceability lookups to the carrier
type PincodeHandler struct {
	carrier pincodeService
}

// NewPincodeHandler creates a new pincode handler
func NewPincodeHandler(carrierClient pincodeService) *PincodeHandler {
	return &PincodeHandler{carrier: carrierClient}
}

type pincodeRequest struct {
	Pincode string `json:"pincode" binding:"required"`
}

// Serviceability reports whether the carrier delivers to a pincode
// POST /api/v1/pincode/serviceability
func (h *PincodeHandler) Serviceability(c *gin.Context) {
	var req pincodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	info, err := h.carrier.PincodeServiceability(c.Request.Context(), req.Pincode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"serviceable": info.Serviceable,
		"cod":         info.COD,
		"prepaid":     info.Prepaid,
	})
}

// Data returns the city/state the carrier has on file for a pincode
// POST /api/v1/pincode/data
func (h *PincodeHandler) Data(c *gin.Context) {
	var req pincodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	info, err := h.carrier.PincodeServiceability(c.Request.Context(), req.Pincode)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !info.Serviceable {
		response.Error(c, domainerrors.NotFound("pincode not served"))
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"pincode": info.Pincode,
		"city":    info.City,
		"state":   info.State,
		"country": "India",
	})
}
