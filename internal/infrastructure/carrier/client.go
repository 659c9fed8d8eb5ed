package carrier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	domainerrors "shipstack.backend/internal/domain/errors"
	"shipstack.backend/pkg/logger"
)

// Mode codes accepted by the carrier rate API
const (
	ModeExpress = "E"
	ModeSurface = "S"
)

// RateRequest carries the parameters for a shipping charge lookup
type RateRequest struct {
	Mode          string
	WeightGrams   int
	OriginPin     string
	DestPin       string
	PaymentType   string // "Pre-paid" or "COD"
	DeclaredValue decimal.Decimal
}

// CreateOrderRequest is the manifest batch sent to the carrier
type CreateOrderRequest struct {
	PickupName string
	Shipments  []ManifestShipment
}

// ManifestShipment mirrors the carrier's package payload
type ManifestShipment struct {
	OrderID         string `json:"order"`
	Name            string `json:"name"`
	Address         string `json:"add"`
	Pin             string `json:"pin"`
	City            string `json:"city"`
	State           string `json:"state"`
	Country         string `json:"country"`
	Phone           string `json:"phone"`
	PaymentMode     string `json:"payment_mode"`
	CODAmount       string `json:"cod_amount"`
	TotalAmount     string `json:"total_amount"`
	WeightGrams     string `json:"weight"`
	ShippingMode    string `json:"shipping_mode"`
	ProductsDesc    string `json:"products_desc"`
	ShipmentWidth   string `json:"shipment_width"`
	ShipmentHeight  string `json:"shipment_height"`
	ShipmentLength  string `json:"shipment_length"`
	FragileShipment bool   `json:"fragile_shipment"`
}

// CreateOrderResult is the committed manifest: a batch id plus one
// waybill per package.
type CreateOrderResult struct {
	UploadWBN string
	Waybills  []string
}

// PincodeInfo reports serviceability flags for a delivery pincode
type PincodeInfo struct {
	Pincode     string
	City        string
	State       string
	Serviceable bool
	COD         bool
	Prepaid     bool
}

// Client talks to the carrier's REST API. All calls are bounded by the
// configured timeout.
type Client struct {
	baseURL    string
	token      string
	pickupName string
	httpClient *http.Client
}

func NewClient(baseURL, token, pickupName string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		pickupName: pickupName,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetRate returns the carrier's base freight charge for a single
// package. A response without a total amount means no rate exists for
// the lane and yields ErrNoRateFound.
func (c *Client) GetRate(ctx context.Context, req RateRequest) (decimal.Decimal, error) {
	params := url.Values{}
	params.Set("md", req.Mode)
	params.Set("cgm", fmt.Sprintf("%d", req.WeightGrams))
	params.Set("o_pin", req.OriginPin)
	params.Set("d_pin", req.DestPin)
	params.Set("ss", "Delivered")
	params.Set("pt", req.PaymentType)
	if req.DeclaredValue.IsPositive() {
		params.Set("dv", req.DeclaredValue.StringFixed(2))
	}

	body, err := c.get(ctx, "/api/kinko/v1/invoice/charges/.json?"+params.Encode())
	if err != nil {
		return decimal.Zero, err
	}

	var rates []struct {
		TotalAmount json.Number `json:"total_amount"`
	}
	if err := json.Unmarshal(body, &rates); err != nil {
		return decimal.Zero, domainerrors.ErrNoRateFound
	}
	if len(rates) == 0 || rates[0].TotalAmount.String() == "" {
		return decimal.Zero, domainerrors.ErrNoRateFound
	}
	amount, err := decimal.NewFromString(rates[0].TotalAmount.String())
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, domainerrors.ErrNoRateFound
	}
	return amount, nil
}

// CreateOrder commits a manifest with the carrier. The call is not
// retried: a failure after this point requires reconciliation, not a
// second attempt, since the carrier may have partially registered the
// batch.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error) {
	payload := map[string]interface{}{
		"shipments": req.Shipments,
		"pickup_location": map[string]string{
			"name": req.PickupName,
		},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	form := "format=json&data=" + url.QueryEscape(string(raw))
	body, err := c.postForm(ctx, "/api/cmu/create.json", form)
	if err != nil {
		if errors.Is(err, domainerrors.ErrCarrierUnavailable) {
			return nil, domainerrors.ErrCarrierCommitFailed
		}
		return nil, err
	}

	var resp struct {
		Success   bool   `json:"success"`
		UploadWBN string `json:"upload_wbn"`
		Packages  []struct {
			Waybill string `json:"waybill"`
			Status  string `json:"status"`
		} `json:"packages"`
		RMK string `json:"rmk"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domainerrors.ErrCarrierCommitFailed
	}
	if !resp.Success || len(resp.Packages) == 0 {
		logger.Warn(ctx, "carrier rejected manifest", zap.String("remark", resp.RMK))
		return nil, domainerrors.ErrCarrierCommitFailed
	}

	result := &CreateOrderResult{UploadWBN: resp.UploadWBN}
	for _, p := range resp.Packages {
		if p.Waybill == "" {
			return nil, domainerrors.ErrCarrierCommitFailed
		}
		result.Waybills = append(result.Waybills, p.Waybill)
	}
	return result, nil
}

// RegisterWarehouse registers a pickup location with the carrier so it
// can be named in later manifests.
func (c *Client) RegisterWarehouse(ctx context.Context, name, contactPerson, phone, address, city, pin, country string) error {
	payload := map[string]interface{}{
		"name":            name,
		"registered_name": contactPerson,
		"phone":           phone,
		"address":         address,
		"city":            city,
		"pin":             pin,
		"country":         country,
		"return_address":  address,
		"return_pin":      pin,
		"return_city":     city,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	body, err := c.postJSON(ctx, "/api/backend/clientwarehouse/create/", raw)
	if err != nil {
		return err
	}

	var resp struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || !resp.Success {
		return domainerrors.ErrCarrierUnavailable
	}
	return nil
}

// TrackShipment returns the carrier's latest status string for a waybill
func (c *Client) TrackShipment(ctx context.Context, waybill string) (string, error) {
	body, err := c.get(ctx, "/api/v1/packages/json/?waybill="+url.QueryEscape(waybill))
	if err != nil {
		return "", err
	}

	var resp struct {
		ShipmentData []struct {
			Shipment struct {
				Status struct {
					Status string `json:"Status"`
				} `json:"Status"`
			} `json:"Shipment"`
		} `json:"ShipmentData"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", domainerrors.ErrCarrierUnavailable
	}
	if len(resp.ShipmentData) == 0 {
		return "", domainerrors.ErrNotFound
	}
	return resp.ShipmentData[0].Shipment.Status.Status, nil
}

// PackingSlip fetches the PDF shipping label for the given waybills
func (c *Client) PackingSlip(ctx context.Context, waybills []string) ([]byte, error) {
	path := "/api/p/packing_slip?wbns=" + url.QueryEscape(strings.Join(waybills, ",")) + "&pdf=true"
	return c.get(ctx, path)
}

// EditShipment updates package details (weight, payment) on an already
// manifested waybill.
func (c *Client) EditShipment(ctx context.Context, waybill string, fields map[string]interface{}) error {
	payload := map[string]interface{}{"waybill": waybill}
	for k, v := range fields {
		payload[k] = v
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	body, err := c.postJSON(ctx, "/api/p/edit", raw)
	if err != nil {
		return err
	}

	var resp struct {
		Status bool `json:"status"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || !resp.Status {
		return domainerrors.ErrCarrierUnavailable
	}
	return nil
}

// PincodeServiceability looks up delivery coverage for a pincode
func (c *Client) PincodeServiceability(ctx context.Context, pincode string) (*PincodeInfo, error) {
	body, err := c.get(ctx, "/c/api/pin-codes/json/?filter_codes="+url.QueryEscape(pincode))
	if err != nil {
		return nil, err
	}

	var resp struct {
		DeliveryCodes []struct {
			PostalCode struct {
				Pin       json.Number `json:"pin"`
				City      string      `json:"city"`
				StateCode string      `json:"state_code"`
				COD       string      `json:"cod"`
				PrePaid   string      `json:"pre_paid"`
			} `json:"postal_code"`
		} `json:"delivery_codes"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domainerrors.ErrCarrierUnavailable
	}
	if len(resp.DeliveryCodes) == 0 {
		return &PincodeInfo{Pincode: pincode, Serviceable: false}, nil
	}

	pc := resp.DeliveryCodes[0].PostalCode
	return &PincodeInfo{
		Pincode:     pc.Pin.String(),
		City:        pc.City,
		State:       pc.StateCode,
		Serviceable: true,
		COD:         pc.COD == "Y",
		Prepaid:     pc.PrePaid == "Y",
	}, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

func (c *Client) postForm(ctx context.Context, path, form string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

func (c *Client) postJSON(ctx context.Context, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn(req.Context(), "carrier request failed",
			zap.String("path", req.URL.Path), zap.Error(err))
		return nil, domainerrors.ErrCarrierUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domainerrors.ErrCarrierUnavailable
	}
	if resp.StatusCode >= 500 {
		logger.Warn(req.Context(), "carrier returned server error",
			zap.String("path", req.URL.Path), zap.Int("status", resp.StatusCode))
		return nil, domainerrors.ErrCarrierUnavailable
	}
	if resp.StatusCode >= 400 {
		return nil, domainerrors.BadGateway(fmt.Sprintf("carrier returned status %d", resp.StatusCode), nil)
	}
	return body, nil
}
