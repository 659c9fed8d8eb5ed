package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"shipstack.backend/internal/domain/entities"
	domainerrors "shipstack.backend/internal/domain/errors"
	"shipstack.backend/internal/domain/repositories"
	"shipstack.backend/internal/infrastructure/carrier"
	"shipstack.backend/pkg/logger"
	"shipstack.backend/pkg/utils"
)

// manifestClient is the slice of the carrier client the settlement
// orchestrator needs
type manifestClient interface {
	GetRate(ctx context.Context, req carrier.RateRequest) (decimal.Decimal, error)
	CreateOrder(ctx context.Context, req carrier.CreateOrderRequest) (*carrier.CreateOrderResult, error)
}

// CreateOrderInput is a forward-order request. The order id on the
// first line names the whole order.
type CreateOrderInput struct {
	WarehouseID uuid.UUID               `json:"warehouse_id" binding:"required"`
	Shipments   []entities.ShipmentLine `json:"shipments" binding:"required"`
}

// OrderUsecase runs the settlement flow for forward orders: price the
// shipment, reserve the charge against the wallet under a row lock,
// commit the manifest with the carrier once, and persist everything or
// nothing locally. A durable intent record brackets the carrier call so
// a crash between commit and persistence is detectable.
type OrderUsecase struct {
	userRepo      repositories.UserRepository
	walletRepo    repositories.WalletRepository
	ledgerRepo    repositories.LedgerRepository
	orderRepo     repositories.OrderRepository
	shipmentRepo  repositories.ShipmentRepository
	customerRepo  repositories.CustomerRepository
	intentRepo    repositories.IntentRepository
	warehouseRepo repositories.WarehouseRepository
	productRepo   repositories.ProductRepository
	carrier       manifestClient
	uow           repositories.UnitOfWork
}

func NewOrderUsecase(
	userRepo repositories.UserRepository,
	walletRepo repositories.WalletRepository,
	ledgerRepo repositories.LedgerRepository,
	orderRepo repositories.OrderRepository,
	shipmentRepo repositories.ShipmentRepository,
	customerRepo repositories.CustomerRepository,
	intentRepo repositories.IntentRepository,
	warehouseRepo repositories.WarehouseRepository,
	productRepo repositories.ProductRepository,
	carrierClient manifestClient,
	uow repositories.UnitOfWork,
) *OrderUsecase {
	return &OrderUsecase{
		userRepo:      userRepo,
		walletRepo:    walletRepo,
		ledgerRepo:    ledgerRepo,
		orderRepo:     orderRepo,
		shipmentRepo:  shipmentRepo,
		customerRepo:  customerRepo,
		intentRepo:    intentRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		carrier:       carrierClient,
		uow:           uow,
	}
}

// GenerateUniqueOrderID returns a 10-digit order id unused by any
// existing order.
func (u *OrderUsecase) GenerateUniqueOrderID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		id := utils.GenerateOrderID()
		exists, err := u.orderRepo.ExistsUniqueID(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", domainerrors.InternalError(errors.New("could not generate a unique order id"))
}

// CreateForwardOrder prices, charges and manifests an order. The first
// line's route and weight price the whole order; the wallet balance
// check and the debit run inside one transaction holding the wallet row
// lock so concurrent orders cannot both pass the check.
func (u *OrderUsecase) CreateForwardOrder(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*entities.Order, error) {
	if len(input.Shipments) == 0 {
		return nil, domainerrors.BadRequest("at least one shipment is required")
	}
	first := input.Shipments[0]
	orderUniqueID := first.Order

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	warehouse, err := u.warehouseRepo.GetByID(ctx, input.WarehouseID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("warehouse not found")
		}
		return nil, err
	}

	exists, err := u.orderRepo.ExistsUniqueID(ctx, orderUniqueID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerrors.Conflict("order id already used")
	}

	mode, err := carrierMode(first.ShippingMode)
	if err != nil {
		return nil, err
	}
	base, err := u.carrier.GetRate(ctx, carrier.RateRequest{
		Mode:        mode,
		WeightGrams: int(first.WeightGrams),
		OriginPin:   warehouse.Pincode,
		DestPin:     first.Pin,
		PaymentType: carrierPaymentType(first.PaymentMode),
	})
	if err != nil {
		return nil, err
	}
	total := applyMargin(base, user.Margin)

	enriched := u.enrichLines(ctx, input.Shipments)

	intent := &entities.OrderIntent{
		UserID:        userID,
		WarehouseID:   warehouse.ID,
		OrderUniqueID: orderUniqueID,
		Amount:        total,
		Status:        entities.IntentStatusPending,
	}
	if err := u.intentRepo.Create(ctx, intent); err != nil {
		return nil, err
	}

	var (
		order  *entities.Order
		commit *carrier.CreateOrderResult
	)
	txErr := u.uow.Do(ctx, func(txCtx context.Context) error {
		txCtx = u.uow.WithLock(txCtx)

		wallet, err := u.walletRepo.GetActiveByUserID(txCtx, userID)
		if err != nil {
			return err
		}
		credits, debits, err := u.ledgerRepo.CompletedTotals(txCtx, wallet.ID)
		if err != nil {
			return err
		}
		balance := credits.Sub(debits)
		if balance.LessThan(total) {
			shortfall := total.Sub(balance)
			return domainerrors.NewAppError(http.StatusBadRequest,
				fmt.Sprintf("insufficient wallet balance, need %s more", shortfall.StringFixed(2)),
				domainerrors.ErrInsufficientFunds)
		}

		commit, err = u.carrier.CreateOrder(ctx, carrier.CreateOrderRequest{
			PickupName: warehouse.FacilityName,
			Shipments:  buildManifest(input.Shipments, orderUniqueID),
		})
		if err != nil {
			return err
		}
		if len(commit.Waybills) != len(input.Shipments) {
			return domainerrors.ErrInconsistentState
		}

		customer := customerFromLine(first)
		if err := u.customerRepo.Create(txCtx, customer); err != nil {
			return err
		}

		order = &entities.Order{
			OrderUniqueID:  orderUniqueID,
			CustomerID:     customer.ID,
			WarehouseID:    warehouse.ID,
			ClientID:       userID,
			PaymentMode:    first.PaymentMode,
			PackagesCount:  len(input.Shipments),
			TotalCODAmount: totalCOD(input.Shipments),
			UploadWBN:      commit.UploadWBN,
		}
		if err := u.orderRepo.Create(txCtx, order); err != nil {
			return err
		}

		for i, line := range input.Shipments {
			shipment := &entities.Shipment{
				OrderID:        order.ID,
				TrackingNumber: commit.Waybills[i],
				Waybill:        commit.Waybills[i],
				Status:         "Manifested",
				WeightGrams:    decimal.NewFromFloat(line.WeightGrams),
				CODAmount:      decimal.NewFromFloat(line.CODAmount),
				ProductDetails: entities.ProductDetails{
					ShippingMode: line.ShippingMode,
					Dimensions: entities.Dimensions{
						Height: line.Height,
						Width:  line.Width,
						Length: line.Length,
					},
					Fragile:          line.FragileShipment,
					PlasticPackaging: line.PlasticPackaging,
					Items:            enriched[i],
				},
			}
			if err := u.shipmentRepo.Create(txCtx, shipment); err != nil {
				return err
			}
		}

		debit := &entities.LedgerEntry{
			WalletID:      wallet.ID,
			Type:          entities.EntryTypeDebit,
			Amount:        total,
			Description:   debitDescription(orderUniqueID, enriched),
			TransactionID: utils.GenerateTransactionID(),
			Status:        entities.EntryStatusCompleted,
		}
		return u.ledgerRepo.CreateEntry(txCtx, debit)
	})

	if txErr != nil {
		// Intent transitions happen on the base context: the
		// transaction above has rolled back and must not swallow them.
		if commit != nil {
			logger.Error(ctx, "order persisted with carrier but not locally, intent stuck",
				zap.String("order_unique_id", orderUniqueID),
				zap.String("upload_wbn", commit.UploadWBN),
				zap.Strings("waybills", commit.Waybills),
				zap.Error(txErr),
			)
			if err := u.intentRepo.MarkStuck(ctx, intent.ID, txErr.Error()); err != nil {
				logger.Error(ctx, "failed to mark intent stuck",
					zap.String("intent_id", intent.ID.String()), zap.Error(err))
			}
			return nil, domainerrors.InternalError(domainerrors.ErrInconsistentState)
		}
		if err := u.intentRepo.MarkFailed(ctx, intent.ID, txErr.Error()); err != nil {
			logger.Error(ctx, "failed to mark intent failed",
				zap.String("intent_id", intent.ID.String()), zap.Error(err))
		}
		return nil, txErr
	}

	if err := u.intentRepo.MarkCommitted(ctx, intent.ID, commit.UploadWBN, commit.Waybills[0]); err != nil {
		logger.Error(ctx, "failed to mark intent committed",
			zap.String("intent_id", intent.ID.String()), zap.Error(err))
	}

	return order, nil
}

// enrichLines resolves catalog items per line. A missing product keeps
// the reference but is tagged unenriched rather than dropped, so the
// caller can tell a failed lookup apart from an empty item list.
func (u *OrderUsecase) enrichLines(ctx context.Context, lines []entities.ShipmentLine) [][]entities.LineItem {
	enriched := make([][]entities.LineItem, len(lines))
	for i, line := range lines {
		items := make([]entities.LineItem, 0, len(line.Items))
		for _, ref := range line.Items {
			qty := ref.Quantity
			if qty <= 0 {
				qty = 1
			}
			product, err := u.productRepo.GetWithCategory(ctx, ref.ProductID)
			if err != nil {
				items = append(items, entities.LineItem{
					ProductID: ref.ProductID,
					Quantity:  qty,
					Enriched:  false,
				})
				continue
			}
			items = append(items, entities.LineItem{
				ProductID:   ref.ProductID,
				Quantity:    qty,
				Enriched:    true,
				Description: product.ItemName,
				Category:    product.CategoryName,
				SKU:         product.SKUCode,
				Price:       product.Price,
			})
		}
		enriched[i] = items
	}
	return enriched
}

func buildManifest(lines []entities.ShipmentLine, orderUniqueID string) []carrier.ManifestShipment {
	shipments := make([]carrier.ManifestShipment, 0, len(lines))
	for _, line := range lines {
		shipments = append(shipments, carrier.ManifestShipment{
			OrderID:         orderUniqueID,
			Name:            line.Name,
			Address:         line.Address,
			Pin:             line.Pin,
			City:            line.City,
			State:           line.State,
			Country:         "India",
			Phone:           line.Phone,
			PaymentMode:     line.PaymentMode,
			CODAmount:       decimal.NewFromFloat(line.CODAmount).StringFixed(2),
			WeightGrams:     decimal.NewFromFloat(line.WeightGrams).StringFixed(2),
			ShippingMode:    line.ShippingMode,
			ShipmentHeight:  fmt.Sprintf("%g", line.Height),
			ShipmentWidth:   fmt.Sprintf("%g", line.Width),
			ShipmentLength:  fmt.Sprintf("%g", line.Length),
			FragileShipment: line.FragileShipment,
		})
	}
	return shipments
}

func customerFromLine(line entities.ShipmentLine) *entities.Customer {
	firstName := line.Name
	lastName := ""
	if parts := strings.Fields(line.Name); len(parts) > 1 {
		firstName = parts[0]
		lastName = strings.Join(parts[1:], " ")
	}
	return &entities.Customer{
		FirstName:             firstName,
		LastName:              lastName,
		Email:                 line.Email,
		MobileNumber:          line.Phone,
		ShippingAddressLine1:  line.Address,
		ShippingCity:          line.City,
		ShippingState:         line.State,
		ShippingPincode:       line.Pin,
		ShippingSameAsBilling: true,
	}
}

func totalCOD(lines []entities.ShipmentLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		if line.PaymentMode == entities.PaymentModeCOD {
			total = total.Add(decimal.NewFromFloat(line.CODAmount))
		}
	}
	return total
}

// debitDescription lists the shipped items on the ledger entry so the
// wallet statement is readable without joining order tables.
func debitDescription(orderUniqueID string, enriched [][]entities.LineItem) string {
	var parts []string
	for _, items := range enriched {
		for _, item := range items {
			name := item.Description
			if !item.Enriched {
				name = "unlisted item"
			}
			parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity, name))
		}
	}
	if len(parts) == 0 {
		return "Shipping charge for order " + orderUniqueID
	}
	return fmt.Sprintf("Shipping charge for order %s (%s)", orderUniqueID, strings.Join(parts, ", "))
}
