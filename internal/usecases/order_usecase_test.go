package usecases_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"shipstack.backend/internal/domain/entities"
	domainerrors "shipstack.backend/internal/domain/errors"
	"shipstack.backend/internal/infrastructure/carrier"
	"shipstack.backend/internal/usecases"
)

type orderTestDeps struct {
	userRepo      *MockUserRepository
	walletRepo    *MockWalletRepository
	ledgerRepo    *MockLedgerRepository
	orderRepo     *MockOrderRepository
	shipmentRepo  *MockShipmentRepository
	customerRepo  *MockCustomerRepository
	intentRepo    *MockIntentRepository
	warehouseRepo *MockWarehouseRepository
	productRepo   *MockProductRepository
	carrier       *MockCarrierClient
	uow           *MockUnitOfWork
}

func newOrderTestDeps() *orderTestDeps {
	return &orderTestDeps{
		userRepo:      new(MockUserRepository),
		walletRepo:    new(MockWalletRepository),
		ledgerRepo:    new(MockLedgerRepository),
		orderRepo:     new(MockOrderRepository),
		shipmentRepo:  new(MockShipmentRepository),
		customerRepo:  new(MockCustomerRepository),
		intentRepo:    new(MockIntentRepository),
		warehouseRepo: new(MockWarehouseRepository),
		productRepo:   new(MockProductRepository),
		carrier:       new(MockCarrierClient),
		uow:           new(MockUnitOfWork),
	}
}

func (d *orderTestDeps) usecase() *usecases.OrderUsecase {
	return usecases.NewOrderUsecase(
		d.userRepo, d.walletRepo, d.ledgerRepo, d.orderRepo, d.shipmentRepo,
		d.customerRepo, d.intentRepo, d.warehouseRepo, d.productRepo,
		d.carrier, d.uow,
	)
}

func forwardOrderInput(warehouseID uuid.UUID, items []entities.ItemRef) usecases.CreateOrderInput {
	return usecases.CreateOrderInput{
		WarehouseID: warehouseID,
		Shipments: []entities.ShipmentLine{{
			Name:         "Ravi Kumar",
			Address:      "12 MG Road",
			City:         "Bengaluru",
			State:        "Karnataka",
			Pin:          "560001",
			Phone:        "9876543210",
			PaymentMode:  entities.PaymentModeCOD,
			Order:        "ORD-1234567890",
			ShippingMode: entities.ShippingModeExpress,
			WeightGrams:  500,
			CODAmount:    750,
			Items:        items,
		}},
	}
}

// seedPreflight wires the lookups every forward order performs before
// the transaction: user, warehouse and order-id uniqueness.
func (d *orderTestDeps) seedPreflight(userID, warehouseID uuid.UUID, margin string) {
	d.userRepo.On("GetByID", mock.Anything, userID).
		Return(&entities.User{ID: userID, Margin: decimal.RequireFromString(margin)}, nil).Once()
	d.warehouseRepo.On("GetByID", mock.Anything, warehouseID).
		Return(&entities.Warehouse{ID: warehouseID, FacilityName: "Main Facility", Pincode: "110001"}, nil).Once()
	d.orderRepo.On("ExistsUniqueID", mock.Anything, "ORD-1234567890").Return(false, nil).Once()
}

func TestOrderUsecase_CreateForwardOrder_HappyPath(t *testing.T) {
	d := newOrderTestDeps()
	uc := d.usecase()
	ctx := context.Background()

	userID := uuid.New()
	warehouseID := uuid.New()
	walletID := uuid.New()
	knownProduct := uuid.New()
	missingProduct := uuid.New()

	d.seedPreflight(userID, warehouseID, "10")
	d.carrier.On("GetRate", mock.Anything, mock.MatchedBy(func(req carrier.RateRequest) bool {
		return req.OriginPin == "110001" && req.DestPin == "560001" &&
			req.Mode == carrier.ModeExpress && req.PaymentType == "COD"
	})).Return(decimal.RequireFromString("100"), nil).Once()

	d.productRepo.On("GetWithCategory", mock.Anything, knownProduct).
		Return(&entities.Product{
			ID:           knownProduct,
			ItemName:     "Steel bottle",
			SKUCode:      "SKU-9",
			Price:        decimal.RequireFromString("349"),
			CategoryName: "Kitchen",
		}, nil).Once()
	d.productRepo.On("GetWithCategory", mock.Anything, missingProduct).
		Return(nil, domainerrors.ErrNotFound).Once()

	var intentID uuid.UUID
	d.intentRepo.On("Create", mock.Anything, mock.MatchedBy(func(i *entities.OrderIntent) bool {
		return i.Status == entities.IntentStatusPending &&
			i.OrderUniqueID == "ORD-1234567890" &&
			i.Amount.Equal(decimal.RequireFromString("110"))
	})).Run(func(args mock.Arguments) {
		intent := args.Get(1).(*entities.OrderIntent)
		intent.ID = uuid.New()
		intentID = intent.ID
	}).Return(nil).Once()

	d.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	d.uow.On("WithLock", mock.Anything).Return().Once()
	d.walletRepo.On("GetActiveByUserID", mock.Anything, userID).
		Return(&entities.Wallet{ID: walletID, UserID: userID}, nil).Once()
	d.ledgerRepo.On("CompletedTotals", mock.Anything, walletID).
		Return(decimal.RequireFromString("150"), decimal.RequireFromString("20"), nil).Once()

	d.carrier.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req carrier.CreateOrderRequest) bool {
		return req.PickupName == "Main Facility" && len(req.Shipments) == 1 &&
			req.Shipments[0].OrderID == "ORD-1234567890"
	})).Return(&carrier.CreateOrderResult{
		UploadWBN: "UPL-42",
		Waybills:  []string{"WB-1001"},
	}, nil).Once()

	d.customerRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *entities.Customer) bool {
		return c.FirstName == "Ravi" && c.LastName == "Kumar" && c.ShippingPincode == "560001"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.Customer).ID = uuid.New()
	}).Return(nil).Once()

	var createdOrder *entities.Order
	d.orderRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			createdOrder = args.Get(1).(*entities.Order)
			createdOrder.ID = uuid.New()
		}).Return(nil).Once()

	var createdShipment *entities.Shipment
	d.shipmentRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			createdShipment = args.Get(1).(*entities.Shipment)
		}).Return(nil).Once()

	var debit *entities.LedgerEntry
	d.ledgerRepo.On("CreateEntry", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			debit = args.Get(1).(*entities.LedgerEntry)
		}).Return(nil).Once()

	d.intentRepo.On("MarkCommitted", mock.Anything, mock.Anything, "UPL-42", "WB-1001").Return(nil).Once()

	order, err := uc.CreateForwardOrder(ctx, userID, forwardOrderInput(warehouseID, []entities.ItemRef{
		{ProductID: knownProduct, Quantity: 2},
		{ProductID: missingProduct, Quantity: 0},
	}))
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, "ORD-1234567890", order.OrderUniqueID)
	assert.Equal(t, "UPL-42", order.UploadWBN)
	assert.Equal(t, 1, order.PackagesCount)
	assert.True(t, order.TotalCODAmount.Equal(decimal.RequireFromString("750")))

	require.NotNil(t, createdShipment)
	assert.Equal(t, "WB-1001", createdShipment.Waybill)
	assert.Equal(t, "Manifested", createdShipment.Status)
	require.Len(t, createdShipment.ProductDetails.Items, 2)
	assert.True(t, createdShipment.ProductDetails.Items[0].Enriched)
	assert.Equal(t, "Steel bottle", createdShipment.ProductDetails.Items[0].Description)
	assert.Equal(t, "Kitchen", createdShipment.ProductDetails.Items[0].Category)
	assert.Equal(t, 2, createdShipment.ProductDetails.Items[0].Quantity)
	assert.False(t, createdShipment.ProductDetails.Items[1].Enriched)
	assert.Equal(t, 1, createdShipment.ProductDetails.Items[1].Quantity, "zero quantity defaults to one")

	require.NotNil(t, debit)
	assert.Equal(t, entities.EntryTypeDebit, debit.Type)
	assert.Equal(t, entities.EntryStatusCompleted, debit.Status)
	assert.True(t, debit.Amount.Equal(decimal.RequireFromString("110")))
	assert.Contains(t, debit.Description, "ORD-1234567890")
	assert.Contains(t, debit.Description, "2x Steel bottle")
	assert.Contains(t, debit.Description, "1x unlisted item")

	assert.NotEqual(t, uuid.Nil, intentID)
	d.intentRepo.AssertExpectations(t)
}

func TestOrderUsecase_CreateForwardOrder_InsufficientFunds(t *testing.T) {
	d := newOrderTestDeps()
	uc := d.usecase()
	ctx := context.Background()

	userID := uuid.New()
	warehouseID := uuid.New()
	walletID := uuid.New()

	d.seedPreflight(userID, warehouseID, "10")
	d.carrier.On("GetRate", mock.Anything, mock.Anything).
		Return(decimal.RequireFromString("100"), nil).Once()
	d.intentRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*entities.OrderIntent).ID = uuid.New() }).
		Return(nil).Once()

	d.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	d.uow.On("WithLock", mock.Anything).Return().Once()
	d.walletRepo.On("GetActiveByUserID", mock.Anything, userID).
		Return(&entities.Wallet{ID: walletID}, nil).Once()
	d.ledgerRepo.On("CompletedTotals", mock.Anything, walletID).
		Return(decimal.RequireFromString("50"), decimal.Zero, nil).Once()
	d.intentRepo.On("MarkFailed", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := uc.CreateForwardOrder(ctx, userID, forwardOrderInput(warehouseID, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Contains(t, appErr.Message, "60.00")

	// The carrier must never see an order the wallet cannot cover,
	// and nothing may be persisted.
	d.carrier.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	d.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	d.shipmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	d.ledgerRepo.AssertNotCalled(t, "CreateEntry", mock.Anything, mock.Anything)
	d.intentRepo.AssertExpectations(t)
}

func TestOrderUsecase_CreateForwardOrder_CarrierRejectionFailsIntent(t *testing.T) {
	d := newOrderTestDeps()
	uc := d.usecase()
	ctx := context.Background()

	userID := uuid.New()
	warehouseID := uuid.New()
	walletID := uuid.New()

	d.seedPreflight(userID, warehouseID, "0")
	d.carrier.On("GetRate", mock.Anything, mock.Anything).
		Return(decimal.RequireFromString("100"), nil).Once()
	d.intentRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*entities.OrderIntent).ID = uuid.New() }).
		Return(nil).Once()

	d.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	d.uow.On("WithLock", mock.Anything).Return().Once()
	d.walletRepo.On("GetActiveByUserID", mock.Anything, userID).
		Return(&entities.Wallet{ID: walletID}, nil).Once()
	d.ledgerRepo.On("CompletedTotals", mock.Anything, walletID).
		Return(decimal.RequireFromString("500"), decimal.Zero, nil).Once()
	d.carrier.On("CreateOrder", mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrCarrierCommitFailed).Once()
	d.intentRepo.On("MarkFailed", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := uc.CreateForwardOrder(ctx, userID, forwardOrderInput(warehouseID, nil))
	assert.ErrorIs(t, err, domainerrors.ErrCarrierCommitFailed)

	d.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	d.ledgerRepo.AssertNotCalled(t, "CreateEntry", mock.Anything, mock.Anything)
	d.intentRepo.AssertNotCalled(t, "MarkStuck", mock.Anything, mock.Anything, mock.Anything)
	d.intentRepo.AssertExpectations(t)
}

func TestOrderUsecase_CreateForwardOrder_PersistenceFailureAfterCommitMarksStuck(t *testing.T) {
	d := newOrderTestDeps()
	uc := d.usecase()
	ctx := context.Background()

	userID := uuid.New()
	warehouseID := uuid.New()
	walletID := uuid.New()

	d.seedPreflight(userID, warehouseID, "0")
	d.carrier.On("GetRate", mock.Anything, mock.Anything).
		Return(decimal.RequireFromString("100"), nil).Once()
	d.intentRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*entities.OrderIntent).ID = uuid.New() }).
		Return(nil).Once()

	d.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	d.uow.On("WithLock", mock.Anything).Return().Once()
	d.walletRepo.On("GetActiveByUserID", mock.Anything, userID).
		Return(&entities.Wallet{ID: walletID}, nil).Once()
	d.ledgerRepo.On("CompletedTotals", mock.Anything, walletID).
		Return(decimal.RequireFromString("500"), decimal.Zero, nil).Once()
	d.carrier.On("CreateOrder", mock.Anything, mock.Anything).
		Return(&carrier.CreateOrderResult{UploadWBN: "UPL-9", Waybills: []string{"WB-9"}}, nil).Once()
	d.customerRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	d.orderRepo.On("Create", mock.Anything, mock.Anything).
		Return(errors.New("disk full")).Once()
	d.intentRepo.On("MarkStuck", mock.Anything, mock.Anything, "disk full").Return(nil).Once()

	_, err := uc.CreateForwardOrder(ctx, userID, forwardOrderInput(warehouseID, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInconsistentState)

	d.intentRepo.AssertNotCalled(t, "MarkFailed", mock.Anything, mock.Anything, mock.Anything)
	d.intentRepo.AssertNotCalled(t, "MarkCommitted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	d.intentRepo.AssertExpectations(t)
}

func TestOrderUsecase_CreateForwardOrder_WaybillCountMismatchMarksStuck(t *testing.T) {
	d := newOrderTestDeps()
	uc := d.usecase()
	ctx := context.Background()

	userID := uuid.New()
	warehouseID := uuid.New()
	walletID := uuid.New()

	d.seedPreflight(userID, warehouseID, "0")
	d.carrier.On("GetRate", mock.Anything, mock.Anything).
		Return(decimal.RequireFromString("100"), nil).Once()
	d.intentRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*entities.OrderIntent).ID = uuid.New() }).
		Return(nil).Once()

	d.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	d.uow.On("WithLock", mock.Anything).Return().Once()
	d.walletRepo.On("GetActiveByUserID", mock.Anything, userID).
		Return(&entities.Wallet{ID: walletID}, nil).Once()
	d.ledgerRepo.On("CompletedTotals", mock.Anything, walletID).
		Return(decimal.RequireFromString("500"), decimal.Zero, nil).Once()
	// One shipment requested, two waybills back: the commit happened but
	// cannot be trusted, so it must surface as stuck.
	d.carrier.On("CreateOrder", mock.Anything, mock.Anything).
		Return(&carrier.CreateOrderResult{UploadWBN: "UPL-9", Waybills: []string{"WB-1", "WB-2"}}, nil).Once()
	d.intentRepo.On("MarkStuck", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := uc.CreateForwardOrder(ctx, userID, forwardOrderInput(warehouseID, nil))
	assert.ErrorIs(t, err, domainerrors.ErrInconsistentState)
	d.intentRepo.AssertExpectations(t)
}

func TestOrderUsecase_CreateForwardOrder_InputValidation(t *testing.T) {
	d := newOrderTestDeps()
	uc := d.usecase()
	ctx := context.Background()

	_, err := uc.CreateForwardOrder(ctx, uuid.New(), usecases.CreateOrderInput{WarehouseID: uuid.New()})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestOrderUsecase_CreateForwardOrder_DuplicateOrderID(t *testing.T) {
	d := newOrderTestDeps()
	uc := d.usecase()
	ctx := context.Background()

	userID := uuid.New()
	warehouseID := uuid.New()
	d.userRepo.On("GetByID", mock.Anything, userID).
		Return(&entities.User{ID: userID}, nil).Once()
	d.warehouseRepo.On("GetByID", mock.Anything, warehouseID).
		Return(&entities.Warehouse{ID: warehouseID, Pincode: "110001"}, nil).Once()
	d.orderRepo.On("ExistsUniqueID", mock.Anything, "ORD-1234567890").Return(true, nil).Once()

	_, err := uc.CreateForwardOrder(ctx, userID, forwardOrderInput(warehouseID, nil))
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
	d.intentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderUsecase_CreateForwardOrder_UnknownWarehouse(t *testing.T) {
	d := newOrderTestDeps()
	uc := d.usecase()
	ctx := context.Background()

	userID := uuid.New()
	warehouseID := uuid.New()
	d.userRepo.On("GetByID", mock.Anything, userID).
		Return(&entities.User{ID: userID}, nil).Once()
	d.warehouseRepo.On("GetByID", mock.Anything, warehouseID).
		Return(nil, domainerrors.ErrNotFound).Once()

	_, err := uc.CreateForwardOrder(ctx, userID, forwardOrderInput(warehouseID, nil))
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestOrderUsecase_GenerateUniqueOrderID_RetriesOnCollision(t *testing.T) {
	d := newOrderTestDeps()
	uc := d.usecase()
	ctx := context.Background()

	d.orderRepo.On("ExistsUniqueID", mock.Anything, mock.Anything).Return(true, nil).Once()
	d.orderRepo.On("ExistsUniqueID", mock.Anything, mock.Anything).Return(false, nil).Once()

	id, err := uc.GenerateUniqueOrderID(ctx)
	assert.NoError(t, err)
	assert.Len(t, id, 10)
	d.orderRepo.AssertNumberOfCalls(t, "ExistsUniqueID", 2)
}

func TestOrderUsecase_GenerateUniqueOrderID_GivesUpAfterFiveAttempts(t *testing.T) {
	d := newOrderTestDeps()
	uc := d.usecase()
	ctx := context.Background()

	d.orderRepo.On("ExistsUniqueID", mock.Anything, mock.Anything).Return(true, nil).Times(5)

	_, err := uc.GenerateUniqueOrderID(ctx)
	assert.Error(t, err)
	d.orderRepo.AssertNumberOfCalls(t, "ExistsUniqueID", 5)
}
