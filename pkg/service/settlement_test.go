package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	infraeventbus "github.com/ozanselte/bankcore/infra/eventbus"
	"github.com/ozanselte/bankcore/internal/fixtures"
	"github.com/ozanselte/bankcore/pkg/domain/ledger"
	"github.com/ozanselte/bankcore/pkg/domain/money"
	"github.com/ozanselte/bankcore/pkg/domain/setting"
	"github.com/ozanselte/bankcore/pkg/domain/stockorder"
	"github.com/ozanselte/bankcore/pkg/dto"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustMoney(t *testing.T, amount int64) money.Money {
	t.Helper()
	m, err := money.NewFromSmallestUnit(amount, "USD")
	require.NoError(t, err)
	return m
}

func pendingOrder(t *testing.T, userID, accountID uuid.UUID, side stockorder.Side, amount int64) *stockorder.StockOrder {
	t.Helper()
	o, err := stockorder.New(userID, accountID, uuid.New(), side, mustMoney(t, amount))
	require.NoError(t, err)
	return o
}

// creditOp fabricates a ledger entry giving accountID the given balance.
func creditOp(t *testing.T, accountID uuid.UUID, amount int64) ledger.Operation {
	t.Helper()
	op, err := ledger.NewTransfer(uuid.New(), accountID, mustMoney(t, amount), "funding")
	require.NoError(t, err)
	return *op
}

func expectFees(uow *fixtures.MockUnitOfWork, purchase, sale string) {
	uow.Settings.On("GetByCode", mock.Anything, setting.CodePurchaseFee).
		Return(&setting.Setting{Code: setting.CodePurchaseFee, Value: purchase}, nil)
	uow.Settings.On("GetByCode", mock.Anything, setting.CodeSaleFee).
		Return(&setting.Setting{Code: setting.CodeSaleFee, Value: sale}, nil)
}

func TestAccept_BuySuccess(t *testing.T) {
	uow := fixtures.NewMockUnitOfWork()
	bus := infraeventbus.NewWithMemory(testLogger())
	svc := NewSettlementService(uow, bus, testLogger())

	owner := uuid.New()
	seller := uuid.New()
	buyAcct := uuid.New()
	sellAcct := uuid.New()
	buyOrder := pendingOrder(t, owner, buyAcct, stockorder.SideBuy, 100)
	sellOrder := pendingOrder(t, seller, sellAcct, stockorder.SideSell, 100)

	uow.StockOrders.On("Get", mock.Anything, buyOrder.ID).Return(buyOrder, nil)
	uow.StockOrders.On("Get", mock.Anything, sellOrder.ID).Return(sellOrder, nil)
	expectFees(uow, "5", "3")
	uow.Operations.On("ListByAccount", mock.Anything, buyAcct).
		Return([]ledger.Operation{creditOp(t, buyAcct, 200)}, nil)
	uow.Operations.On("ListByAccount", mock.Anything, sellAcct).
		Return([]ledger.Operation{creditOp(t, sellAcct, 50)}, nil)
	uow.StockOrders.On("UpdateStatus", mock.Anything, buyOrder.ID, stockorder.StatusCompleted).
		Return(buyOrder, nil)
	uow.StockOrders.On("UpdateStatus", mock.Anything, sellOrder.ID, stockorder.StatusCompleted).
		Return(sellOrder, nil)

	var created []dto.OperationCreate
	uow.Operations.On("Create", mock.Anything, mock.AnythingOfType("dto.OperationCreate")).
		Run(func(args mock.Arguments) {
			created = append(created, args.Get(1).(dto.OperationCreate))
		}).
		Return(&ledger.Operation{}, nil).Times(3)

	err := svc.Accept(context.Background(), owner, buyOrder.ID, sellOrder.ID)
	require.NoError(t, err)
	uow.AssertExpectations(t)

	require.Len(t, created, 3)
	transfer := created[0]
	assert.Equal(t, string(ledger.KindTransfer), transfer.Kind)
	assert.Equal(t, int64(100), transfer.Amount)
	assert.Equal(t, buyAcct, *transfer.FromID)
	assert.Equal(t, sellAcct, *transfer.ToID)

	buyerFee := created[1]
	assert.Equal(t, string(ledger.KindFee), buyerFee.Kind)
	assert.Equal(t, int64(5), buyerFee.Amount)
	assert.Equal(t, buyAcct, *buyerFee.FromID)
	assert.Nil(t, buyerFee.ToID)

	sellerFee := created[2]
	assert.Equal(t, string(ledger.KindFee), sellerFee.Kind)
	assert.Equal(t, int64(3), sellerFee.Amount)
	assert.Equal(t, sellAcct, *sellerFee.FromID)
	assert.Nil(t, sellerFee.ToID)

	require.Len(t, bus.Published(), 1)
}

func TestAccept_SellSuccess(t *testing.T) {
	uow := fixtures.NewMockUnitOfWork()
	svc := NewSettlementService(uow, nil, testLogger())

	owner := uuid.New()
	buyer := uuid.New()
	sellAcct := uuid.New()
	buyAcct := uuid.New()
	sellOrder := pendingOrder(t, owner, sellAcct, stockorder.SideSell, 80)
	buyOrder := pendingOrder(t, buyer, buyAcct, stockorder.SideBuy, 80)

	uow.StockOrders.On("Get", mock.Anything, sellOrder.ID).Return(sellOrder, nil)
	uow.StockOrders.On("Get", mock.Anything, buyOrder.ID).Return(buyOrder, nil)
	expectFees(uow, "5", "3")
	// Payer is the counter-order account when the accepted order sells.
	uow.Operations.On("ListByAccount", mock.Anything, buyAcct).
		Return([]ledger.Operation{creditOp(t, buyAcct, 100)}, nil)
	uow.Operations.On("ListByAccount", mock.Anything, sellAcct).
		Return([]ledger.Operation{}, nil)
	uow.StockOrders.On("UpdateStatus", mock.Anything, sellOrder.ID, stockorder.StatusCompleted).
		Return(sellOrder, nil)
	uow.StockOrders.On("UpdateStatus", mock.Anything, buyOrder.ID, stockorder.StatusCompleted).
		Return(buyOrder, nil)

	var created []dto.OperationCreate
	uow.Operations.On("Create", mock.Anything, mock.AnythingOfType("dto.OperationCreate")).
		Run(func(args mock.Arguments) {
			created = append(created, args.Get(1).(dto.OperationCreate))
		}).
		Return(&ledger.Operation{}, nil).Times(3)

	err := svc.Accept(context.Background(), owner, sellOrder.ID, buyOrder.ID)
	require.NoError(t, err)

	require.Len(t, created, 3)
	transfer := created[0]
	assert.Equal(t, buyAcct, *transfer.FromID)
	assert.Equal(t, sellAcct, *transfer.ToID)
	assert.Equal(t, int64(80), transfer.Amount)
}

// A pair denominated in different currencies must never settle: the
// funds checks compare smallest-unit amounts, which are meaningless
// across currencies.
func TestAccept_CurrencyMismatch(t *testing.T) {
	uow := fixtures.NewMockUnitOfWork()
	svc := NewSettlementService(uow, nil, testLogger())

	owner := uuid.New()
	buyOrder := pendingOrder(t, owner, uuid.New(), stockorder.SideBuy, 100)

	jpy, err := money.NewFromSmallestUnit(100, "JPY")
	require.NoError(t, err)
	sellOrder, err := stockorder.New(uuid.New(), uuid.New(), uuid.New(), stockorder.SideSell, jpy)
	require.NoError(t, err)

	uow.StockOrders.On("Get", mock.Anything, buyOrder.ID).Return(buyOrder, nil)
	uow.StockOrders.On("Get", mock.Anything, sellOrder.ID).Return(sellOrder, nil)

	acceptErr := svc.Accept(context.Background(), owner, buyOrder.ID, sellOrder.ID)
	assert.ErrorIs(t, acceptErr, stockorder.ErrCurrencyMismatch)
	uow.Operations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	uow.StockOrders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	uow.Settings.AssertNotCalled(t, "GetByCode", mock.Anything, mock.Anything)
}

// A fee configured as zero settles without appending a FEE operation.
func TestAccept_ZeroFeeAppendsNoFeeOperation(t *testing.T) {
	uow := fixtures.NewMockUnitOfWork()
	svc := NewSettlementService(uow, nil, testLogger())

	owner := uuid.New()
	buyAcct := uuid.New()
	sellAcct := uuid.New()
	buyOrder := pendingOrder(t, owner, buyAcct, stockorder.SideBuy, 50)
	sellOrder := pendingOrder(t, uuid.New(), sellAcct, stockorder.SideSell, 50)

	uow.StockOrders.On("Get", mock.Anything, buyOrder.ID).Return(buyOrder, nil)
	uow.StockOrders.On("Get", mock.Anything, sellOrder.ID).Return(sellOrder, nil)
	expectFees(uow, "0", "3")
	uow.Operations.On("ListByAccount", mock.Anything, buyAcct).
		Return([]ledger.Operation{creditOp(t, buyAcct, 50)}, nil)
	uow.Operations.On("ListByAccount", mock.Anything, sellAcct).
		Return([]ledger.Operation{}, nil)
	uow.StockOrders.On("UpdateStatus", mock.Anything, mock.Anything, stockorder.StatusCompleted).
		Return(buyOrder, nil).Twice()

	var created []dto.OperationCreate
	uow.Operations.On("Create", mock.Anything, mock.AnythingOfType("dto.OperationCreate")).
		Run(func(args mock.Arguments) {
			created = append(created, args.Get(1).(dto.OperationCreate))
		}).
		Return(&ledger.Operation{}, nil).Twice()

	err := svc.Accept(context.Background(), owner, buyOrder.ID, sellOrder.ID)
	require.NoError(t, err)

	require.Len(t, created, 2)
	assert.Equal(t, string(ledger.KindTransfer), created[0].Kind)
	assert.Equal(t, string(ledger.KindFee), created[1].Kind)
	assert.Equal(t, sellAcct, *created[1].FromID)
}

func TestAccept_FromOrderNotFound(t *testing.T) {
	uow := fixtures.NewMockUnitOfWork()
	svc := NewSettlementService(uow, nil, testLogger())

	missing := uuid.New()
	uow.StockOrders.On("Get", mock.Anything, missing).Return(nil, stockorder.ErrNotFound)

	err := svc.Accept(context.Background(), uuid.New(), missing, uuid.New())
	assert.ErrorIs(t, err, stockorder.ErrNotFound)
	uow.Operations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	uow.StockOrders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

// Ownership mismatch must read exactly like an unknown id.
func TestAccept_OwnershipPrivacy(t *testing.T) {
	uow := fixtures.NewMockUnitOfWork()
	svc := NewSettlementService(uow, nil, testLogger())

	foreign := pendingOrder(t, uuid.New(), uuid.New(), stockorder.SideBuy, 10)
	missing := uuid.New()
	uow.StockOrders.On("Get", mock.Anything, foreign.ID).Return(foreign, nil)
	uow.StockOrders.On("Get", mock.Anything, missing).Return(nil, stockorder.ErrNotFound)

	foreignErr := svc.Accept(context.Background(), uuid.New(), foreign.ID, uuid.New())
	missingErr := svc.Accept(context.Background(), uuid.New(), missing, uuid.New())
	assert.ErrorIs(t, foreignErr, stockorder.ErrNotFound)
	assert.Equal(t, missingErr, foreignErr)
}

func TestAccept_ToOrderNotFound(t *testing.T) {
	uow := fixtures.NewMockUnitOfWork()
	svc := NewSettlementService(uow, nil, testLogger())

	owner := uuid.New()
	from := pendingOrder(t, owner, uuid.New(), stockorder.SideBuy, 10)
	missing := uuid.New()
	uow.StockOrders.On("Get", mock.Anything, from.ID).Return(from, nil)
	uow.StockOrders.On("Get", mock.Anything, missing).Return(nil, stockorder.ErrNotFound)

	err := svc.Accept(context.Background(), owner, from.ID, missing)
	assert.ErrorIs(t, err, stockorder.ErrNotFound)
}

func TestAccept_StatusGuard(t *testing.T) {
	cases := []struct {
		name       string
		fromStatus stockorder.Status
		toStatus   stockorder.Status
	}{
		{"from completed", stockorder.StatusCompleted, stockorder.StatusPending},
		{"to cancelled", stockorder.StatusPending, stockorder.StatusCancelled},
		{"both terminal", stockorder.StatusCompleted, stockorder.StatusCompleted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uow := fixtures.NewMockUnitOfWork()
			svc := NewSettlementService(uow, nil, testLogger())

			owner := uuid.New()
			from := pendingOrder(t, owner, uuid.New(), stockorder.SideBuy, 10)
			from.Status = tc.fromStatus
			to := pendingOrder(t, uuid.New(), uuid.New(), stockorder.SideSell, 10)
			to.Status = tc.toStatus

			uow.StockOrders.On("Get", mock.Anything, from.ID).Return(from, nil)
			uow.StockOrders.On("Get", mock.Anything, to.ID).Return(to, nil)

			err := svc.Accept(context.Background(), owner, from.ID, to.ID)
			assert.ErrorIs(t, err, stockorder.ErrInvalidStatus)
			uow.Operations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			uow.StockOrders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

// Buyer needs notional plus purchase fee: with balance 100 and fee 5 a
// 96 order misses by one unit, a 95 order settles.
func TestAccept_BuyerFundsGuard(t *testing.T) {
	run := func(t *testing.T, notional int64) error {
		uow := fixtures.NewMockUnitOfWork()
		svc := NewSettlementService(uow, nil, testLogger())

		owner := uuid.New()
		buyAcct := uuid.New()
		sellAcct := uuid.New()
		buyOrder := pendingOrder(t, owner, buyAcct, stockorder.SideBuy, notional)
		sellOrder := pendingOrder(t, uuid.New(), sellAcct, stockorder.SideSell, notional)

		uow.StockOrders.On("Get", mock.Anything, buyOrder.ID).Return(buyOrder, nil)
		uow.StockOrders.On("Get", mock.Anything, sellOrder.ID).Return(sellOrder, nil)
		expectFees(uow, "5", "3")
		uow.Operations.On("ListByAccount", mock.Anything, buyAcct).
			Return([]ledger.Operation{creditOp(t, buyAcct, 100)}, nil)
		uow.Operations.On("ListByAccount", mock.Anything, sellAcct).
			Return([]ledger.Operation{creditOp(t, sellAcct, 100)}, nil).Maybe()
		uow.StockOrders.On("UpdateStatus", mock.Anything, mock.Anything, stockorder.StatusCompleted).
			Return(buyOrder, nil).Maybe()
		uow.Operations.On("Create", mock.Anything, mock.Anything).
			Return(&ledger.Operation{}, nil).Maybe()

		return svc.Accept(context.Background(), owner, buyOrder.ID, sellOrder.ID)
	}

	t.Run("required 101 exceeds balance 100", func(t *testing.T) {
		err := run(t, 96)
		assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
		assert.ErrorContains(t, err, "buyer account")
	})
	t.Run("required 100 equals balance 100", func(t *testing.T) {
		assert.NoError(t, run(t, 95))
	})
}

// A sale fee is payable out of incoming proceeds: seller balance 0,
// fee 3, notional 10 settles.
func TestAccept_SellerFeeFromProceeds(t *testing.T) {
	uow := fixtures.NewMockUnitOfWork()
	svc := NewSettlementService(uow, nil, testLogger())

	owner := uuid.New()
	buyAcct := uuid.New()
	sellAcct := uuid.New()
	buyOrder := pendingOrder(t, owner, buyAcct, stockorder.SideBuy, 10)
	sellOrder := pendingOrder(t, uuid.New(), sellAcct, stockorder.SideSell, 10)

	uow.StockOrders.On("Get", mock.Anything, buyOrder.ID).Return(buyOrder, nil)
	uow.StockOrders.On("Get", mock.Anything, sellOrder.ID).Return(sellOrder, nil)
	expectFees(uow, "5", "3")
	uow.Operations.On("ListByAccount", mock.Anything, buyAcct).
		Return([]ledger.Operation{creditOp(t, buyAcct, 100)}, nil)
	uow.Operations.On("ListByAccount", mock.Anything, sellAcct).
		Return([]ledger.Operation{}, nil)
	uow.StockOrders.On("UpdateStatus", mock.Anything, mock.Anything, stockorder.StatusCompleted).
		Return(buyOrder, nil).Twice()
	uow.Operations.On("Create", mock.Anything, mock.Anything).
		Return(&ledger.Operation{}, nil).Times(3)

	err := svc.Accept(context.Background(), owner, buyOrder.ID, sellOrder.ID)
	assert.NoError(t, err)
}

func TestAccept_SellerCannotCoverFee(t *testing.T) {
	uow := fixtures.NewMockUnitOfWork()
	svc := NewSettlementService(uow, nil, testLogger())

	owner := uuid.New()
	buyAcct := uuid.New()
	sellAcct := uuid.New()
	buyOrder := pendingOrder(t, owner, buyAcct, stockorder.SideBuy, 2)
	sellOrder := pendingOrder(t, uuid.New(), sellAcct, stockorder.SideSell, 2)

	uow.StockOrders.On("Get", mock.Anything, buyOrder.ID).Return(buyOrder, nil)
	uow.StockOrders.On("Get", mock.Anything, sellOrder.ID).Return(sellOrder, nil)
	expectFees(uow, "0", "3")
	uow.Operations.On("ListByAccount", mock.Anything, buyAcct).
		Return([]ledger.Operation{creditOp(t, buyAcct, 100)}, nil)
	uow.Operations.On("ListByAccount", mock.Anything, sellAcct).
		Return([]ledger.Operation{}, nil)

	err := svc.Accept(context.Background(), owner, buyOrder.ID, sellOrder.ID)
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	assert.ErrorContains(t, err, "seller account")
	uow.Operations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccept_SettingErrors(t *testing.T) {
	t.Run("missing purchase fee", func(t *testing.T) {
		uow := fixtures.NewMockUnitOfWork()
		svc := NewSettlementService(uow, nil, testLogger())

		owner := uuid.New()
		from := pendingOrder(t, owner, uuid.New(), stockorder.SideBuy, 10)
		to := pendingOrder(t, uuid.New(), uuid.New(), stockorder.SideSell, 10)
		uow.StockOrders.On("Get", mock.Anything, from.ID).Return(from, nil)
		uow.StockOrders.On("Get", mock.Anything, to.ID).Return(to, nil)
		uow.Settings.On("GetByCode", mock.Anything, setting.CodePurchaseFee).
			Return(nil, setting.ErrNotFound)

		err := svc.Accept(context.Background(), owner, from.ID, to.ID)
		assert.ErrorIs(t, err, setting.ErrNotFound)
		uow.Operations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("non-numeric sale fee", func(t *testing.T) {
		uow := fixtures.NewMockUnitOfWork()
		svc := NewSettlementService(uow, nil, testLogger())

		owner := uuid.New()
		from := pendingOrder(t, owner, uuid.New(), stockorder.SideBuy, 10)
		to := pendingOrder(t, uuid.New(), uuid.New(), stockorder.SideSell, 10)
		uow.StockOrders.On("Get", mock.Anything, from.ID).Return(from, nil)
		uow.StockOrders.On("Get", mock.Anything, to.ID).Return(to, nil)
		uow.Settings.On("GetByCode", mock.Anything, setting.CodePurchaseFee).
			Return(&setting.Setting{Code: setting.CodePurchaseFee, Value: "5"}, nil)
		uow.Settings.On("GetByCode", mock.Anything, setting.CodeSaleFee).
			Return(&setting.Setting{Code: setting.CodeSaleFee, Value: "free"}, nil)

		err := svc.Accept(context.Background(), owner, from.ID, to.ID)
		assert.ErrorIs(t, err, setting.ErrInvalidValue)
		uow.Operations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAccept_InvalidSide(t *testing.T) {
	uow := fixtures.NewMockUnitOfWork()
	svc := NewSettlementService(uow, nil, testLogger())

	owner := uuid.New()
	from := pendingOrder(t, owner, uuid.New(), stockorder.SideBuy, 10)
	from.Side = "HOLD"
	to := pendingOrder(t, uuid.New(), uuid.New(), stockorder.SideSell, 10)
	uow.StockOrders.On("Get", mock.Anything, from.ID).Return(from, nil)
	uow.StockOrders.On("Get", mock.Anything, to.ID).Return(to, nil)
	expectFees(uow, "5", "3")

	err := svc.Accept(context.Background(), owner, from.ID, to.ID)
	assert.ErrorIs(t, err, stockorder.ErrInvalidSide)
	uow.StockOrders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

// A status update failing mid-settlement must surface and create no
// operations; the surrounding transaction reverts the first update.
func TestAccept_UpdateStatusFailure(t *testing.T) {
	uow := fixtures.NewMockUnitOfWork()
	svc := NewSettlementService(uow, nil, testLogger())

	owner := uuid.New()
	buyAcct := uuid.New()
	sellAcct := uuid.New()
	buyOrder := pendingOrder(t, owner, buyAcct, stockorder.SideBuy, 10)
	sellOrder := pendingOrder(t, uuid.New(), sellAcct, stockorder.SideSell, 10)

	uow.StockOrders.On("Get", mock.Anything, buyOrder.ID).Return(buyOrder, nil)
	uow.StockOrders.On("Get", mock.Anything, sellOrder.ID).Return(sellOrder, nil)
	expectFees(uow, "1", "1")
	uow.Operations.On("ListByAccount", mock.Anything, buyAcct).
		Return([]ledger.Operation{creditOp(t, buyAcct, 100)}, nil)
	uow.Operations.On("ListByAccount", mock.Anything, sellAcct).
		Return([]ledger.Operation{creditOp(t, sellAcct, 100)}, nil)
	uow.StockOrders.On("UpdateStatus", mock.Anything, buyOrder.ID, stockorder.StatusCompleted).
		Return(buyOrder, nil)
	uow.StockOrders.On("UpdateStatus", mock.Anything, sellOrder.ID, stockorder.StatusCompleted).
		Return(nil, stockorder.ErrNotFound)

	err := svc.Accept(context.Background(), owner, buyOrder.ID, sellOrder.ID)
	assert.ErrorIs(t, err, stockorder.ErrNotFound)
	uow.Operations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
