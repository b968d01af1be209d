// Package service provides the business logic of the ledger core: pair
// settlement of matched stock orders, balance derivation, periodic
// interest and credit settlement, and settings administration.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ozanselte/bankcore/pkg/currency"
	"github.com/ozanselte/bankcore/pkg/domain/events"
	"github.com/ozanselte/bankcore/pkg/domain/ledger"
	"github.com/ozanselte/bankcore/pkg/domain/money"
	"github.com/ozanselte/bankcore/pkg/domain/setting"
	"github.com/ozanselte/bankcore/pkg/domain/stockorder"
	"github.com/ozanselte/bankcore/pkg/dto"
	"github.com/ozanselte/bankcore/pkg/eventbus"
	"github.com/ozanselte/bankcore/pkg/repository"
)

// SettlementService atomically settles a matched pair of pending stock
// orders into one transfer and two fee operations.
type SettlementService struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// NewSettlementService creates a SettlementService.
func NewSettlementService(
	uow repository.UnitOfWork,
	bus eventbus.Bus,
	logger *slog.Logger,
) *SettlementService {
	return &SettlementService{
		uow:    uow,
		bus:    bus,
		logger: logger.With("service", "settlement"),
	}
}

// settlementPlan is the fully validated outcome of an accept call,
// computed before any write and used for the event after commit.
type settlementPlan struct {
	fromOrder   *stockorder.StockOrder
	toOrder     *stockorder.StockOrder
	payerID     uuid.UUID
	payeeID     uuid.UUID
	amount      money.Money
	purchaseFee money.Money
	saleFee     money.Money
}

// Accept settles the order pair (fromOrderID owned by ownerID, matched
// against toOrderID). The whole read-check-write sequence runs inside
// one serializable transaction: on any typed error no order status
// changes and no operation is appended.
//
// Error kinds callers can branch on: stockorder.ErrNotFound (unknown id
// or foreign owner, deliberately conflated), stockorder.ErrInvalidStatus,
// stockorder.ErrCurrencyMismatch, stockorder.ErrInvalidSide,
// setting.ErrNotFound, setting.ErrInvalidValue,
// ledger.ErrInvalidAccount, ledger.ErrInsufficientFunds.
func (s *SettlementService) Accept(
	ctx context.Context,
	ownerID uuid.UUID,
	fromOrderID, toOrderID uuid.UUID,
) error {
	var plan *settlementPlan
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		p, err := s.settle(ctx, uow, ownerID, fromOrderID, toOrderID)
		if err != nil {
			return err
		}
		plan = p
		return nil
	})
	if err != nil {
		s.logger.Warn("settlement rejected",
			"owner_id", ownerID,
			"from_order_id", fromOrderID,
			"to_order_id", toOrderID,
			"error", err,
		)
		return err
	}

	s.logger.Info("settlement completed",
		"from_order_id", fromOrderID,
		"to_order_id", toOrderID,
		"payer_account_id", plan.payerID,
		"payee_account_id", plan.payeeID,
		"amount", plan.amount.Amount(),
	)
	s.emit(ctx, events.SettlementCompleted{
		FromOrderID:    fromOrderID,
		ToOrderID:      toOrderID,
		PayerAccountID: plan.payerID,
		PayeeAccountID: plan.payeeID,
		Amount:         plan.amount.Amount(),
		PurchaseFee:    plan.purchaseFee.Amount(),
		SaleFee:        plan.saleFee.Amount(),
		OccurredAt:     time.Now().UTC(),
	})
	return nil
}

// settle runs the full validate-check-write sequence against the
// transaction-bound repositories.
func (s *SettlementService) settle(
	ctx context.Context,
	uow repository.UnitOfWork,
	ownerID uuid.UUID,
	fromOrderID, toOrderID uuid.UUID,
) (*settlementPlan, error) {
	orders, err := uow.StockOrderRepository()
	if err != nil {
		return nil, err
	}
	settings, err := uow.SettingRepository()
	if err != nil {
		return nil, err
	}
	operations, err := uow.OperationRepository()
	if err != nil {
		return nil, err
	}

	fromOrder, err := orders.Get(ctx, fromOrderID)
	if err != nil {
		return nil, err
	}
	// Ownership mismatch reads the same as an unknown id so callers
	// cannot probe for other users' orders.
	if fromOrder.UserID != ownerID {
		return nil, stockorder.ErrNotFound
	}

	toOrder, err := orders.Get(ctx, toOrderID)
	if err != nil {
		return nil, err
	}

	// Both statuses are checked jointly after both loads: either order
	// being terminal aborts the whole settlement.
	if !fromOrder.IsPending() || !toOrder.IsPending() {
		return nil, stockorder.ErrInvalidStatus
	}

	// The balance fold and the funds checks compare raw smallest-unit
	// amounts; a cross-currency pair would corrupt both ledgers.
	if !fromOrder.Amount.IsSameCurrency(toOrder.Amount) {
		return nil, stockorder.ErrCurrencyMismatch
	}

	purchaseFee, err := s.feeAmount(ctx, settings, setting.CodePurchaseFee, fromOrder.Amount.Currency())
	if err != nil {
		return nil, err
	}
	saleFee, err := s.feeAmount(ctx, settings, setting.CodeSaleFee, fromOrder.Amount.Currency())
	if err != nil {
		return nil, err
	}

	plan := &settlementPlan{
		fromOrder:   fromOrder,
		toOrder:     toOrder,
		purchaseFee: purchaseFee,
		saleFee:     saleFee,
	}
	switch fromOrder.Side {
	case stockorder.SideBuy:
		plan.payerID = fromOrder.AccountID
		plan.payeeID = toOrder.AccountID
		plan.amount = toOrder.Amount
	case stockorder.SideSell:
		plan.payerID = toOrder.AccountID
		plan.payeeID = fromOrder.AccountID
		plan.amount = fromOrder.Amount
	default:
		return nil, stockorder.ErrInvalidSide
	}

	if err := s.checkFunds(ctx, operations, plan); err != nil {
		return nil, err
	}

	transfer, err := ledger.NewTransfer(plan.payerID, plan.payeeID, plan.amount, "stock order settlement")
	if err != nil {
		return nil, err
	}
	drafts := []*ledger.Operation{transfer}
	// A zero fee is a valid configuration and appends no operation.
	if plan.purchaseFee.IsPositive() {
		buyerFee, err := ledger.NewFee(plan.payerID, plan.purchaseFee, "stock order purchase fee")
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, buyerFee)
	}
	if plan.saleFee.IsPositive() {
		sellerFee, err := ledger.NewFee(plan.payeeID, plan.saleFee, "stock order sale fee")
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, sellerFee)
	}

	if _, err := orders.UpdateStatus(ctx, fromOrder.ID, stockorder.StatusCompleted); err != nil {
		return nil, err
	}
	if _, err := orders.UpdateStatus(ctx, toOrder.ID, stockorder.StatusCompleted); err != nil {
		return nil, err
	}

	for _, op := range drafts {
		if _, err := operations.Create(ctx, operationCreate(op)); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// checkFunds verifies both sides against currently derived balances,
// before any write.
//
// The payer needs the full notional plus the purchase fee. The payee
// needs to cover the sale fee out of existing balance plus incoming
// proceeds; the fee is deducted from the account after the transfer
// lands, so balance + amount >= fee is the exact solvency condition.
func (s *SettlementService) checkFunds(
	ctx context.Context,
	operations repository.OperationRepository,
	plan *settlementPlan,
) error {
	payerOps, err := operations.ListByAccount(ctx, plan.payerID)
	if err != nil {
		return err
	}
	payerBalance := ledger.Balance(plan.payerID, payerOps)
	if payerBalance < plan.amount.Amount()+plan.purchaseFee.Amount() {
		return fmt.Errorf("insufficient funds for buyer account: %w", ledger.ErrInsufficientFunds)
	}

	payeeOps, err := operations.ListByAccount(ctx, plan.payeeID)
	if err != nil {
		return err
	}
	payeeBalance := ledger.Balance(plan.payeeID, payeeOps)
	if payeeBalance+plan.amount.Amount() < plan.saleFee.Amount() {
		return fmt.Errorf("insufficient funds for seller account: %w", ledger.ErrInsufficientFunds)
	}
	return nil
}

// feeAmount resolves a fee setting and coerces it to a Money value in
// the settlement currency. Missing or non-numeric settings are fatal;
// settlement never proceeds with an assumed default fee.
func (s *SettlementService) feeAmount(
	ctx context.Context,
	settings repository.SettingRepository,
	code setting.Code,
	cur currency.Code,
) (money.Money, error) {
	st, err := settings.GetByCode(ctx, code)
	if err != nil {
		return money.Money{}, err
	}
	amount, err := st.Amount()
	if err != nil {
		return money.Money{}, fmt.Errorf("setting %s: %w", code, err)
	}
	return money.NewFromSmallestUnit(amount, cur)
}

func (s *SettlementService) emit(ctx context.Context, event events.SettlementCompleted) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, event); err != nil {
		s.logger.Error("failed to emit settlement event", "error", err)
	}
}

func operationCreate(op *ledger.Operation) dto.OperationCreate {
	return dto.OperationCreate{
		ID:        op.ID,
		Kind:      string(op.Kind),
		Amount:    op.Amount.Amount(),
		Currency:  string(op.Amount.Currency()),
		FromID:    op.FromID,
		ToID:      op.ToID,
		Name:      op.Name,
		CreatedAt: op.CreatedAt,
	}
}
