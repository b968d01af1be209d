// Package stockorder defines the StockOrder entity and its status
// state machine. Only PENDING orders may be settled; COMPLETED and
// CANCELLED are terminal.
package stockorder

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ozanselte/bankcore/pkg/domain/money"
)

var (
	// ErrNotFound is returned when an order id is unknown, or when the
	// caller does not own the order. The two cases are deliberately
	// indistinguishable so an accept call cannot probe for the existence
	// of other users' orders.
	ErrNotFound = errors.New("stock order not found")

	// ErrInvalidStatus is returned when an order is not PENDING at
	// settlement time, or when a terminal order is transitioned again.
	ErrInvalidStatus = errors.New("invalid stock order status")

	// ErrInvalidSide is returned when an order's side is neither BUY nor
	// SELL at settlement time. Upstream validation should make this
	// unreachable.
	ErrInvalidSide = errors.New("invalid stock order side")

	// ErrInvalidAmount is returned when an order notional is not positive.
	ErrInvalidAmount = errors.New("stock order amount must be positive")

	// ErrCurrencyMismatch is returned when a matched pair's notionals are
	// denominated in different currencies.
	ErrCurrencyMismatch = errors.New("stock order currencies do not match")
)

// Side is the direction of a stock order.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Status is the lifecycle state of a stock order.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// StockOrder represents a pending or settled order over a stock.
// Amount is the fixed settlement notional in the smallest currency unit.
type StockOrder struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	AccountID uuid.UUID
	StockID   uuid.UUID
	Side      Side
	Amount    money.Money
	Status    Status
	CreatedAt time.Time
}

// New creates a PENDING stock order.
func New(userID, accountID, stockID uuid.UUID, side Side, amount money.Money) (*StockOrder, error) {
	if side != SideBuy && side != SideSell {
		return nil, ErrInvalidSide
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	return &StockOrder{
		ID:        uuid.New(),
		UserID:    userID,
		AccountID: accountID,
		StockID:   stockID,
		Side:      side,
		Amount:    amount,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// IsPending reports whether the order can still be settled or cancelled.
func (o *StockOrder) IsPending() bool {
	return o.Status == StatusPending
}

// Complete transitions the order to COMPLETED. Only valid from PENDING.
func (o *StockOrder) Complete() error {
	if !o.IsPending() {
		return ErrInvalidStatus
	}
	o.Status = StatusCompleted
	return nil
}

// Cancel transitions the order to CANCELLED. Only valid from PENDING.
func (o *StockOrder) Cancel() error {
	if !o.IsPending() {
		return ErrInvalidStatus
	}
	o.Status = StatusCancelled
	return nil
}
