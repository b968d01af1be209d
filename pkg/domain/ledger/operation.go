// Package ledger defines the append-only operation log and the balance
// derivation over it. An Operation is never mutated or deleted after
// creation; account balances are always recomputed from the full
// operation history, never read from a stored field.
package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ozanselte/bankcore/pkg/domain/money"
)

var (
	// ErrInvalidAccount is returned when an operation draft has missing,
	// or identical, account references for its kind.
	ErrInvalidAccount = errors.New("invalid account reference")

	// ErrInvalidAmount is returned when an operation amount is not positive.
	ErrInvalidAmount = errors.New("operation amount must be positive")

	// ErrInsufficientFunds is returned when a derived balance cannot cover
	// a requested money movement.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Kind discriminates the operation variants. Every kind participates
// identically in the balance fold; the kind only constrains which
// account references an operation must carry.
type Kind string

const (
	KindTransfer      Kind = "TRANSFER"
	KindFee           Kind = "FEE"
	KindInterest      Kind = "INTEREST"
	KindCredit        Kind = "CREDIT"
	KindCreditPayment Kind = "CREDIT_PAYMENT"
)

// Operation is one immutable ledger entry.
type Operation struct {
	ID        uuid.UUID
	Kind      Kind
	Amount    money.Money
	FromID    *uuid.UUID
	ToID      *uuid.UUID
	Name      string
	CreatedAt time.Time
}

// NewTransfer builds a TRANSFER draft moving amount from one account to
// another. Both references are required and must differ.
func NewTransfer(from, to uuid.UUID, amount money.Money, name string) (*Operation, error) {
	if from == uuid.Nil || to == uuid.Nil || from == to {
		return nil, ErrInvalidAccount
	}
	return newOperation(KindTransfer, &from, &to, amount, name)
}

// NewFee builds a FEE draft charging the given account. The fee sink is
// implicit, so the operation carries no destination.
func NewFee(from uuid.UUID, amount money.Money, name string) (*Operation, error) {
	if from == uuid.Nil {
		return nil, ErrInvalidAccount
	}
	return newOperation(KindFee, &from, nil, amount, name)
}

// NewInterest builds an INTEREST draft crediting the given account.
func NewInterest(to uuid.UUID, amount money.Money, name string) (*Operation, error) {
	if to == uuid.Nil {
		return nil, ErrInvalidAccount
	}
	return newOperation(KindInterest, nil, &to, amount, name)
}

// NewCredit builds a CREDIT draft disbursing a bank credit into the
// given account.
func NewCredit(to uuid.UUID, amount money.Money, name string) (*Operation, error) {
	if to == uuid.Nil {
		return nil, ErrInvalidAccount
	}
	return newOperation(KindCredit, nil, &to, amount, name)
}

// NewCreditPayment builds a CREDIT_PAYMENT draft claiming a due monthly
// payment from the given account.
func NewCreditPayment(from uuid.UUID, amount money.Money, name string) (*Operation, error) {
	if from == uuid.Nil {
		return nil, ErrInvalidAccount
	}
	return newOperation(KindCreditPayment, &from, nil, amount, name)
}

func newOperation(kind Kind, from, to *uuid.UUID, amount money.Money, name string) (*Operation, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	return &Operation{
		ID:        uuid.New(),
		Kind:      kind,
		Amount:    amount,
		FromID:    from,
		ToID:      to,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}, nil
}
