// Package credit defines the BankCredit entity: a disbursed bank credit
// repaid through monthly CREDIT_PAYMENT ledger operations.
package credit

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ozanselte/bankcore/pkg/domain/money"
)

var (
	// ErrNotFound is returned when a credit id is unknown.
	ErrNotFound = errors.New("bank credit not found")

	// ErrSettled is returned when a payment is claimed on a credit with
	// no remaining payments.
	ErrSettled = errors.New("bank credit already settled")
)

// BankCredit tracks the repayment schedule of one disbursed credit.
type BankCredit struct {
	ID                uuid.UUID
	AccountID         uuid.UUID
	Principal         money.Money
	MonthlyAmount     money.Money
	RemainingPayments int
	NextPaymentAt     time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// New creates a BankCredit splitting principal into equal monthly
// payments, the first one due a month after disbursement.
func New(accountID uuid.UUID, principal, monthly money.Money, payments int, now time.Time) (*BankCredit, error) {
	if accountID == uuid.Nil {
		return nil, errors.New("accountID is required")
	}
	if !principal.IsPositive() || !monthly.IsPositive() || payments <= 0 {
		return nil, errors.New("principal, monthly amount and payment count must be positive")
	}
	return &BankCredit{
		ID:                uuid.New(),
		AccountID:         accountID,
		Principal:         principal,
		MonthlyAmount:     monthly,
		RemainingPayments: payments,
		NextPaymentAt:     now.AddDate(0, 1, 0),
		CreatedAt:         now,
	}, nil
}

// IsDue reports whether a payment is claimable at the given time.
func (c *BankCredit) IsDue(now time.Time) bool {
	return c.RemainingPayments > 0 && !c.NextPaymentAt.After(now)
}

// IsSettled reports whether every payment has been claimed.
func (c *BankCredit) IsSettled() bool {
	return c.RemainingPayments == 0
}

// AdvanceSchedule consumes one due payment and moves the next due date
// a month forward. A settled credit is never charged again.
func (c *BankCredit) AdvanceSchedule(now time.Time) error {
	if c.IsSettled() {
		return ErrSettled
	}
	c.RemainingPayments--
	c.NextPaymentAt = c.NextPaymentAt.AddDate(0, 1, 0)
	c.UpdatedAt = now
	return nil
}
