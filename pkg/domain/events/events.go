// Package events holds the concrete domain events emitted after ledger
// writes commit. Events are informational: emission failures never roll
// back the write they describe.
package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeSettlementCompleted = "settlement.completed"
	TypeInterestApplied     = "interest.applied"
	TypeCreditOpened        = "credit.opened"
	TypeCreditCharged       = "credit.charged"
)

// SettlementCompleted is emitted after a matched order pair settled.
type SettlementCompleted struct {
	FromOrderID    uuid.UUID
	ToOrderID      uuid.UUID
	PayerAccountID uuid.UUID
	PayeeAccountID uuid.UUID
	Amount         int64
	PurchaseFee    int64
	SaleFee        int64
	OccurredAt     time.Time
}

// Type implements common.Event.
func (SettlementCompleted) Type() string { return TypeSettlementCompleted }

// InterestApplied is emitted for each savings account credited during an
// interest sweep.
type InterestApplied struct {
	AccountID  uuid.UUID
	Amount     int64
	OccurredAt time.Time
}

// Type implements common.Event.
func (InterestApplied) Type() string { return TypeInterestApplied }

// CreditOpened is emitted after a bank credit is disbursed.
type CreditOpened struct {
	CreditID   uuid.UUID
	AccountID  uuid.UUID
	Principal  int64
	OccurredAt time.Time
}

// Type implements common.Event.
func (CreditOpened) Type() string { return TypeCreditOpened }

// CreditCharged is emitted after a due monthly payment is claimed.
type CreditCharged struct {
	CreditID   uuid.UUID
	AccountID  uuid.UUID
	Amount     int64
	Remaining  int
	OccurredAt time.Time
}

// Type implements common.Event.
func (CreditCharged) Type() string { return TypeCreditCharged }
