package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreditCreate is the write shape for recording a disbursed bank credit.
type CreditCreate struct {
	ID                uuid.UUID
	AccountID         uuid.UUID
	Principal         int64
	MonthlyAmount     int64
	Currency          string
	RemainingPayments int
	NextPaymentAt     time.Time
}

// CreditAdvance records one claimed monthly payment.
type CreditAdvance struct {
	RemainingPayments int
	NextPaymentAt     time.Time
}
