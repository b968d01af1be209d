// Package setting defines the keyed configuration store read by the
// settlement engine. Values are stored as strings and coerced where a
// fee or rate is needed; a missing or non-numeric required setting is a
// fatal configuration error, never silently defaulted.
package setting

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a required setting code is absent.
	ErrNotFound = errors.New("setting not found")

	// ErrInvalidValue is returned when a setting used as a fee or rate
	// does not hold a numeric value.
	ErrInvalidValue = errors.New("invalid setting value")

	// ErrUnknownCode is returned when a code outside the known enum is used.
	ErrUnknownCode = errors.New("unknown setting code")
)

// Code identifies a configuration value.
type Code string

const (
	CodeSavingsRate      Code = "SAVINGS_RATE"
	CodePurchaseFee      Code = "STOCK_ORDER_PURCHASE_FEE"
	CodeSaleFee          Code = "STOCK_ORDER_SALE_FEE"
	CodeCreditMonthlyFee Code = "BANK_CREDIT_MONTHLY_FEE"
)

// IsKnown reports whether the code belongs to the known enum.
func (c Code) IsKnown() bool {
	switch c {
	case CodeSavingsRate, CodePurchaseFee, CodeSaleFee, CodeCreditMonthlyFee:
		return true
	}
	return false
}

// Setting is one named configuration value.
type Setting struct {
	Code      Code
	Value     string
	UpdatedAt time.Time
}

// Decimal coerces the stored value to a decimal number. Values stored
// as "5" and as "5.00" are equivalent; anything non-numeric fails with
// ErrInvalidValue.
func (s *Setting) Decimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s.Value)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidValue
	}
	return d, nil
}

// Amount coerces the stored value to a non-negative smallest-unit
// amount, for settings that hold absolute fees.
func (s *Setting) Amount() (int64, error) {
	d, err := s.Decimal()
	if err != nil {
		return 0, err
	}
	if d.IsNegative() || !d.IsInteger() {
		return 0, ErrInvalidValue
	}
	return d.IntPart(), nil
}
