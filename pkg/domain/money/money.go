// Package money provides the Money value object used for every ledger
// amount. Amounts are stored as int64 in the smallest currency unit so
// ledger arithmetic never touches floating point.
package money

import (
	"fmt"
	"math"
	"strings"

	"github.com/ozanselte/bankcore/pkg/currency"
	"github.com/ozanselte/bankcore/pkg/domain/common"
)

// Amount represents a monetary amount as an integer in the smallest
// currency unit (e.g., cents for USD).
type Amount = int64

// Money represents a monetary value in a specific currency.
// Invariants:
//   - Amount is always stored in the smallest currency unit.
//   - Currency code must be valid ISO 4217 (3 uppercase letters).
//   - All arithmetic operations require matching currencies.
type Money struct {
	amount   Amount
	currency currency.Code
}

// New creates a Money value object from a display amount (e.g. dollars).
// Invariants enforced:
//   - Currency code must be valid and supported.
//   - Amount must not have more decimal places than the currency allows.
func New(amount float64, code currency.Code) (Money, error) {
	if code == "" {
		code = currency.DefaultCurrency
	}
	if !currency.IsValidFormat(string(code)) {
		return Money{}, common.ErrInvalidCurrencyCode
	}
	smallest, err := convertToSmallestUnit(amount, code)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: smallest, currency: code}, nil
}

// NewFromSmallestUnit creates a Money value object directly from the
// smallest currency unit.
func NewFromSmallestUnit(amount int64, code currency.Code) (Money, error) {
	if code == "" {
		code = currency.DefaultCurrency
	}
	if !currency.IsValidFormat(string(code)) {
		return Money{}, common.ErrInvalidCurrencyCode
	}
	return Money{amount: amount, currency: code}, nil
}

// Amount returns the amount in the smallest currency unit.
func (m Money) Amount() Amount {
	return m.amount
}

// Currency returns the currency of the Money object.
func (m Money) Currency() currency.Code {
	return m.currency
}

// Add adds another Money object to the current Money object.
// Returns an error if currencies do not match.
func (m Money) Add(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, common.ErrInvalidCurrencyCode
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Subtract subtracts another Money object from the current Money object.
// Returns an error if currencies do not match.
func (m Money) Subtract(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, common.ErrInvalidCurrencyCode
	}
	return Money{amount: m.amount - other.amount, currency: m.currency}, nil
}

// Negate negates the current Money object.
func (m Money) Negate() Money {
	return Money{amount: -m.amount, currency: m.currency}
}

// Equals checks value and currency equality.
func (m Money) Equals(other Money) bool {
	return m.IsSameCurrency(other) && m.amount == other.amount
}

// GreaterThan reports whether m is greater than other.
// Returns an error if currencies do not match.
func (m Money) GreaterThan(other Money) (bool, error) {
	if !m.IsSameCurrency(other) {
		return false, common.ErrInvalidCurrencyCode
	}
	return m.amount > other.amount, nil
}

// LessThan reports whether m is less than other.
// Returns an error if currencies do not match.
func (m Money) LessThan(other Money) (bool, error) {
	if !m.IsSameCurrency(other) {
		return false, common.ErrInvalidCurrencyCode
	}
	return m.amount < other.amount, nil
}

// IsSameCurrency checks whether both values share a currency.
func (m Money) IsSameCurrency(other Money) bool {
	return m.currency == other.currency
}

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// IsNegative returns true if the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// String returns a human readable representation, e.g. "12.50 USD".
func (m Money) String() string {
	meta, err := currency.Get(m.currency)
	if err != nil {
		return fmt.Sprintf("%d %s", m.amount, m.currency)
	}
	divisor := math.Pow10(meta.Decimals)
	return fmt.Sprintf("%.*f %s", meta.Decimals, float64(m.amount)/divisor, m.currency)
}

// convertToSmallestUnit converts a display amount to the smallest
// currency unit, rejecting amounts with excess precision.
func convertToSmallestUnit(amount float64, code currency.Code) (int64, error) {
	meta, err := currency.Get(code)
	if err != nil {
		return 0, err
	}

	amountStr := fmt.Sprintf("%.10f", amount)
	parts := strings.Split(amountStr, ".")
	if len(parts) > 1 {
		decimals := strings.TrimRight(parts[1], "0")
		if len(decimals) > meta.Decimals {
			return 0, common.ErrInvalidDecimalPlaces
		}
	}

	factor := math.Pow10(meta.Decimals)
	scaled := amount * factor
	if scaled > float64(math.MaxInt64) || scaled < float64(math.MinInt64) {
		return 0, common.ErrAmountExceedsMaxSafeInt
	}
	return int64(math.Round(scaled)), nil
}
