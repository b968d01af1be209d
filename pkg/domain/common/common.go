// Package common holds cross-cutting domain types shared by the
// entity packages.
package common

import "errors"

// ErrInvalidCurrencyCode is returned when a currency code is invalid.
var ErrInvalidCurrencyCode = errors.New("invalid currency code")

// ErrInvalidDecimalPlaces is returned when a monetary amount has more
// decimal places than allowed by the currency.
var ErrInvalidDecimalPlaces = errors.New("amount has more decimal places than allowed by the currency")

// ErrAmountExceedsMaxSafeInt is returned when an amount would overflow
// the smallest-unit representation.
var ErrAmountExceedsMaxSafeInt = errors.New("amount exceeds maximum safe integer value")

// Event is implemented by every domain event published on the bus.
type Event interface {
	// Type returns a stable event type identifier, e.g. "settlement.completed".
	Type() string
}
