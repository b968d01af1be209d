// Package currency holds the ISO 4217 metadata the money value object
// needs to convert between display amounts and smallest-unit amounts.
package currency

import (
	"errors"
	"regexp"
)

const (
	// DefaultCurrency is the fallback currency code.
	DefaultCurrency Code = "USD"
	// DefaultDecimals is the default number of decimal places for currencies.
	DefaultDecimals = 2
)

// ErrUnsupportedCurrency is returned when a currency code is not registered.
var ErrUnsupportedCurrency = errors.New("unsupported currency code")

// Code represents an ISO 4217 currency code (e.g., "USD", "EUR").
type Code string

// Meta holds currency-specific metadata.
type Meta struct {
	Decimals int
	Symbol   string
}

var currencies = map[Code]Meta{
	"USD": {Decimals: 2, Symbol: "$"},
	"EUR": {Decimals: 2, Symbol: "€"},
	"JPY": {Decimals: 0, Symbol: "¥"},
	"GBP": {Decimals: 2, Symbol: "£"},
	"CHF": {Decimals: 2, Symbol: "CHF"},
	"CAD": {Decimals: 2, Symbol: "C$"},
	"AUD": {Decimals: 2, Symbol: "A$"},
	"TRY": {Decimals: 2, Symbol: "₺"},
	"KWD": {Decimals: 3, Symbol: "د.ك"},
}

var codeFormat = regexp.MustCompile(`^[A-Z]{3}$`)

// IsValidFormat reports whether code looks like an ISO 4217 code
// (three uppercase letters). It does not check registration.
func IsValidFormat(code string) bool {
	return codeFormat.MatchString(code)
}

// IsSupported reports whether the currency code is registered.
func IsSupported(code Code) bool {
	_, ok := currencies[code]
	return ok
}

// Get returns the metadata for the given currency code.
func Get(code Code) (Meta, error) {
	meta, ok := currencies[code]
	if !ok {
		return Meta{}, ErrUnsupportedCurrency
	}
	return meta, nil
}
