package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAccountName = errors.New("invalid account name")
	ErrInvalidCurrency    = errors.New("invalid currency code")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxAccountNameLength = 255
	MinAccountNameLength = 1
	MaxFiatAmount        = "1000000000000" // 1 trillion
	MaxGrams             = "100000000"     // 100 tonnes
	MaxPageSize          = 1000
	DefaultPageSize      = 50
)

// Currencies the ledger accepts for fiat legs (ISO 4217).
var validCurrencies = map[string]bool{
	"BRL": true, "USD": true, "EUR": true, "GBP": true,
	"CHF": true, "ARS": true, "CLP": true, "PYG": true,
	"UYU": true, "MXN": true, "CAD": true, "JPY": true,
}

var (
	maxFiatAmount = decimal.RequireFromString(MaxFiatAmount)
	maxGrams      = decimal.RequireFromString(MaxGrams)
)

// ValidateAccountName validates account name
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinAccountNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	return nil
}

// ValidateCurrency validates currency code
func ValidateCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))

	if !validCurrencies[currency] {
		return fmt.Errorf("%w: %s is not an accepted ISO 4217 currency code", ErrInvalidCurrency, currency)
	}

	return nil
}

// ValidateFiatAmount validates a fiat amount carried by a posting or claim.
func ValidateFiatAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	if amount.GreaterThan(maxFiatAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxFiatAmount)
	}

	return nil
}

// ValidateGrams validates a strictly positive gram quantity.
func ValidateGrams(grams decimal.Decimal) error {
	if !grams.IsPositive() {
		return ErrInvalidAmount
	}

	if grams.GreaterThan(maxGrams) {
		return fmt.Errorf("%w: maximum quantity is %s g", ErrAmountTooLarge, MaxGrams)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
