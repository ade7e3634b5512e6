package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxNameLength     = 255
	MaxTransferAmount = "1000000000000" // 1 trillion
	DefaultPerPage    = 25
	MaxPerPage        = 100
)

// Valid currency codes (ISO 4217)
var validCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"CNY": true, "AUD": true, "CAD": true, "CHF": true,
	"SEK": true, "NZD": true, "KRW": true, "SGD": true,
	"NOK": true, "MXN": true, "INR": true, "BRL": true,
	"ZAR": true, "RUB": true, "TRY": true, "HKD": true,
}

// ValidateName validates a display name for accounts, categories,
// merchants and tags.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	ve := NewValidationError()
	if name == "" {
		ve.Add("name", "cannot be blank")
	}

	if len(name) > MaxNameLength {
		ve.Add("name", fmt.Sprintf("exceeds %d characters", MaxNameLength))
	}

	if ve.HasErrors() {
		return ve
	}

	return nil
}

// ValidateCurrency validates a currency code.
func ValidateCurrency(currency string) error {
	if !validCurrencies[strings.ToUpper(strings.TrimSpace(currency))] {
		ve := NewValidationError()
		ve.Add("currency", fmt.Sprintf("%s is not a valid ISO 4217 currency code", currency))

		return ve
	}

	return nil
}

// ValidateTransferAmount validates a transfer amount: strictly
// positive and within the supported range.
func ValidateTransferAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxTransferAmount)
	if amount.GreaterThan(maxAmount) {
		ve := NewValidationError()
		ve.Add("amount", fmt.Sprintf("maximum amount is %s", MaxTransferAmount))

		return ve
	}

	return nil
}

// ValidateDate rejects zero dates.
func ValidateDate(date time.Time) error {
	if date.IsZero() {
		ve := NewValidationError()
		ve.Add("date", "must be a valid date")

		return ve
	}

	return nil
}

// ValidatePagination normalizes page/per-page parameters.
func ValidatePagination(page, perPage int) (int, int) {
	if page <= 0 {
		page = 1
	}

	if perPage <= 0 || perPage > MaxPerPage {
		perPage = DefaultPerPage
	}

	return page, perPage
}
