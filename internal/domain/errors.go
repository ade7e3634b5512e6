package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Not-found errors
	ErrFamilyNotFound      = errors.New("family not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrTransferNotFound    = errors.New("transfer not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrMerchantNotFound    = errors.New("merchant not found")
	ErrTagNotFound         = errors.New("tag not found")
	ErrBudgetNotFound      = errors.New("budget not found")

	// Transfer errors
	ErrSameAccount      = errors.New("cannot transfer to same account")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrCurrencyMismatch = errors.New("cannot transfer between different currencies")

	// State conflicts
	ErrTransferNotPending       = errors.New("transfer is not pending")
	ErrTransferNotConfirmed     = errors.New("transfer is not confirmed")
	ErrTransactionAlreadyLinked = errors.New("transaction already belongs to a transfer")
	ErrNotCategorizable         = errors.New("transfer does not support categorization")

	// Auth errors
	ErrInvalidToken      = errors.New("invalid token")
	ErrExpiredToken      = errors.New("token has expired")
	ErrInsufficientScope = errors.New("insufficient scope")
)

// FieldError describes a validation failure on a single input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates field-level validation failures. It is
// recoverable at the API boundary and never fatal.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError creates an empty ValidationError.
func NewValidationError() *ValidationError {
	return &ValidationError{}
}

// Add appends a field failure.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Messages returns the failures as "field: message" strings.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}

	return msgs
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	for _, sentinel := range []error{
		ErrFamilyNotFound,
		ErrAccountNotFound,
		ErrTransactionNotFound,
		ErrTransferNotFound,
		ErrCategoryNotFound,
		ErrMerchantNotFound,
		ErrTagNotFound,
		ErrBudgetNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}

// IsConflict reports whether err is a state conflict: an invalid
// transition or an operation that lost against a concurrent writer.
func IsConflict(err error) bool {
	return errors.Is(err, ErrTransferNotPending) ||
		errors.Is(err, ErrTransferNotConfirmed) ||
		errors.Is(err, ErrTransactionAlreadyLinked)
}

// IsValidation reports whether err carries validation detail.
func IsValidation(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}

	return errors.Is(err, ErrSameAccount) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrCurrencyMismatch) ||
		errors.Is(err, ErrNotCategorizable)
}
