package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus is the lifecycle state of a transfer.
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusConfirmed TransferStatus = "confirmed"
	TransferStatusRejected  TransferStatus = "rejected"
)

// Transfer represents one movement of money between two accounts,
// backed by exactly two transaction legs: an outflow on the source
// account and an inflow on the destination account. The legs are
// exclusively owned while the transfer is pending or confirmed;
// rejecting releases them back to stand-alone transactions.
type Transfer struct {
	ID                   string
	Status               TransferStatus
	OutflowTransactionID string
	InflowTransactionID  string

	// Loaded associations. Repositories populate these on read.
	Outflow            *Transaction
	Inflow             *Transaction
	SourceAccount      *Account
	DestinationAccount *Account

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Confirm transitions pending -> confirmed. Any other starting state
// is a conflict; confirmed and rejected are one-way.
func (t *Transfer) Confirm() error {
	if t.Status != TransferStatusPending {
		return ErrTransferNotPending
	}

	t.Status = TransferStatusConfirmed

	return nil
}

// Reject transitions pending -> rejected, releasing both legs. The
// transactions themselves survive.
func (t *Transfer) Reject() error {
	if t.Status != TransferStatusPending {
		return ErrTransferNotPending
	}

	t.Status = TransferStatusRejected

	return nil
}

// Categorizable reports whether a category may be attached to the
// outflow leg. Only a transfer whose legs BOTH sit on transfer-only
// account types is exempt from categorization.
func (t *Transfer) Categorizable() bool {
	if t.SourceAccount == nil || t.DestinationAccount == nil {
		return false
	}

	return !(t.SourceAccount.TransferOnly() && t.DestinationAccount.TransferOnly())
}

// Amount returns the absolute amount moved, taken from the inflow leg.
func (t *Transfer) Amount() decimal.Decimal {
	if t.Inflow == nil {
		return decimal.Zero
	}

	return t.Inflow.Amount().Abs()
}

// Date returns the transfer date, taken from the outflow leg.
func (t *Transfer) Date() time.Time {
	if t.Outflow == nil {
		return time.Time{}
	}

	return t.Outflow.Date()
}

// SourceAccountID returns the outflow leg's account.
func (t *Transfer) SourceAccountID() string {
	if t.Outflow == nil {
		return ""
	}

	return t.Outflow.AccountID()
}

// DestinationAccountID returns the inflow leg's account.
func (t *Transfer) DestinationAccountID() string {
	if t.Inflow == nil {
		return ""
	}

	return t.Inflow.AccountID()
}

// CategoryID returns the category of the outflow leg, if any.
func (t *Transfer) CategoryID() *string {
	if t.Outflow == nil {
		return nil
	}

	return t.Outflow.CategoryID
}

// ValidateLegs checks the cross-leg invariants: equal absolute
// amounts, opposite signs, distinct accounts.
func (t *Transfer) ValidateLegs() error {
	if t.Outflow == nil || t.Inflow == nil || t.Outflow.Entry == nil || t.Inflow.Entry == nil {
		return ErrTransactionNotFound
	}

	out, in := t.Outflow.Entry, t.Inflow.Entry

	if out.AccountID == in.AccountID {
		return ErrSameAccount
	}

	if !out.Amount.IsNegative() || !in.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	if !out.Amount.Abs().Equal(in.Amount.Abs()) {
		return ErrInvalidAmount
	}

	return nil
}

// ValidStatus reports whether s is a known transfer status.
func ValidStatus(s TransferStatus) bool {
	switch s {
	case TransferStatusPending, TransferStatusConfirmed, TransferStatusRejected:
		return true
	}

	return false
}
