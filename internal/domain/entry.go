package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is a dated, amount-bearing ledger record attached to exactly
// one account. Amounts are signed from the account's perspective:
// negative is money leaving the account, positive is money arriving.
type Entry struct {
	ID        string
	AccountID string
	Date      time.Time
	Amount    decimal.Decimal
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Outflow reports whether the entry takes money out of its account.
func (e *Entry) Outflow() bool {
	return e.Amount.IsNegative()
}

// Inflow reports whether the entry brings money into its account.
func (e *Entry) Inflow() bool {
	return e.Amount.IsPositive()
}

// Transaction specializes an Entry with categorization metadata. The
// entry is always loaded alongside the transaction; TransferID is set
// when an active (pending or confirmed) transfer owns this leg.
type Transaction struct {
	ID         string
	Entry      *Entry
	CategoryID *string
	MerchantID *string
	TransferID *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Linked reports whether an active transfer owns this transaction.
func (t *Transaction) Linked() bool {
	return t.TransferID != nil
}

// AccountID returns the owning account of the underlying entry.
func (t *Transaction) AccountID() string {
	if t.Entry == nil {
		return ""
	}

	return t.Entry.AccountID
}

// Amount returns the signed amount of the underlying entry.
func (t *Transaction) Amount() decimal.Decimal {
	if t.Entry == nil {
		return decimal.Zero
	}

	return t.Entry.Amount
}

// Date returns the date of the underlying entry.
func (t *Transaction) Date() time.Time {
	if t.Entry == nil {
		return time.Time{}
	}

	return t.Entry.Date
}
