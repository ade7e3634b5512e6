package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func legs(outAcct, inAcct string, amount decimal.Decimal) (*Transaction, *Transaction) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	outflow := &Transaction{
		ID:    "txn-out",
		Entry: &Entry{ID: "entry-out", AccountID: outAcct, Date: date, Amount: amount.Neg()},
	}
	inflow := &Transaction{
		ID:    "txn-in",
		Entry: &Entry{ID: "entry-in", AccountID: inAcct, Date: date, Amount: amount},
	}

	return outflow, inflow
}

func TestTransfer_Confirm(t *testing.T) {
	tests := []struct {
		name        string
		status      TransferStatus
		expectError error
		wantStatus  TransferStatus
	}{
		{
			name:       "pending confirms",
			status:     TransferStatusPending,
			wantStatus: TransferStatusConfirmed,
		},
		{
			name:        "confirmed stays confirmed",
			status:      TransferStatusConfirmed,
			expectError: ErrTransferNotPending,
			wantStatus:  TransferStatusConfirmed,
		},
		{
			name:        "rejected cannot confirm",
			status:      TransferStatusRejected,
			expectError: ErrTransferNotPending,
			wantStatus:  TransferStatusRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfer := &Transfer{ID: "tr-1", Status: tt.status}

			err := transfer.Confirm()

			if tt.expectError == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.expectError != nil && err != tt.expectError {
				t.Errorf("expected error %v, got %v", tt.expectError, err)
			}
			if transfer.Status != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, transfer.Status)
			}
		})
	}
}

func TestTransfer_Reject(t *testing.T) {
	tests := []struct {
		name        string
		status      TransferStatus
		expectError error
		wantStatus  TransferStatus
	}{
		{
			name:       "pending rejects",
			status:     TransferStatusPending,
			wantStatus: TransferStatusRejected,
		},
		{
			name:        "confirmed cannot reject",
			status:      TransferStatusConfirmed,
			expectError: ErrTransferNotPending,
			wantStatus:  TransferStatusConfirmed,
		},
		{
			name:        "reject is not repeatable",
			status:      TransferStatusRejected,
			expectError: ErrTransferNotPending,
			wantStatus:  TransferStatusRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfer := &Transfer{ID: "tr-1", Status: tt.status}

			err := transfer.Reject()

			if tt.expectError == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.expectError != nil && err != tt.expectError {
				t.Errorf("expected error %v, got %v", tt.expectError, err)
			}
			if transfer.Status != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, transfer.Status)
			}
		})
	}
}

func TestTransfer_ValidateLegs(t *testing.T) {
	amount := decimal.RequireFromString("100.00")

	t.Run("valid legs", func(t *testing.T) {
		outflow, inflow := legs("acc-1", "acc-2", amount)
		transfer := &Transfer{Outflow: outflow, Inflow: inflow}

		if err := transfer.ValidateLegs(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("same account", func(t *testing.T) {
		outflow, inflow := legs("acc-1", "acc-1", amount)
		transfer := &Transfer{Outflow: outflow, Inflow: inflow}

		if err := transfer.ValidateLegs(); err != ErrSameAccount {
			t.Errorf("expected ErrSameAccount, got %v", err)
		}
	})

	t.Run("mismatched absolute amounts", func(t *testing.T) {
		outflow, inflow := legs("acc-1", "acc-2", amount)
		inflow.Entry.Amount = decimal.RequireFromString("99.99")
		transfer := &Transfer{Outflow: outflow, Inflow: inflow}

		if err := transfer.ValidateLegs(); err != ErrInvalidAmount {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("same sign legs", func(t *testing.T) {
		outflow, inflow := legs("acc-1", "acc-2", amount)
		outflow.Entry.Amount = amount
		transfer := &Transfer{Outflow: outflow, Inflow: inflow}

		if err := transfer.ValidateLegs(); err != ErrInvalidAmount {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("missing legs", func(t *testing.T) {
		transfer := &Transfer{}

		if err := transfer.ValidateLegs(); err != ErrTransactionNotFound {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
	})
}

func TestTransfer_Categorizable(t *testing.T) {
	tests := []struct {
		name     string
		source   AccountType
		dest     AccountType
		expected bool
	}{
		{"depository to depository", AccountTypeDepository, AccountTypeDepository, true},
		{"depository to investment", AccountTypeDepository, AccountTypeInvestment, true},
		{"investment to investment", AccountTypeInvestment, AccountTypeInvestment, false},
		{"crypto to investment", AccountTypeCrypto, AccountTypeInvestment, false},
		{"depository to loan", AccountTypeDepository, AccountTypeLoan, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfer := &Transfer{
				SourceAccount:      &Account{ID: "acc-1", Type: tt.source},
				DestinationAccount: &Account{ID: "acc-2", Type: tt.dest},
			}

			if got := transfer.Categorizable(); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}

	t.Run("accounts not loaded", func(t *testing.T) {
		transfer := &Transfer{}
		if transfer.Categorizable() {
			t.Error("expected false when accounts are not loaded")
		}
	})
}

func TestTransfer_Amount(t *testing.T) {
	outflow, inflow := legs("acc-1", "acc-2", decimal.RequireFromString("42.50"))
	transfer := &Transfer{Outflow: outflow, Inflow: inflow}

	if !transfer.Amount().Equal(decimal.RequireFromString("42.50")) {
		t.Errorf("expected 42.50, got %s", transfer.Amount())
	}
}
