package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/ledgerly/internal/domain"
	"github.com/ledgerly/ledgerly/internal/usecase"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// CreateFamilyRequest represents a request to create a family.
type CreateFamilyRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Type     string `json:"type"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:     r.Name,
		Currency: r.Currency,
		Type:     domain.AccountType(r.Type),
	}
}

// CreateTransferRequest represents a request to create a transfer.
type CreateTransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
}

// ToUseCaseInput converts to use case input. An unparseable date maps
// to the zero time, which the use case rejects with a field error.
func (r *CreateTransferRequest) ToUseCaseInput() usecase.CreateTransferInput {
	date, _ := time.Parse(dateLayout, r.Date)

	return usecase.CreateTransferInput{
		SourceAccountID:      r.FromAccountID,
		DestinationAccountID: r.ToAccountID,
		Date:                 date,
		Amount:               r.Amount,
	}
}

// UpdateCategoryRequest sets or clears a category assignment on a
// transfer or a transaction.
type UpdateCategoryRequest struct {
	CategoryID *string `json:"category_id"`
}

// CreateTransactionRequest represents a request to record a
// stand-alone transaction, e.g. an imported bank row.
type CreateTransactionRequest struct {
	AccountID  string          `json:"account_id"`
	Date       string          `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Name       string          `json:"name"`
	CategoryID *string         `json:"category_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput() usecase.CreateTransactionInput {
	date, _ := time.Parse(dateLayout, r.Date)

	return usecase.CreateTransactionInput{
		AccountID:  r.AccountID,
		Date:       date,
		Amount:     r.Amount,
		Name:       r.Name,
		CategoryID: r.CategoryID,
	}
}

// CategoryRequest represents a request to create or update a category.
type CategoryRequest struct {
	Name           string  `json:"name"`
	Color          string  `json:"color"`
	Classification string  `json:"classification"`
	ParentID       *string `json:"parent_id"`
}

// ToUseCaseInput converts to use case input.
func (r *CategoryRequest) ToUseCaseInput() usecase.CategoryInput {
	return usecase.CategoryInput{
		Name:           r.Name,
		Color:          r.Color,
		Classification: domain.CategoryClassification(r.Classification),
		ParentID:       r.ParentID,
	}
}

// NameColorRequest covers merchants and tags: a display name plus an
// optional color.
type NameColorRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// BudgetRequest represents a request to upsert a month budget.
type BudgetRequest struct {
	StartDate      string          `json:"start_date"`
	BudgetedAmount decimal.Decimal `json:"budgeted_amount"`
	ExpectedIncome decimal.Decimal `json:"expected_income"`
}

// ToUseCaseInput converts to use case input.
func (r *BudgetRequest) ToUseCaseInput() usecase.BudgetInput {
	startDate, _ := time.Parse(dateLayout, r.StartDate)

	return usecase.BudgetInput{
		StartDate:      startDate,
		BudgetedAmount: r.BudgetedAmount,
		ExpectedIncome: r.ExpectedIncome,
	}
}

// BudgetCategoryRequest allocates an amount to one category.
type BudgetCategoryRequest struct {
	CategoryID     string          `json:"category_id"`
	BudgetedAmount decimal.Decimal `json:"budgeted_amount"`
}
