package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget covers one calendar month of planned spending for a family.
// Budgets are bootstrapped on first access for a month rather than
// created explicitly.
type Budget struct {
	ID             string
	FamilyID       string
	StartDate      time.Time
	EndDate        time.Time
	Currency       string
	BudgetedAmount decimal.Decimal
	ExpectedIncome decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BudgetCategory is the per-category allocation inside a budget.
type BudgetCategory struct {
	ID             string
	BudgetID       string
	CategoryID     string
	BudgetedAmount decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MonthRange returns the first day of start's month and the first day
// of the following month.
func MonthRange(start time.Time) (time.Time, time.Time) {
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)

	return first, first.AddDate(0, 1, 0)
}
