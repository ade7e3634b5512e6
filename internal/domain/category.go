package domain

import "time"

// CategoryClassification splits categories into spending and earning.
type CategoryClassification string

const (
	ClassificationIncome  CategoryClassification = "income"
	ClassificationExpense CategoryClassification = "expense"
)

// Category labels transactions for budgeting and reporting. A category
// may nest one level under a parent.
type Category struct {
	ID             string
	FamilyID       string
	Name           string
	Color          string
	Classification CategoryClassification
	ParentID       *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Merchant is a counterparty a transaction can be attributed to.
type Merchant struct {
	ID        string
	FamilyID  string
	Name      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tag is a free-form label attachable to transactions.
type Tag struct {
	ID        string
	FamilyID  string
	Name      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
