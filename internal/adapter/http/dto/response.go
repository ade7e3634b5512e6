package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/ledgerly/internal/domain"
	"github.com/ledgerly/ledgerly/internal/usecase"
)

// FamilyResponse represents a family in API responses.
type FamilyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

// FamilyFromDomain converts a domain family to a response.
func FamilyFromDomain(f *domain.Family) *FamilyResponse {
	return &FamilyResponse{
		ID:        f.ID,
		Name:      f.Name,
		Currency:  f.Currency,
		CreatedAt: f.CreatedAt,
	}
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Currency:  a.Currency,
		Type:      string(a.Type),
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID         string          `json:"id"`
	AccountID  string          `json:"account_id"`
	Date       string          `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Name       string          `json:"name"`
	CategoryID *string         `json:"category_id"`
	MerchantID *string         `json:"merchant_id"`
	TransferID *string         `json:"transfer_id"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:         t.ID,
		AccountID:  t.AccountID(),
		Date:       t.Date().Format(dateLayout),
		Amount:     t.Amount(),
		Name:       t.Entry.Name,
		CategoryID: t.CategoryID,
		MerchantID: t.MerchantID,
		TransferID: t.TransferID,
		CreatedAt:  t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// TransferResponse represents a transfer in API responses.
type TransferResponse struct {
	ID                   string          `json:"id"`
	Status               string          `json:"status"`
	Date                 string          `json:"date"`
	Amount               decimal.Decimal `json:"amount"`
	SourceAccountID      string          `json:"source_account_id"`
	DestinationAccountID string          `json:"destination_account_id"`
	CategoryID           *string         `json:"category_id"`
	CreatedAt            time.Time       `json:"created_at"`
}

// TransferFromDomain converts a domain transfer to a response.
func TransferFromDomain(t *domain.Transfer) *TransferResponse {
	return &TransferResponse{
		ID:                   t.ID,
		Status:               string(t.Status),
		Date:                 t.Date().Format(dateLayout),
		Amount:               t.Amount(),
		SourceAccountID:      t.SourceAccountID(),
		DestinationAccountID: t.DestinationAccountID(),
		CategoryID:           t.CategoryID(),
		CreatedAt:            t.CreatedAt,
	}
}

// TransfersFromDomain converts domain transfers to responses.
func TransfersFromDomain(transfers []*domain.Transfer) []*TransferResponse {
	result := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferFromDomain(t)
	}
	return result
}

// PaginationResponse carries page math for list endpoints.
type PaginationResponse struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// TransferListResponse is a paginated transfer listing.
type TransferListResponse struct {
	Transfers  []*TransferResponse `json:"transfers"`
	Pagination PaginationResponse  `json:"pagination"`
}

// TransferListFromPage converts a use case page to a response.
func TransferListFromPage(page *usecase.TransferPage) *TransferListResponse {
	return &TransferListResponse{
		Transfers: TransfersFromDomain(page.Transfers),
		Pagination: PaginationResponse{
			Page:       page.Page,
			PerPage:    page.PerPage,
			TotalCount: page.TotalCount,
			TotalPages: page.TotalPages,
		},
	}
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Color          string    `json:"color"`
	Classification string    `json:"classification"`
	ParentID       *string   `json:"parent_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// CategoryFromDomain converts a domain category to a response.
func CategoryFromDomain(c *domain.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:             c.ID,
		Name:           c.Name,
		Color:          c.Color,
		Classification: string(c.Classification),
		ParentID:       c.ParentID,
		CreatedAt:      c.CreatedAt,
	}
}

// CategoriesFromDomain converts domain categories to responses.
func CategoriesFromDomain(categories []*domain.Category) []*CategoryResponse {
	result := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = CategoryFromDomain(c)
	}
	return result
}

// MerchantResponse represents a merchant in API responses.
type MerchantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// MerchantFromDomain converts a domain merchant to a response.
func MerchantFromDomain(m *domain.Merchant) *MerchantResponse {
	return &MerchantResponse{
		ID:        m.ID,
		Name:      m.Name,
		Color:     m.Color,
		CreatedAt: m.CreatedAt,
	}
}

// MerchantsFromDomain converts domain merchants to responses.
func MerchantsFromDomain(merchants []*domain.Merchant) []*MerchantResponse {
	result := make([]*MerchantResponse, len(merchants))
	for i, m := range merchants {
		result[i] = MerchantFromDomain(m)
	}
	return result
}

// TagResponse represents a tag in API responses.
type TagResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// TagFromDomain converts a domain tag to a response.
func TagFromDomain(t *domain.Tag) *TagResponse {
	return &TagResponse{
		ID:        t.ID,
		Name:      t.Name,
		Color:     t.Color,
		CreatedAt: t.CreatedAt,
	}
}

// TagsFromDomain converts domain tags to responses.
func TagsFromDomain(tags []*domain.Tag) []*TagResponse {
	result := make([]*TagResponse, len(tags))
	for i, t := range tags {
		result[i] = TagFromDomain(t)
	}
	return result
}

// BudgetResponse represents a month budget in API responses.
type BudgetResponse struct {
	ID             string          `json:"id"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	Currency       string          `json:"currency"`
	BudgetedAmount decimal.Decimal `json:"budgeted_amount"`
	ExpectedIncome decimal.Decimal `json:"expected_income"`
	CreatedAt      time.Time       `json:"created_at"`
}

// BudgetFromDomain converts a domain budget to a response.
func BudgetFromDomain(b *domain.Budget) *BudgetResponse {
	return &BudgetResponse{
		ID:             b.ID,
		StartDate:      b.StartDate.Format(dateLayout),
		EndDate:        b.EndDate.Format(dateLayout),
		Currency:       b.Currency,
		BudgetedAmount: b.BudgetedAmount,
		ExpectedIncome: b.ExpectedIncome,
		CreatedAt:      b.CreatedAt,
	}
}

// BudgetsFromDomain converts domain budgets to responses.
func BudgetsFromDomain(budgets []*domain.Budget) []*BudgetResponse {
	result := make([]*BudgetResponse, len(budgets))
	for i, b := range budgets {
		result[i] = BudgetFromDomain(b)
	}
	return result
}

// BudgetCategoryResponse represents one category allocation.
type BudgetCategoryResponse struct {
	ID             string          `json:"id"`
	BudgetID       string          `json:"budget_id"`
	CategoryID     string          `json:"category_id"`
	BudgetedAmount decimal.Decimal `json:"budgeted_amount"`
}

// BudgetCategoryFromDomain converts a domain allocation to a response.
func BudgetCategoryFromDomain(bc *domain.BudgetCategory) *BudgetCategoryResponse {
	return &BudgetCategoryResponse{
		ID:             bc.ID,
		BudgetID:       bc.BudgetID,
		CategoryID:     bc.CategoryID,
		BudgetedAmount: bc.BudgetedAmount,
	}
}

// BudgetCategoriesFromDomain converts domain allocations to responses.
func BudgetCategoriesFromDomain(allocations []*domain.BudgetCategory) []*BudgetCategoryResponse {
	result := make([]*BudgetCategoryResponse, len(allocations))
	for i, bc := range allocations {
		result[i] = BudgetCategoryFromDomain(bc)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message,omitempty"`
	Fields  map[string][]string `json:"fields,omitempty"`
}
