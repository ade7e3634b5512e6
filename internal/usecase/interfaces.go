package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/ledgerly/internal/domain"
)

// FamilyRepository defines data access for families.
type FamilyRepository interface {
	Create(ctx context.Context, family *domain.Family) error
	GetByID(ctx context.Context, id string) (*domain.Family, error)
}

// AccountRepository defines data access for accounts. All reads are
// family-scoped; an account outside the family resolves to not-found.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, familyID, id string) (*domain.Account, error)
	List(ctx context.Context, familyID string, limit, offset int) ([]*domain.Account, error)
	UpdateStatus(ctx context.Context, familyID, id string, status domain.AccountStatus, updatedAt time.Time) error
}

// TransactionRepository defines data access for transactions and their
// underlying entries.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, familyID, id string) (*domain.Transaction, error)
	ListByAccount(ctx context.Context, familyID, accountID string, limit, offset int) ([]*domain.Transaction, error)
	SetCategory(ctx context.Context, tx Transaction, id string, categoryID *string) error
	Delete(ctx context.Context, tx Transaction, id string) error
	// FindMatchCandidate returns the best unlinked counter-transaction
	// for txn within the date window, or ErrTransactionNotFound.
	FindMatchCandidate(ctx context.Context, familyID string, txn *domain.Transaction, window time.Duration) (*domain.Transaction, error)
}

// TransferFilter narrows a transfer listing.
type TransferFilter struct {
	Status    *domain.TransferStatus
	StartDate *time.Time
	EndDate   *time.Time
	AccountID *string
}

// TransferRepository defines data access for transfers.
type TransferRepository interface {
	// Create persists the transfer row. A leg already owned by an
	// active transfer surfaces as domain.ErrTransactionAlreadyLinked.
	Create(ctx context.Context, tx Transaction, transfer *domain.Transfer) error
	GetByID(ctx context.Context, familyID, id string) (*domain.Transfer, error)
	// UpdateStatus applies from -> to guarded by the current status;
	// a lost race surfaces as domain.ErrTransferNotPending.
	UpdateStatus(ctx context.Context, tx Transaction, id string, from, to domain.TransferStatus, updatedAt time.Time) error
	Delete(ctx context.Context, tx Transaction, id string) error
	List(ctx context.Context, familyID string, filter TransferFilter, limit, offset int) ([]*domain.Transfer, int64, error)
}

// CategoryRepository defines data access for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, familyID, id string) (*domain.Category, error)
	List(ctx context.Context, familyID, search string, classification *domain.CategoryClassification, limit, offset int) ([]*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, familyID, id string) error
}

// MerchantRepository defines data access for merchants.
type MerchantRepository interface {
	Create(ctx context.Context, merchant *domain.Merchant) error
	GetByID(ctx context.Context, familyID, id string) (*domain.Merchant, error)
	List(ctx context.Context, familyID string, limit, offset int) ([]*domain.Merchant, error)
	Update(ctx context.Context, merchant *domain.Merchant) error
	Delete(ctx context.Context, familyID, id string) error
}

// TagRepository defines data access for tags.
type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) error
	GetByID(ctx context.Context, familyID, id string) (*domain.Tag, error)
	List(ctx context.Context, familyID string, limit, offset int) ([]*domain.Tag, error)
	Update(ctx context.Context, tag *domain.Tag) error
	Delete(ctx context.Context, familyID, id string) error
}

// BudgetRepository defines data access for budgets and their
// per-category allocations.
type BudgetRepository interface {
	Create(ctx context.Context, budget *domain.Budget) error
	GetByID(ctx context.Context, familyID, id string) (*domain.Budget, error)
	GetByStartDate(ctx context.Context, familyID string, startDate time.Time) (*domain.Budget, error)
	List(ctx context.Context, familyID string, limit, offset int) ([]*domain.Budget, error)
	Update(ctx context.Context, budget *domain.Budget) error
	ListCategories(ctx context.Context, budgetID string) ([]*domain.BudgetCategory, error)
	UpsertCategory(ctx context.Context, bc *domain.BudgetCategory) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries a unit of work on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// TransferMetrics records transfer lifecycle counters.
type TransferMetrics interface {
	TransferCreated(status domain.TransferStatus, amount decimal.Decimal)
	TransferConfirmed()
	TransferRejected()
	TransferMatched()
	TransferDeleted()
}
