// Package mocks provides in-memory fakes for the usecase repository
// interfaces. Each mock behaves like a tiny store by default and every
// method can be overridden through its Func field.
package mocks

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ledgerly/ledgerly/internal/domain"
	"github.com/ledgerly/ledgerly/internal/usecase"
)

// MockFamilyRepository is a mock implementation of FamilyRepository.
type MockFamilyRepository struct {
	mu       sync.RWMutex
	families map[string]*domain.Family

	CreateFunc  func(ctx context.Context, family *domain.Family) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Family, error)
}

func NewMockFamilyRepository() *MockFamilyRepository {
	return &MockFamilyRepository{families: make(map[string]*domain.Family)}
}

func (m *MockFamilyRepository) Create(ctx context.Context, family *domain.Family) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, family)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.families[family.ID] = family
	return nil
}

func (m *MockFamilyRepository) GetByID(ctx context.Context, id string) (*domain.Family, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if f, ok := m.families[id]; ok {
		return f, nil
	}
	return nil, domain.ErrFamilyNotFound
}

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc       func(ctx context.Context, account *domain.Account) error
	GetByIDFunc      func(ctx context.Context, familyID, id string) (*domain.Account, error)
	ListFunc         func(ctx context.Context, familyID string, limit, offset int) ([]*domain.Account, error)
	UpdateStatusFunc func(ctx context.Context, familyID, id string, status domain.AccountStatus, updatedAt time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[string]*domain.Account)}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, familyID, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, familyID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[id]; ok && a.FamilyID == familyID {
		return a, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) List(ctx context.Context, familyID string, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, familyID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Account
	for _, a := range m.accounts {
		if a.FamilyID == familyID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (m *MockAccountRepository) UpdateStatus(ctx context.Context, familyID, id string, status domain.AccountStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, familyID, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok || a.FamilyID != familyID {
		return domain.ErrAccountNotFound
	}
	a.Status = status
	a.UpdatedAt = updatedAt
	return nil
}

// MockTransactionRepository is a mock implementation of
// TransactionRepository. Family scoping is resolved through an
// optional account lookup table populated via SetAccounts.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction
	accounts     map[string]*domain.Account

	CreateFunc             func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	GetByIDFunc            func(ctx context.Context, familyID, id string) (*domain.Transaction, error)
	ListByAccountFunc      func(ctx context.Context, familyID, accountID string, limit, offset int) ([]*domain.Transaction, error)
	SetCategoryFunc        func(ctx context.Context, tx usecase.Transaction, id string, categoryID *string) error
	DeleteFunc             func(ctx context.Context, tx usecase.Transaction, id string) error
	FindMatchCandidateFunc func(ctx context.Context, familyID string, txn *domain.Transaction, window time.Duration) (*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
		accounts:     make(map[string]*domain.Account),
	}
}

// SetAccounts registers accounts used for family scoping.
func (m *MockTransactionRepository) SetAccounts(accounts ...*domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range accounts {
		m.accounts[a.ID] = a
	}
}

func (m *MockTransactionRepository) familyOf(txn *domain.Transaction) string {
	if a, ok := m.accounts[txn.AccountID()]; ok {
		return a.FamilyID
	}
	return ""
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[txn.ID] = txn
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, familyID, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, familyID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	txn, ok := m.transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	if fam := m.familyOf(txn); fam != "" && fam != familyID {
		return nil, domain.ErrTransactionNotFound
	}
	return txn, nil
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, familyID, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, familyID, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, txn := range m.transactions {
		if txn.AccountID() == accountID {
			out = append(out, txn)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date().After(out[j].Date()) })
	return paginate(out, limit, offset), nil
}

func (m *MockTransactionRepository) SetCategory(ctx context.Context, tx usecase.Transaction, id string, categoryID *string) error {
	if m.SetCategoryFunc != nil {
		return m.SetCategoryFunc(ctx, tx, id, categoryID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	txn, ok := m.transactions[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	txn.CategoryID = categoryID
	return nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.transactions, id)
	return nil
}

func (m *MockTransactionRepository) FindMatchCandidate(ctx context.Context, familyID string, txn *domain.Transaction, window time.Duration) (*domain.Transaction, error) {
	if m.FindMatchCandidateFunc != nil {
		return m.FindMatchCandidateFunc(ctx, familyID, txn, window)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var candidates []*domain.Transaction
	for _, c := range m.transactions {
		if c.ID == txn.ID || c.Linked() {
			continue
		}
		if c.AccountID() == txn.AccountID() {
			continue
		}
		if fam := m.familyOf(c); fam != "" && fam != familyID {
			continue
		}
		if !c.Amount().Equal(txn.Amount().Neg()) {
			continue
		}
		diff := c.Date().Sub(txn.Date())
		if diff < 0 {
			diff = -diff
		}
		if diff > window {
			continue
		}
		candidates = append(candidates, c)
	}

	if len(candidates) == 0 {
		return nil, domain.ErrTransactionNotFound
	}

	sort.Slice(candidates, func(i, j int) bool {
		di := absDuration(candidates[i].Date().Sub(txn.Date()))
		dj := absDuration(candidates[j].Date().Sub(txn.Date()))
		if di != dj {
			return di < dj
		}
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})

	return candidates[0], nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// MockTransferRepository is a mock implementation of
// TransferRepository. Create enforces leg exclusivity against other
// active transfers the way the database uniqueness constraint does.
type MockTransferRepository struct {
	mu        sync.RWMutex
	transfers map[string]*domain.Transfer

	CreateFunc       func(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error
	GetByIDFunc      func(ctx context.Context, familyID, id string) (*domain.Transfer, error)
	UpdateStatusFunc func(ctx context.Context, tx usecase.Transaction, id string, from, to domain.TransferStatus, updatedAt time.Time) error
	DeleteFunc       func(ctx context.Context, tx usecase.Transaction, id string) error
	ListFunc         func(ctx context.Context, familyID string, filter usecase.TransferFilter, limit, offset int) ([]*domain.Transfer, int64, error)
}

func NewMockTransferRepository() *MockTransferRepository {
	return &MockTransferRepository{transfers: make(map[string]*domain.Transfer)}
}

func (m *MockTransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transfer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.transfers {
		if existing.Status == domain.TransferStatusRejected {
			continue
		}
		for _, leg := range []string{transfer.OutflowTransactionID, transfer.InflowTransactionID} {
			if existing.OutflowTransactionID == leg || existing.InflowTransactionID == leg {
				return domain.ErrTransactionAlreadyLinked
			}
		}
	}
	m.transfers[transfer.ID] = transfer
	return nil
}

func (m *MockTransferRepository) GetByID(ctx context.Context, familyID, id string) (*domain.Transfer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, familyID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if tr, ok := m.transfers[id]; ok {
		return tr, nil
	}
	return nil, domain.ErrTransferNotFound
}

func (m *MockTransferRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, from, to domain.TransferStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, from, to, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tr, ok := m.transfers[id]
	if !ok {
		return domain.ErrTransferNotFound
	}
	if tr.Status != from {
		return domain.ErrTransferNotPending
	}
	tr.Status = to
	tr.UpdatedAt = updatedAt
	return nil
}

func (m *MockTransferRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transfers[id]; !ok {
		return domain.ErrTransferNotFound
	}
	delete(m.transfers, id)
	return nil
}

func (m *MockTransferRepository) List(ctx context.Context, familyID string, filter usecase.TransferFilter, limit, offset int) ([]*domain.Transfer, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, familyID, filter, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transfer
	for _, tr := range m.transfers {
		if filter.Status != nil && tr.Status != *filter.Status {
			continue
		}
		if filter.AccountID != nil &&
			tr.SourceAccountID() != *filter.AccountID &&
			tr.DestinationAccountID() != *filter.AccountID {
			continue
		}
		if filter.StartDate != nil && tr.Date().Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && tr.Date().After(*filter.EndDate) {
			continue
		}
		out = append(out, tr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))
	return paginate(out, limit, offset), total, nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*domain.Category

	CreateFunc  func(ctx context.Context, category *domain.Category) error
	GetByIDFunc func(ctx context.Context, familyID, id string) (*domain.Category, error)
	ListFunc    func(ctx context.Context, familyID, search string, classification *domain.CategoryClassification, limit, offset int) ([]*domain.Category, error)
	UpdateFunc  func(ctx context.Context, category *domain.Category) error
	DeleteFunc  func(ctx context.Context, familyID, id string) error
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{categories: make(map[string]*domain.Category)}
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[category.ID] = category
	return nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, familyID, id string) (*domain.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, familyID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.categories[id]; ok && c.FamilyID == familyID {
		return c, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) List(ctx context.Context, familyID, search string, classification *domain.CategoryClassification, limit, offset int) ([]*domain.Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, familyID, search, classification, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Category
	for _, c := range m.categories {
		if c.FamilyID != familyID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			continue
		}
		if classification != nil && c.Classification != *classification {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, category)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[category.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	m.categories[category.ID] = category
	return nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, familyID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, familyID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok || c.FamilyID != familyID {
		return domain.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

// MockMerchantRepository is a mock implementation of MerchantRepository.
type MockMerchantRepository struct {
	mu        sync.RWMutex
	merchants map[string]*domain.Merchant
}

func NewMockMerchantRepository() *MockMerchantRepository {
	return &MockMerchantRepository{merchants: make(map[string]*domain.Merchant)}
}

func (m *MockMerchantRepository) Create(ctx context.Context, merchant *domain.Merchant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.merchants[merchant.ID] = merchant
	return nil
}

func (m *MockMerchantRepository) GetByID(ctx context.Context, familyID, id string) (*domain.Merchant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if mc, ok := m.merchants[id]; ok && mc.FamilyID == familyID {
		return mc, nil
	}
	return nil, domain.ErrMerchantNotFound
}

func (m *MockMerchantRepository) List(ctx context.Context, familyID string, limit, offset int) ([]*domain.Merchant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Merchant
	for _, mc := range m.merchants {
		if mc.FamilyID == familyID {
			out = append(out, mc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (m *MockMerchantRepository) Update(ctx context.Context, merchant *domain.Merchant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.merchants[merchant.ID]; !ok {
		return domain.ErrMerchantNotFound
	}
	m.merchants[merchant.ID] = merchant
	return nil
}

func (m *MockMerchantRepository) Delete(ctx context.Context, familyID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mc, ok := m.merchants[id]
	if !ok || mc.FamilyID != familyID {
		return domain.ErrMerchantNotFound
	}
	delete(m.merchants, id)
	return nil
}

// MockTagRepository is a mock implementation of TagRepository.
type MockTagRepository struct {
	mu   sync.RWMutex
	tags map[string]*domain.Tag
}

func NewMockTagRepository() *MockTagRepository {
	return &MockTagRepository{tags: make(map[string]*domain.Tag)}
}

func (m *MockTagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tags[tag.ID] = tag
	return nil
}

func (m *MockTagRepository) GetByID(ctx context.Context, familyID, id string) (*domain.Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.tags[id]; ok && t.FamilyID == familyID {
		return t, nil
	}
	return nil, domain.ErrTagNotFound
}

func (m *MockTagRepository) List(ctx context.Context, familyID string, limit, offset int) ([]*domain.Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Tag
	for _, t := range m.tags {
		if t.FamilyID == familyID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (m *MockTagRepository) Update(ctx context.Context, tag *domain.Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tags[tag.ID]; !ok {
		return domain.ErrTagNotFound
	}
	m.tags[tag.ID] = tag
	return nil
}

func (m *MockTagRepository) Delete(ctx context.Context, familyID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tags[id]
	if !ok || t.FamilyID != familyID {
		return domain.ErrTagNotFound
	}
	delete(m.tags, id)
	return nil
}

// MockBudgetRepository is a mock implementation of BudgetRepository.
type MockBudgetRepository struct {
	mu         sync.RWMutex
	budgets    map[string]*domain.Budget
	categories map[string]*domain.BudgetCategory
}

func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		budgets:    make(map[string]*domain.Budget),
		categories: make(map[string]*domain.BudgetCategory),
	}
}

func (m *MockBudgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.budgets[budget.ID] = budget
	return nil
}

func (m *MockBudgetRepository) GetByID(ctx context.Context, familyID, id string) (*domain.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.budgets[id]; ok && b.FamilyID == familyID {
		return b, nil
	}
	return nil, domain.ErrBudgetNotFound
}

func (m *MockBudgetRepository) GetByStartDate(ctx context.Context, familyID string, startDate time.Time) (*domain.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.budgets {
		if b.FamilyID == familyID && b.StartDate.Equal(startDate) {
			return b, nil
		}
	}
	return nil, domain.ErrBudgetNotFound
}

func (m *MockBudgetRepository) List(ctx context.Context, familyID string, limit, offset int) ([]*domain.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Budget
	for _, b := range m.budgets {
		if b.FamilyID == familyID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return paginate(out, limit, offset), nil
}

func (m *MockBudgetRepository) Update(ctx context.Context, budget *domain.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.budgets[budget.ID]; !ok {
		return domain.ErrBudgetNotFound
	}
	m.budgets[budget.ID] = budget
	return nil
}

func (m *MockBudgetRepository) ListCategories(ctx context.Context, budgetID string) ([]*domain.BudgetCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.BudgetCategory
	for _, bc := range m.categories {
		if bc.BudgetID == budgetID {
			out = append(out, bc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryID < out[j].CategoryID })
	return out, nil
}

func (m *MockBudgetRepository) UpsertCategory(ctx context.Context, bc *domain.BudgetCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.categories {
		if existing.BudgetID == bc.BudgetID && existing.CategoryID == bc.CategoryID {
			existing.BudgetedAmount = bc.BudgetedAmount
			existing.UpdatedAt = bc.UpdatedAt
			*bc = *existing
			return nil
		}
	}
	m.categories[bc.ID] = bc
	return nil
}

// MockTransaction is a no-op database transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "id-" + strconv.Itoa(m.counter)
}

// MockCache is an in-memory Cache.
type MockCache struct {
	mu    sync.RWMutex
	store map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{store: make(map[string][]byte)}
}

func (c *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store[key], nil
}

func (c *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = value
	return nil
}

func (c *MockCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

// MockRetrier runs the operation once without retrying.
type MockRetrier struct{}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (r *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
