package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/ledgerly/internal/domain"
)

// TransactionUseCase handles stand-alone transactions: records
// imported from a bank sync or entered by hand. Such transactions are
// the raw material the matcher pairs into transfers.
type TransactionUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	categoryRepo    CategoryRepository
	idGen           IDGenerator
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	categoryRepo CategoryRepository,
	idGen IDGenerator,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		idGen:           idGen,
	}
}

// CreateTransactionInput represents input for recording a transaction.
type CreateTransactionInput struct {
	AccountID  string
	Date       time.Time
	Amount     decimal.Decimal
	Name       string
	CategoryID *string
}

func (in CreateTransactionInput) validate() error {
	ve := domain.NewValidationError()

	if in.AccountID == "" {
		ve.Add("account_id", "cannot be blank")
	}

	if in.Amount.IsZero() {
		ve.Add("amount", "cannot be zero")
	}

	if in.Date.IsZero() {
		ve.Add("date", "must be a valid date")
	}

	if in.Name == "" {
		ve.Add("name", "cannot be blank")
	}

	if ve.HasErrors() {
		return ve
	}

	return nil
}

// CreateTransaction records a stand-alone transaction on an account.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, familyID string, input CreateTransactionInput) (*domain.Transaction, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	if _, err := uc.accountRepo.GetByID(ctx, familyID, input.AccountID); err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if _, err := uc.categoryRepo.GetByID(ctx, familyID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID: uc.idGen.Generate(),
		Entry: &domain.Entry{
			ID:        uc.idGen.Generate(),
			AccountID: input.AccountID,
			Date:      input.Date,
			Amount:    input.Amount,
			Name:      input.Name,
			CreatedAt: now,
			UpdatedAt: now,
		},
		CategoryID: input.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.transactionRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return txn, nil
}

// GetTransaction retrieves a family-owned transaction.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, familyID, id string) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, familyID, id)
}

// ListTransactionsByAccount lists an account's transactions.
func (uc *TransactionUseCase) ListTransactionsByAccount(ctx context.Context, familyID, accountID string, page, perPage int) ([]*domain.Transaction, error) {
	if _, err := uc.accountRepo.GetByID(ctx, familyID, accountID); err != nil {
		return nil, err
	}

	page, perPage = domain.ValidatePagination(page, perPage)

	return uc.transactionRepo.ListByAccount(ctx, familyID, accountID, perPage, (page-1)*perPage)
}

// SetTransactionCategory sets the category on a transaction that is
// not owned by an active transfer. Linked legs must be detached first.
func (uc *TransactionUseCase) SetTransactionCategory(ctx context.Context, familyID, id string, categoryID *string) (*domain.Transaction, error) {
	txn, err := uc.transactionRepo.GetByID(ctx, familyID, id)
	if err != nil {
		return nil, err
	}

	if txn.Linked() {
		return nil, domain.ErrTransactionAlreadyLinked
	}

	if categoryID != nil {
		if _, err := uc.categoryRepo.GetByID(ctx, familyID, *categoryID); err != nil {
			return nil, err
		}
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.transactionRepo.SetCategory(ctx, tx, txn.ID, categoryID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	txn.CategoryID = categoryID

	return txn, nil
}
