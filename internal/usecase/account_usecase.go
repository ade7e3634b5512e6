package usecase

import (
	"context"
	"time"

	"github.com/ledgerly/ledgerly/internal/domain"
)

// AccountUseCase handles account resolution and lifecycle. Accounts
// are collaborators of the transfer core: this layer only resolves,
// lists and archives them.
type AccountUseCase struct {
	accountRepo AccountRepository
	familyRepo  FamilyRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, familyRepo FamilyRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		familyRepo:  familyRepo,
		idGen:       idGen,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Name     string
	Currency string
	Type     domain.AccountType
}

// CreateAccount creates an account owned by the family.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, familyID string, input CreateAccountInput) (*domain.Account, error) {
	if _, err := uc.familyRepo.GetByID(ctx, familyID); err != nil {
		return nil, err
	}

	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	if !domain.ValidType(input.Type) {
		ve := domain.NewValidationError()
		ve.Add("type", "is not a supported account type")

		return nil, ve
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		FamilyID:  familyID,
		Name:      input.Name,
		Currency:  input.Currency,
		Type:      input.Type,
		Status:    domain.AccountStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount resolves a family-owned account.
func (uc *AccountUseCase) GetAccount(ctx context.Context, familyID, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, familyID, id)
}

// ListAccounts lists a family's accounts.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, familyID string, page, perPage int) ([]*domain.Account, error) {
	page, perPage = domain.ValidatePagination(page, perPage)

	return uc.accountRepo.List(ctx, familyID, perPage, (page-1)*perPage)
}

// ArchiveAccount marks an account archived. Archived accounts still
// resolve but force new transfers into pending.
func (uc *AccountUseCase) ArchiveAccount(ctx context.Context, familyID, id string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, familyID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.accountRepo.UpdateStatus(ctx, familyID, id, domain.AccountStatusArchived, now); err != nil {
		return nil, err
	}

	account.Status = domain.AccountStatusArchived
	account.UpdatedAt = now

	return account, nil
}
