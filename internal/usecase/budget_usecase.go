package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/ledgerly/internal/domain"
)

// BudgetUseCase handles month budgets. A budget for a month is
// bootstrapped on first access rather than created explicitly.
type BudgetUseCase struct {
	budgetRepo   BudgetRepository
	categoryRepo CategoryRepository
	familyRepo   FamilyRepository
	idGen        IDGenerator
}

// NewBudgetUseCase creates a new BudgetUseCase.
func NewBudgetUseCase(
	budgetRepo BudgetRepository,
	categoryRepo CategoryRepository,
	familyRepo FamilyRepository,
	idGen IDGenerator,
) *BudgetUseCase {
	return &BudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		familyRepo:   familyRepo,
		idGen:        idGen,
	}
}

// BudgetInput represents budgeted amounts applied to a month budget.
type BudgetInput struct {
	StartDate      time.Time
	BudgetedAmount decimal.Decimal
	ExpectedIncome decimal.Decimal
}

// UpsertBudget finds or bootstraps the budget covering the month of
// StartDate and applies the provided amounts.
func (uc *BudgetUseCase) UpsertBudget(ctx context.Context, familyID string, input BudgetInput) (*domain.Budget, error) {
	if input.StartDate.IsZero() {
		ve := domain.NewValidationError()
		ve.Add("start_date", "must be a valid date")

		return nil, ve
	}

	if input.BudgetedAmount.IsNegative() || input.ExpectedIncome.IsNegative() {
		ve := domain.NewValidationError()
		ve.Add("budgeted_amount", "cannot be negative")

		return nil, ve
	}

	budget, err := uc.findOrBootstrap(ctx, familyID, input.StartDate)
	if err != nil {
		return nil, err
	}

	budget.BudgetedAmount = input.BudgetedAmount
	budget.ExpectedIncome = input.ExpectedIncome
	budget.UpdatedAt = time.Now().UTC()

	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, err
	}

	return budget, nil
}

func (uc *BudgetUseCase) findOrBootstrap(ctx context.Context, familyID string, startDate time.Time) (*domain.Budget, error) {
	first, next := domain.MonthRange(startDate)

	budget, err := uc.budgetRepo.GetByStartDate(ctx, familyID, first)
	if err == nil {
		return budget, nil
	}

	if !errors.Is(err, domain.ErrBudgetNotFound) {
		return nil, err
	}

	family, err := uc.familyRepo.GetByID(ctx, familyID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	budget = &domain.Budget{
		ID:             uc.idGen.Generate(),
		FamilyID:       familyID,
		StartDate:      first,
		EndDate:        next.AddDate(0, 0, -1),
		Currency:       family.Currency,
		BudgetedAmount: decimal.Zero,
		ExpectedIncome: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		return nil, err
	}

	return budget, nil
}

// GetBudget retrieves a family-owned budget.
func (uc *BudgetUseCase) GetBudget(ctx context.Context, familyID, id string) (*domain.Budget, error) {
	return uc.budgetRepo.GetByID(ctx, familyID, id)
}

// ListBudgets lists a family's budgets, most recent month first.
func (uc *BudgetUseCase) ListBudgets(ctx context.Context, familyID string, page, perPage int) ([]*domain.Budget, error) {
	page, perPage = domain.ValidatePagination(page, perPage)

	return uc.budgetRepo.List(ctx, familyID, perPage, (page-1)*perPage)
}

// ListBudgetCategories lists the per-category allocations of a budget.
func (uc *BudgetUseCase) ListBudgetCategories(ctx context.Context, familyID, budgetID string) ([]*domain.BudgetCategory, error) {
	if _, err := uc.budgetRepo.GetByID(ctx, familyID, budgetID); err != nil {
		return nil, err
	}

	return uc.budgetRepo.ListCategories(ctx, budgetID)
}

// SetBudgetCategory sets the budgeted amount for one category inside
// a budget.
func (uc *BudgetUseCase) SetBudgetCategory(ctx context.Context, familyID, budgetID, categoryID string, amount decimal.Decimal) (*domain.BudgetCategory, error) {
	if amount.IsNegative() {
		ve := domain.NewValidationError()
		ve.Add("budgeted_amount", "cannot be negative")

		return nil, ve
	}

	if _, err := uc.budgetRepo.GetByID(ctx, familyID, budgetID); err != nil {
		return nil, err
	}

	if _, err := uc.categoryRepo.GetByID(ctx, familyID, categoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bc := &domain.BudgetCategory{
		ID:             uc.idGen.Generate(),
		BudgetID:       budgetID,
		CategoryID:     categoryID,
		BudgetedAmount: amount,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.budgetRepo.UpsertCategory(ctx, bc); err != nil {
		return nil, err
	}

	return bc, nil
}
