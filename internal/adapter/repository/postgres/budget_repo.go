package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerly/ledgerly/internal/domain"
)

// BudgetRepository implements budget persistence. One budget row per
// family and month, enforced by a uniqueness constraint on
// (family_id, start_date).
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new budget repository.
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

const budgetColumns = `id, family_id, start_date, end_date, currency, budgeted_amount, expected_income, created_at, updated_at`

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var budget domain.Budget
	err := row.Scan(
		&budget.ID,
		&budget.FamilyID,
		&budget.StartDate,
		&budget.EndDate,
		&budget.Currency,
		&budget.BudgetedAmount,
		&budget.ExpectedIncome,
		&budget.CreatedAt,
		&budget.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &budget, nil
}

// Create inserts a new budget.
func (r *BudgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		budget.ID,
		budget.FamilyID,
		budget.StartDate,
		budget.EndDate,
		budget.Currency,
		budget.BudgetedAmount,
		budget.ExpectedIncome,
		budget.CreatedAt,
		budget.UpdatedAt,
	)

	return err
}

// GetByID retrieves a family-owned budget by ID.
func (r *BudgetRepository) GetByID(ctx context.Context, familyID, id string) (*domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE id = $1 AND family_id = $2
	`

	budget, err := scanBudget(r.pool.QueryRow(ctx, query, id, familyID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBudgetNotFound
	}
	if err != nil {
		return nil, err
	}

	return budget, nil
}

// GetByStartDate retrieves the budget starting on the given date.
func (r *BudgetRepository) GetByStartDate(ctx context.Context, familyID string, startDate time.Time) (*domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE family_id = $1 AND start_date = $2
	`

	budget, err := scanBudget(r.pool.QueryRow(ctx, query, familyID, startDate))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBudgetNotFound
	}
	if err != nil {
		return nil, err
	}

	return budget, nil
}

// List retrieves a family's budgets, most recent month first.
func (r *BudgetRepository) List(ctx context.Context, familyID string, limit, offset int) ([]*domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE family_id = $1
		ORDER BY start_date DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, familyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}

	return budgets, rows.Err()
}

// Update updates a budget's amounts.
func (r *BudgetRepository) Update(ctx context.Context, budget *domain.Budget) error {
	query := `
		UPDATE budgets
		SET budgeted_amount = $3, expected_income = $4, updated_at = $5
		WHERE id = $1 AND family_id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		budget.ID,
		budget.FamilyID,
		budget.BudgetedAmount,
		budget.ExpectedIncome,
		budget.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}

	return nil
}

// ListCategories retrieves a budget's per-category allocations.
func (r *BudgetRepository) ListCategories(ctx context.Context, budgetID string) ([]*domain.BudgetCategory, error) {
	query := `
		SELECT id, budget_id, category_id, budgeted_amount, created_at, updated_at
		FROM budget_categories
		WHERE budget_id = $1
		ORDER BY category_id
	`

	rows, err := r.pool.Query(ctx, query, budgetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []*domain.BudgetCategory
	for rows.Next() {
		var bc domain.BudgetCategory
		err := rows.Scan(
			&bc.ID,
			&bc.BudgetID,
			&bc.CategoryID,
			&bc.BudgetedAmount,
			&bc.CreatedAt,
			&bc.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, &bc)
	}

	return allocations, rows.Err()
}

// UpsertCategory inserts or updates one category allocation. The
// existing row's identity wins on conflict.
func (r *BudgetRepository) UpsertCategory(ctx context.Context, bc *domain.BudgetCategory) error {
	query := `
		INSERT INTO budget_categories (id, budget_id, category_id, budgeted_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (budget_id, category_id)
		DO UPDATE SET budgeted_amount = EXCLUDED.budgeted_amount, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	return r.pool.QueryRow(ctx, query,
		bc.ID,
		bc.BudgetID,
		bc.CategoryID,
		bc.BudgetedAmount,
		bc.CreatedAt,
		bc.UpdatedAt,
	).Scan(&bc.ID, &bc.CreatedAt)
}
