package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerly/ledgerly/internal/domain"
)

// FamilyRepository implements family persistence.
type FamilyRepository struct {
	pool *pgxpool.Pool
}

// NewFamilyRepository creates a new family repository.
func NewFamilyRepository(pool *pgxpool.Pool) *FamilyRepository {
	return &FamilyRepository{pool: pool}
}

// Create inserts a new family.
func (r *FamilyRepository) Create(ctx context.Context, family *domain.Family) error {
	query := `
		INSERT INTO families (id, name, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		family.ID,
		family.Name,
		family.Currency,
		family.CreatedAt,
		family.UpdatedAt,
	)

	return err
}

// GetByID retrieves a family by ID.
func (r *FamilyRepository) GetByID(ctx context.Context, id string) (*domain.Family, error) {
	query := `
		SELECT id, name, currency, created_at, updated_at
		FROM families
		WHERE id = $1
	`

	var family domain.Family
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&family.ID,
		&family.Name,
		&family.Currency,
		&family.CreatedAt,
		&family.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFamilyNotFound
	}
	if err != nil {
		return nil, err
	}

	return &family, nil
}
