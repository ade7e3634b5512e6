package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerly/ledgerly/internal/domain"
)

// MerchantRepository implements merchant persistence.
type MerchantRepository struct {
	pool *pgxpool.Pool
}

// NewMerchantRepository creates a new merchant repository.
func NewMerchantRepository(pool *pgxpool.Pool) *MerchantRepository {
	return &MerchantRepository{pool: pool}
}

// Create inserts a new merchant.
func (r *MerchantRepository) Create(ctx context.Context, merchant *domain.Merchant) error {
	query := `
		INSERT INTO merchants (id, family_id, name, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		merchant.ID,
		merchant.FamilyID,
		merchant.Name,
		merchant.Color,
		merchant.CreatedAt,
		merchant.UpdatedAt,
	)

	return err
}

// GetByID retrieves a family-owned merchant by ID.
func (r *MerchantRepository) GetByID(ctx context.Context, familyID, id string) (*domain.Merchant, error) {
	query := `
		SELECT id, family_id, name, color, created_at, updated_at
		FROM merchants
		WHERE id = $1 AND family_id = $2
	`

	var merchant domain.Merchant
	err := r.pool.QueryRow(ctx, query, id, familyID).Scan(
		&merchant.ID,
		&merchant.FamilyID,
		&merchant.Name,
		&merchant.Color,
		&merchant.CreatedAt,
		&merchant.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMerchantNotFound
	}
	if err != nil {
		return nil, err
	}

	return &merchant, nil
}

// List retrieves a family's merchants alphabetically with pagination.
func (r *MerchantRepository) List(ctx context.Context, familyID string, limit, offset int) ([]*domain.Merchant, error) {
	query := `
		SELECT id, family_id, name, color, created_at, updated_at
		FROM merchants
		WHERE family_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, familyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var merchants []*domain.Merchant
	for rows.Next() {
		var merchant domain.Merchant
		err := rows.Scan(
			&merchant.ID,
			&merchant.FamilyID,
			&merchant.Name,
			&merchant.Color,
			&merchant.CreatedAt,
			&merchant.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		merchants = append(merchants, &merchant)
	}

	return merchants, rows.Err()
}

// Update updates a merchant's attributes.
func (r *MerchantRepository) Update(ctx context.Context, merchant *domain.Merchant) error {
	query := `
		UPDATE merchants
		SET name = $3, color = $4, updated_at = $5
		WHERE id = $1 AND family_id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		merchant.ID,
		merchant.FamilyID,
		merchant.Name,
		merchant.Color,
		merchant.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrMerchantNotFound
	}

	return nil
}

// Delete removes a merchant.
func (r *MerchantRepository) Delete(ctx context.Context, familyID, id string) error {
	query := `DELETE FROM merchants WHERE id = $1 AND family_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, familyID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrMerchantNotFound
	}

	return nil
}
