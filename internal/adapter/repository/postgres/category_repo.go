package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerly/ledgerly/internal/domain"
)

// CategoryRepository implements category persistence.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create inserts a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (id, family_id, name, color, classification, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		category.ID,
		category.FamilyID,
		category.Name,
		category.Color,
		category.Classification,
		category.ParentID,
		category.CreatedAt,
		category.UpdatedAt,
	)

	return err
}

// GetByID retrieves a family-owned category by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, familyID, id string) (*domain.Category, error) {
	query := `
		SELECT id, family_id, name, color, classification, parent_id, created_at, updated_at
		FROM categories
		WHERE id = $1 AND family_id = $2
	`

	var category domain.Category
	err := r.pool.QueryRow(ctx, query, id, familyID).Scan(
		&category.ID,
		&category.FamilyID,
		&category.Name,
		&category.Color,
		&category.Classification,
		&category.ParentID,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	return &category, nil
}

// List retrieves a family's categories alphabetically, optionally
// narrowed by a case-insensitive name search and a classification.
func (r *CategoryRepository) List(ctx context.Context, familyID, search string, classification *domain.CategoryClassification, limit, offset int) ([]*domain.Category, error) {
	where := []string{"family_id = $1"}
	args := []any{familyID}

	if search != "" {
		args = append(args, "%"+search+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}

	if classification != nil {
		args = append(args, *classification)
		where = append(where, fmt.Sprintf("classification = $%d", len(args)))
	}

	args = append(args, limit)
	limitPos := len(args)
	args = append(args, offset)
	offsetPos := len(args)

	query := fmt.Sprintf(`
		SELECT id, family_id, name, color, classification, parent_id, created_at, updated_at
		FROM categories
		WHERE %s
		ORDER BY name
		LIMIT $%d OFFSET $%d
	`, strings.Join(where, " AND "), limitPos, offsetPos)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var category domain.Category
		err := rows.Scan(
			&category.ID,
			&category.FamilyID,
			&category.Name,
			&category.Color,
			&category.Classification,
			&category.ParentID,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}

	return categories, rows.Err()
}

// Update updates a category's attributes.
func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	query := `
		UPDATE categories
		SET name = $3, color = $4, classification = $5, parent_id = $6, updated_at = $7
		WHERE id = $1 AND family_id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		category.ID,
		category.FamilyID,
		category.Name,
		category.Color,
		category.Classification,
		category.ParentID,
		category.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}

// Delete removes a category. Referencing transactions fall back to
// uncategorized through ON DELETE SET NULL.
func (r *CategoryRepository) Delete(ctx context.Context, familyID, id string) error {
	query := `DELETE FROM categories WHERE id = $1 AND family_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, familyID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}
