package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerly/ledgerly/internal/domain"
)

// TagRepository implements tag persistence.
type TagRepository struct {
	pool *pgxpool.Pool
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(pool *pgxpool.Pool) *TagRepository {
	return &TagRepository{pool: pool}
}

// Create inserts a new tag.
func (r *TagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	query := `
		INSERT INTO tags (id, family_id, name, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		tag.ID,
		tag.FamilyID,
		tag.Name,
		tag.Color,
		tag.CreatedAt,
		tag.UpdatedAt,
	)

	return err
}

// GetByID retrieves a family-owned tag by ID.
func (r *TagRepository) GetByID(ctx context.Context, familyID, id string) (*domain.Tag, error) {
	query := `
		SELECT id, family_id, name, color, created_at, updated_at
		FROM tags
		WHERE id = $1 AND family_id = $2
	`

	var tag domain.Tag
	err := r.pool.QueryRow(ctx, query, id, familyID).Scan(
		&tag.ID,
		&tag.FamilyID,
		&tag.Name,
		&tag.Color,
		&tag.CreatedAt,
		&tag.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTagNotFound
	}
	if err != nil {
		return nil, err
	}

	return &tag, nil
}

// List retrieves a family's tags alphabetically with pagination.
func (r *TagRepository) List(ctx context.Context, familyID string, limit, offset int) ([]*domain.Tag, error) {
	query := `
		SELECT id, family_id, name, color, created_at, updated_at
		FROM tags
		WHERE family_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, familyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		var tag domain.Tag
		err := rows.Scan(
			&tag.ID,
			&tag.FamilyID,
			&tag.Name,
			&tag.Color,
			&tag.CreatedAt,
			&tag.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}

	return tags, rows.Err()
}

// Update updates a tag's attributes.
func (r *TagRepository) Update(ctx context.Context, tag *domain.Tag) error {
	query := `
		UPDATE tags
		SET name = $3, color = $4, updated_at = $5
		WHERE id = $1 AND family_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		tag.ID,
		tag.FamilyID,
		tag.Name,
		tag.Color,
		tag.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTagNotFound
	}

	return nil
}

// Delete removes a tag.
func (r *TagRepository) Delete(ctx context.Context, familyID, id string) error {
	query := `DELETE FROM tags WHERE id = $1 AND family_id = $2`

	result, err := r.pool.Exec(ctx, query, id, familyID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTagNotFound
	}

	return nil
}
