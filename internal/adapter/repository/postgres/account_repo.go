package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerly/ledgerly/internal/domain"
)

// AccountRepository implements account persistence. Every read is
// scoped to a family.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, family_id, name, currency, type, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		account.ID,
		account.FamilyID,
		account.Name,
		account.Currency,
		account.Type,
		account.Status,
		account.CreatedAt,
		account.UpdatedAt,
	)

	return err
}

// GetByID retrieves a family-owned account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, familyID, id string) (*domain.Account, error) {
	query := `
		SELECT id, family_id, name, currency, type, status, created_at, updated_at
		FROM accounts
		WHERE id = $1 AND family_id = $2
	`

	var account domain.Account
	err := r.pool.QueryRow(ctx, query, id, familyID).Scan(
		&account.ID,
		&account.FamilyID,
		&account.Name,
		&account.Currency,
		&account.Type,
		&account.Status,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	return &account, nil
}

// List retrieves a family's accounts alphabetically with pagination.
func (r *AccountRepository) List(ctx context.Context, familyID string, limit, offset int) ([]*domain.Account, error) {
	query := `
		SELECT id, family_id, name, currency, type, status, created_at, updated_at
		FROM accounts
		WHERE family_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, familyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		var account domain.Account
		err := rows.Scan(
			&account.ID,
			&account.FamilyID,
			&account.Name,
			&account.Currency,
			&account.Type,
			&account.Status,
			&account.CreatedAt,
			&account.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, &account)
	}

	return accounts, rows.Err()
}

// UpdateStatus sets an account's status.
func (r *AccountRepository) UpdateStatus(ctx context.Context, familyID, id string, status domain.AccountStatus, updatedAt time.Time) error {
	query := `
		UPDATE accounts
		SET status = $3, updated_at = $4
		WHERE id = $1 AND family_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, id, familyID, status, updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}
