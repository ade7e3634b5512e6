package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerly/ledgerly/internal/domain"
	"github.com/ledgerly/ledgerly/internal/usecase"
)

// TransactionRepository implements transaction persistence. A
// transaction row always carries its entry; the owning transfer, if
// any, is resolved through the transfers table so a rejected transfer
// never counts as a link.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new transaction repository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionSelect = `
	SELECT t.id, t.category_id, t.merchant_id, t.created_at, t.updated_at,
	       e.id, e.account_id, e.date, e.amount, e.name, e.created_at, e.updated_at,
	       tr.id
	FROM transactions t
	JOIN entries e ON e.id = t.entry_id
	JOIN accounts a ON a.id = e.account_id
	LEFT JOIN transfers tr
	       ON (tr.outflow_transaction_id = t.id OR tr.inflow_transaction_id = t.id)
	      AND tr.status <> 'rejected'
`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	var entry domain.Entry

	err := row.Scan(
		&txn.ID,
		&txn.CategoryID,
		&txn.MerchantID,
		&txn.CreatedAt,
		&txn.UpdatedAt,
		&entry.ID,
		&entry.AccountID,
		&entry.Date,
		&entry.Amount,
		&entry.Name,
		&entry.CreatedAt,
		&entry.UpdatedAt,
		&txn.TransferID,
	)
	if err != nil {
		return nil, err
	}

	txn.Entry = &entry

	return &txn, nil
}

// Create inserts the entry and its transaction row inside the given
// database transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	db := querier(tx, r.pool)

	entryQuery := `
		INSERT INTO entries (id, account_id, date, amount, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := db.Exec(ctx, entryQuery,
		txn.Entry.ID,
		txn.Entry.AccountID,
		txn.Entry.Date,
		txn.Entry.Amount,
		txn.Entry.Name,
		txn.Entry.CreatedAt,
		txn.Entry.UpdatedAt,
	)
	if err != nil {
		return err
	}

	txnQuery := `
		INSERT INTO transactions (id, entry_id, category_id, merchant_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = db.Exec(ctx, txnQuery,
		txn.ID,
		txn.Entry.ID,
		txn.CategoryID,
		txn.MerchantID,
		txn.CreatedAt,
		txn.UpdatedAt,
	)

	return err
}

// GetByID retrieves a transaction whose account belongs to the family.
func (r *TransactionRepository) GetByID(ctx context.Context, familyID, id string) (*domain.Transaction, error) {
	query := transactionSelect + `
	WHERE t.id = $1 AND a.family_id = $2
	`

	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, id, familyID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// ListByAccount retrieves an account's transactions, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, familyID, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	query := transactionSelect + `
	WHERE e.account_id = $1 AND a.family_id = $2
	ORDER BY e.date DESC, t.created_at DESC
	LIMIT $3 OFFSET $4
	`

	rows, err := r.pool.Query(ctx, query, accountID, familyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}

	return transactions, rows.Err()
}

// SetCategory sets or clears a transaction's category.
func (r *TransactionRepository) SetCategory(ctx context.Context, tx usecase.Transaction, id string, categoryID *string) error {
	query := `
		UPDATE transactions
		SET category_id = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := querier(tx, r.pool).Exec(ctx, query, id, categoryID, time.Now().UTC())
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// Delete removes a transaction and its entry.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	query := `
		WITH removed AS (
			DELETE FROM transactions WHERE id = $1 RETURNING entry_id
		)
		DELETE FROM entries WHERE id IN (SELECT entry_id FROM removed)
	`

	tag, err := querier(tx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// FindMatchCandidate returns the best counter-transaction for txn: the
// opposite sign and equal absolute amount, a different account in the
// same family, dated within the window and not owned by an active
// transfer. Ties break on date proximity, then insertion order.
func (r *TransactionRepository) FindMatchCandidate(ctx context.Context, familyID string, txn *domain.Transaction, window time.Duration) (*domain.Transaction, error) {
	windowDays := int(window.Hours() / 24)
	date := txn.Date()

	query := transactionSelect + `
	WHERE a.family_id = $1
	  AND t.id <> $2
	  AND e.account_id <> $3
	  AND e.amount = $4
	  AND e.date BETWEEN $5 AND $6
	  AND tr.id IS NULL
	ORDER BY ABS(e.date - $7::date), t.created_at
	LIMIT 1
	`

	row := r.pool.QueryRow(ctx, query,
		familyID,
		txn.ID,
		txn.AccountID(),
		txn.Amount().Neg(),
		date.AddDate(0, 0, -windowDays),
		date.AddDate(0, 0, windowDays),
		date,
	)

	candidate, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	return candidate, nil
}
