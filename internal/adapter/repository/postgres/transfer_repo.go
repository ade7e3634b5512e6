package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerly/ledgerly/internal/domain"
	"github.com/ledgerly/ledgerly/internal/usecase"
)

// Partial unique indexes guarding leg exclusivity. They only cover
// pending and confirmed transfers, so a rejected transfer releases its
// legs for rematching while keeping the row for history.
const (
	constraintOutflowActive = "transfers_outflow_active_idx"
	constraintInflowActive  = "transfers_inflow_active_idx"
)

// TransferRepository implements transfer persistence. Reads load the
// full aggregate: both legs with their entries and both accounts.
type TransferRepository struct {
	pool *pgxpool.Pool
}

// NewTransferRepository creates a new transfer repository.
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{pool: pool}
}

const transferSelect = `
	SELECT tr.id, tr.status, tr.created_at, tr.updated_at,
	       ot.id, ot.category_id, ot.merchant_id, ot.created_at, ot.updated_at,
	       oe.id, oe.account_id, oe.date, oe.amount, oe.name, oe.created_at, oe.updated_at,
	       it.id, it.category_id, it.merchant_id, it.created_at, it.updated_at,
	       ie.id, ie.account_id, ie.date, ie.amount, ie.name, ie.created_at, ie.updated_at,
	       sa.id, sa.family_id, sa.name, sa.currency, sa.type, sa.status, sa.created_at, sa.updated_at,
	       da.id, da.family_id, da.name, da.currency, da.type, da.status, da.created_at, da.updated_at
	FROM transfers tr
	JOIN transactions ot ON ot.id = tr.outflow_transaction_id
	JOIN entries oe ON oe.id = ot.entry_id
	JOIN accounts sa ON sa.id = oe.account_id
	JOIN transactions it ON it.id = tr.inflow_transaction_id
	JOIN entries ie ON ie.id = it.entry_id
	JOIN accounts da ON da.id = ie.account_id
`

func scanTransfer(row pgx.Row) (*domain.Transfer, error) {
	var transfer domain.Transfer
	var outflow, inflow domain.Transaction
	var outEntry, inEntry domain.Entry
	var source, destination domain.Account

	err := row.Scan(
		&transfer.ID, &transfer.Status, &transfer.CreatedAt, &transfer.UpdatedAt,
		&outflow.ID, &outflow.CategoryID, &outflow.MerchantID, &outflow.CreatedAt, &outflow.UpdatedAt,
		&outEntry.ID, &outEntry.AccountID, &outEntry.Date, &outEntry.Amount, &outEntry.Name, &outEntry.CreatedAt, &outEntry.UpdatedAt,
		&inflow.ID, &inflow.CategoryID, &inflow.MerchantID, &inflow.CreatedAt, &inflow.UpdatedAt,
		&inEntry.ID, &inEntry.AccountID, &inEntry.Date, &inEntry.Amount, &inEntry.Name, &inEntry.CreatedAt, &inEntry.UpdatedAt,
		&source.ID, &source.FamilyID, &source.Name, &source.Currency, &source.Type, &source.Status, &source.CreatedAt, &source.UpdatedAt,
		&destination.ID, &destination.FamilyID, &destination.Name, &destination.Currency, &destination.Type, &destination.Status, &destination.CreatedAt, &destination.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	outflow.Entry = &outEntry
	inflow.Entry = &inEntry

	if transfer.Status != domain.TransferStatusRejected {
		outflow.TransferID = &transfer.ID
		inflow.TransferID = &transfer.ID
	}

	transfer.OutflowTransactionID = outflow.ID
	transfer.InflowTransactionID = inflow.ID
	transfer.Outflow = &outflow
	transfer.Inflow = &inflow
	transfer.SourceAccount = &source
	transfer.DestinationAccount = &destination

	return &transfer, nil
}

// Create inserts the transfer row. A leg already owned by an active
// transfer trips a partial unique index and surfaces as
// domain.ErrTransactionAlreadyLinked.
func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	query := `
		INSERT INTO transfers (id, status, outflow_transaction_id, inflow_transaction_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := querier(tx, r.pool).Exec(ctx, query,
		transfer.ID,
		transfer.Status,
		transfer.OutflowTransactionID,
		transfer.InflowTransactionID,
		transfer.CreatedAt,
		transfer.UpdatedAt,
	)

	if isUniqueViolation(err, constraintOutflowActive) || isUniqueViolation(err, constraintInflowActive) {
		return domain.ErrTransactionAlreadyLinked
	}

	return err
}

// GetByID retrieves a family-owned transfer with its full aggregate.
func (r *TransferRepository) GetByID(ctx context.Context, familyID, id string) (*domain.Transfer, error) {
	query := transferSelect + `
	WHERE tr.id = $1 AND sa.family_id = $2
	`

	transfer, err := scanTransfer(r.pool.QueryRow(ctx, query, id, familyID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransferNotFound
	}
	if err != nil {
		return nil, err
	}

	return transfer, nil
}

// UpdateStatus applies from -> to guarded by the current status. A
// concurrent transition makes the guard miss; that surfaces as
// domain.ErrTransferNotPending.
func (r *TransferRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, from, to domain.TransferStatus, updatedAt time.Time) error {
	query := `
		UPDATE transfers
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
	`

	tag, err := querier(tx, r.pool).Exec(ctx, query, id, from, to, updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransferNotPending
	}

	return nil
}

// Delete removes a transfer row. The legs are deleted separately by
// the caller inside the same database transaction.
func (r *TransferRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	query := `DELETE FROM transfers WHERE id = $1`

	tag, err := querier(tx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransferNotFound
	}

	return nil
}

// List retrieves a family's transfers, newest first, narrowed by the
// filter, together with the unpaginated total.
func (r *TransferRepository) List(ctx context.Context, familyID string, filter usecase.TransferFilter, limit, offset int) ([]*domain.Transfer, int64, error) {
	where := []string{"sa.family_id = $1"}
	args := []any{familyID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		where = append(where, fmt.Sprintf("tr.status = $%d", len(args)))
	}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		where = append(where, fmt.Sprintf("oe.date >= $%d", len(args)))
	}

	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		where = append(where, fmt.Sprintf("oe.date <= $%d", len(args)))
	}

	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		where = append(where, fmt.Sprintf("(sa.id = $%d OR da.id = $%d)", len(args), len(args)))
	}

	whereClause := "WHERE " + strings.Join(where, " AND ")

	countQuery := `
	SELECT COUNT(*)
	FROM transfers tr
	JOIN transactions ot ON ot.id = tr.outflow_transaction_id
	JOIN entries oe ON oe.id = ot.entry_id
	JOIN accounts sa ON sa.id = oe.account_id
	JOIN transactions it ON it.id = tr.inflow_transaction_id
	JOIN entries ie ON ie.id = it.entry_id
	JOIN accounts da ON da.id = ie.account_id
	` + whereClause

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit)
	limitPos := len(args)
	args = append(args, offset)
	offsetPos := len(args)

	listQuery := transferSelect + whereClause + fmt.Sprintf(`
	ORDER BY tr.created_at DESC
	LIMIT $%d OFFSET $%d
	`, limitPos, offsetPos)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var transfers []*domain.Transfer
	for rows.Next() {
		transfer, err := scanTransfer(rows)
		if err != nil {
			return nil, 0, err
		}
		transfers = append(transfers, transfer)
	}

	return transfers, total, rows.Err()
}
