package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/ledgerly/internal/domain"
)

// TransferUseCase owns the transfer lifecycle: atomic two-leg
// creation, confirm/reject transitions, category updates and deletion.
type TransferUseCase struct {
	txManager       TransactionManager
	retrier         Retrier
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	transferRepo    TransferRepository
	categoryRepo    CategoryRepository
	idGen           IDGenerator
	metrics         TransferMetrics
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	retrier Retrier,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	transferRepo TransferRepository,
	categoryRepo CategoryRepository,
	idGen IDGenerator,
	metrics TransferMetrics,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:       txManager,
		retrier:         retrier,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		transferRepo:    transferRepo,
		categoryRepo:    categoryRepo,
		idGen:           idGen,
		metrics:         metrics,
	}
}

// CreateTransferInput represents input for creating a transfer.
type CreateTransferInput struct {
	SourceAccountID      string
	DestinationAccountID string
	Date                 time.Time
	Amount               decimal.Decimal
}

func (in CreateTransferInput) validate() error {
	ve := domain.NewValidationError()

	if in.Amount.LessThanOrEqual(decimal.Zero) {
		ve.Add("amount", "must be positive")
	} else if err := domain.ValidateTransferAmount(in.Amount); err != nil {
		ve.Add("amount", fmt.Sprintf("maximum amount is %s", domain.MaxTransferAmount))
	}

	if in.SourceAccountID == "" {
		ve.Add("from_account_id", "cannot be blank")
	}

	if in.DestinationAccountID == "" {
		ve.Add("to_account_id", "cannot be blank")
	}

	if in.SourceAccountID != "" && in.SourceAccountID == in.DestinationAccountID {
		ve.Add("to_account_id", "must be different from from_account_id")
	}

	if in.Date.IsZero() {
		ve.Add("date", "must be a valid date")
	}

	if ve.HasErrors() {
		return ve
	}

	return nil
}

// CreateTransfer builds the two linked legs and the transfer row
// inside one database transaction. Either everything is persisted or
// nothing is; validation failures short-circuit before any write.
func (uc *TransferUseCase) CreateTransfer(ctx context.Context, familyID string, input CreateTransferInput) (*domain.Transfer, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	source, err := uc.accountRepo.GetByID(ctx, familyID, input.SourceAccountID)
	if err != nil {
		return nil, err
	}

	destination, err := uc.accountRepo.GetByID(ctx, familyID, input.DestinationAccountID)
	if err != nil {
		return nil, err
	}

	if source.Currency != destination.Currency {
		return nil, domain.ErrCurrencyMismatch
	}

	// An archived account on either side forces the transfer into
	// pending so a human reviews it.
	status := domain.TransferStatusConfirmed
	if !source.Active() || !destination.Active() {
		status = domain.TransferStatusPending
	}

	now := time.Now().UTC()

	outflow := &domain.Transaction{
		ID: uc.idGen.Generate(),
		Entry: &domain.Entry{
			ID:        uc.idGen.Generate(),
			AccountID: source.ID,
			Date:      input.Date,
			Amount:    input.Amount.Neg(),
			Name:      "Transfer to " + destination.Name,
			CreatedAt: now,
			UpdatedAt: now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	inflow := &domain.Transaction{
		ID: uc.idGen.Generate(),
		Entry: &domain.Entry{
			ID:        uc.idGen.Generate(),
			AccountID: destination.ID,
			Date:      input.Date,
			Amount:    input.Amount,
			Name:      "Transfer from " + source.Name,
			CreatedAt: now,
			UpdatedAt: now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	transfer := &domain.Transfer{
		ID:                   uc.idGen.Generate(),
		Status:               status,
		OutflowTransactionID: outflow.ID,
		InflowTransactionID:  inflow.ID,
		Outflow:              outflow,
		Inflow:               inflow,
		SourceAccount:        source,
		DestinationAccount:   destination,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := transfer.ValidateLegs(); err != nil {
		return nil, err
	}

	err = uc.retry(ctx, func() error {
		return uc.persistTransfer(ctx, transfer)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransferCreated(transfer.Status, input.Amount)
	}

	return transfer, nil
}

func (uc *TransferUseCase) persistTransfer(ctx context.Context, transfer *domain.Transfer) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.transactionRepo.Create(ctx, tx, transfer.Outflow); err != nil {
		return err
	}

	if err := uc.transactionRepo.Create(ctx, tx, transfer.Inflow); err != nil {
		return err
	}

	if err := uc.transferRepo.Create(ctx, tx, transfer); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetTransfer retrieves a family-owned transfer by ID.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, familyID, id string) (*domain.Transfer, error) {
	return uc.transferRepo.GetByID(ctx, familyID, id)
}

// TransferPage is one page of a transfer listing.
type TransferPage struct {
	Transfers  []*domain.Transfer
	Page       int
	PerPage    int
	TotalCount int64
	TotalPages int
}

// ListTransfers returns transfers for a family, newest first, narrowed
// by the filter.
func (uc *TransferUseCase) ListTransfers(ctx context.Context, familyID string, filter TransferFilter, page, perPage int) (*TransferPage, error) {
	if filter.Status != nil && !domain.ValidStatus(*filter.Status) {
		ve := domain.NewValidationError()
		ve.Add("status", "must be one of pending, confirmed, rejected")

		return nil, ve
	}

	page, perPage = domain.ValidatePagination(page, perPage)
	offset := (page - 1) * perPage

	transfers, total, err := uc.transferRepo.List(ctx, familyID, filter, perPage, offset)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	return &TransferPage{
		Transfers:  transfers,
		Page:       page,
		PerPage:    perPage,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}

// ConfirmTransfer transitions a pending transfer to confirmed. The
// repository guard makes the transition race-safe: a concurrent caller
// observing a non-pending status fails with ErrTransferNotPending.
func (uc *TransferUseCase) ConfirmTransfer(ctx context.Context, familyID, id string) (*domain.Transfer, error) {
	transfer, err := uc.transferRepo.GetByID(ctx, familyID, id)
	if err != nil {
		return nil, err
	}

	if err := transfer.Confirm(); err != nil {
		return nil, err
	}

	err = uc.transition(ctx, transfer.ID, domain.TransferStatusPending, domain.TransferStatusConfirmed)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransferConfirmed()
	}

	return transfer, nil
}

// RejectTransfer transitions a pending transfer to rejected. Both legs
// revert to stand-alone transactions; neither is deleted.
func (uc *TransferUseCase) RejectTransfer(ctx context.Context, familyID, id string) (*domain.Transfer, error) {
	transfer, err := uc.transferRepo.GetByID(ctx, familyID, id)
	if err != nil {
		return nil, err
	}

	if err := transfer.Reject(); err != nil {
		return nil, err
	}

	err = uc.transition(ctx, transfer.ID, domain.TransferStatusPending, domain.TransferStatusRejected)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransferRejected()
	}

	return transfer, nil
}

func (uc *TransferUseCase) transition(ctx context.Context, id string, from, to domain.TransferStatus) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.transferRepo.UpdateStatus(ctx, tx, id, from, to, time.Now().UTC()); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// UpdateTransferCategory sets the category on the outflow leg. Only
// confirmed, categorizable transfers accept one.
func (uc *TransferUseCase) UpdateTransferCategory(ctx context.Context, familyID, id string, categoryID *string) (*domain.Transfer, error) {
	transfer, err := uc.transferRepo.GetByID(ctx, familyID, id)
	if err != nil {
		return nil, err
	}

	if transfer.Status != domain.TransferStatusConfirmed {
		return nil, domain.ErrTransferNotConfirmed
	}

	if !transfer.Categorizable() {
		return nil, domain.ErrNotCategorizable
	}

	if categoryID != nil {
		if _, err := uc.categoryRepo.GetByID(ctx, familyID, *categoryID); err != nil {
			return nil, err
		}
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.transactionRepo.SetCategory(ctx, tx, transfer.OutflowTransactionID, categoryID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	transfer.Outflow.CategoryID = categoryID

	return transfer, nil
}

// DeleteTransfer removes the transfer row and both legs together.
// Deletion cascades: the legs exist only to describe the transfer, so
// they go with it.
func (uc *TransferUseCase) DeleteTransfer(ctx context.Context, familyID, id string) error {
	transfer, err := uc.transferRepo.GetByID(ctx, familyID, id)
	if err != nil {
		return err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.transferRepo.Delete(ctx, tx, transfer.ID); err != nil {
		return err
	}

	if err := uc.transactionRepo.Delete(ctx, tx, transfer.OutflowTransactionID); err != nil {
		return err
	}

	if err := uc.transactionRepo.Delete(ctx, tx, transfer.InflowTransactionID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.TransferDeleted()
	}

	return nil
}

func (uc *TransferUseCase) retry(ctx context.Context, op func() error) error {
	if uc.retrier == nil {
		return op()
	}

	return uc.retrier.Retry(ctx, op)
}
