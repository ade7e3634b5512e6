package usecase

import (
	"context"
	"time"

	"github.com/ledgerly/ledgerly/internal/domain"
)

// DefaultMatchWindow is how far apart the two legs of an inferred
// transfer may be dated.
const DefaultMatchWindow = 4 * 24 * time.Hour

// MatcherUseCase infers transfers from independently recorded
// transactions, e.g. the two sides of a movement imported from two
// bank syncs.
type MatcherUseCase struct {
	txManager       TransactionManager
	transactionRepo TransactionRepository
	transferRepo    TransferRepository
	idGen           IDGenerator
	window          time.Duration
	metrics         TransferMetrics
}

// NewMatcherUseCase creates a new MatcherUseCase. A non-positive
// window falls back to DefaultMatchWindow.
func NewMatcherUseCase(
	txManager TransactionManager,
	transactionRepo TransactionRepository,
	transferRepo TransferRepository,
	idGen IDGenerator,
	window time.Duration,
	metrics TransferMetrics,
) *MatcherUseCase {
	if window <= 0 {
		window = DefaultMatchWindow
	}

	return &MatcherUseCase{
		txManager:       txManager,
		transactionRepo: transactionRepo,
		transferRepo:    transferRepo,
		idGen:           idGen,
		window:          window,
		metrics:         metrics,
	}
}

// Window returns the configured date tolerance.
func (uc *MatcherUseCase) Window() time.Duration {
	return uc.window
}

// FindMatch returns the best counter-transaction for the given
// transaction, or nil when none qualifies. A candidate must have the
// opposite sign and equal absolute amount, sit on a different account
// in the same family, be dated within the window, and not already
// belong to an active transfer.
func (uc *MatcherUseCase) FindMatch(ctx context.Context, familyID, transactionID string) (*domain.Transaction, error) {
	txn, err := uc.transactionRepo.GetByID(ctx, familyID, transactionID)
	if err != nil {
		return nil, err
	}

	if txn.Linked() {
		return nil, domain.ErrTransactionAlreadyLinked
	}

	candidate, err := uc.transactionRepo.FindMatchCandidate(ctx, familyID, txn, uc.window)
	if err != nil {
		if err == domain.ErrTransactionNotFound {
			return nil, nil
		}

		return nil, err
	}

	return candidate, nil
}

// MatchTransaction finds a counterpart for the transaction and, when
// one exists, links the pair into a new pending transfer. Returns nil
// without error when nothing matches. A concurrent link of either leg
// surfaces as domain.ErrTransactionAlreadyLinked.
func (uc *MatcherUseCase) MatchTransaction(ctx context.Context, familyID, transactionID string) (*domain.Transfer, error) {
	txn, err := uc.transactionRepo.GetByID(ctx, familyID, transactionID)
	if err != nil {
		return nil, err
	}

	if txn.Linked() {
		return nil, domain.ErrTransactionAlreadyLinked
	}

	candidate, err := uc.transactionRepo.FindMatchCandidate(ctx, familyID, txn, uc.window)
	if err != nil {
		if err == domain.ErrTransactionNotFound {
			return nil, nil
		}

		return nil, err
	}

	outflow, inflow := txn, candidate
	if txn.Amount().IsPositive() {
		outflow, inflow = candidate, txn
	}

	now := time.Now().UTC()
	transfer := &domain.Transfer{
		ID:                   uc.idGen.Generate(),
		Status:               domain.TransferStatusPending,
		OutflowTransactionID: outflow.ID,
		InflowTransactionID:  inflow.ID,
		Outflow:              outflow,
		Inflow:               inflow,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := transfer.ValidateLegs(); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.transferRepo.Create(ctx, tx, transfer); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransferMatched()
	}

	return uc.transferRepo.GetByID(ctx, familyID, transfer.ID)
}
