package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/ledgerly/internal/domain"
	"github.com/ledgerly/ledgerly/internal/usecase"
	"github.com/ledgerly/ledgerly/internal/usecase/mocks"
)

const familyID = "fam-1"

type transferFixture struct {
	accountRepo     *mocks.MockAccountRepository
	transactionRepo *mocks.MockTransactionRepository
	transferRepo    *mocks.MockTransferRepository
	categoryRepo    *mocks.MockCategoryRepository
	uc              *usecase.TransferUseCase
}

func newTransferFixture() *transferFixture {
	f := &transferFixture{
		accountRepo:     mocks.NewMockAccountRepository(),
		transactionRepo: mocks.NewMockTransactionRepository(),
		transferRepo:    mocks.NewMockTransferRepository(),
		categoryRepo:    mocks.NewMockCategoryRepository(),
	}

	f.uc = usecase.NewTransferUseCase(
		mocks.NewMockTransactionManager(),
		mocks.NewMockRetrier(),
		f.accountRepo,
		f.transactionRepo,
		f.transferRepo,
		f.categoryRepo,
		mocks.NewMockIDGenerator(),
		nil,
	)

	return f
}

func (f *transferFixture) addAccount(id string, accountType domain.AccountType, status domain.AccountStatus) *domain.Account {
	account := &domain.Account{
		ID:       id,
		FamilyID: familyID,
		Name:     id,
		Currency: "USD",
		Type:     accountType,
		Status:   status,
	}
	f.accountRepo.Create(context.Background(), account)
	f.transactionRepo.SetAccounts(account)

	return account
}

func TestTransferUseCase_CreateTransfer(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("active accounts create a confirmed transfer", func(t *testing.T) {
		f := newTransferFixture()
		f.addAccount("checking", domain.AccountTypeDepository, domain.AccountStatusActive)
		f.addAccount("savings", domain.AccountTypeDepository, domain.AccountStatusActive)

		transfer, err := f.uc.CreateTransfer(context.Background(), familyID, usecase.CreateTransferInput{
			SourceAccountID:      "checking",
			DestinationAccountID: "savings",
			Date:                 date,
			Amount:               decimal.RequireFromString("100.00"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if transfer.Status != domain.TransferStatusConfirmed {
			t.Errorf("expected confirmed, got %s", transfer.Status)
		}
		if !transfer.Outflow.Amount().Equal(decimal.RequireFromString("-100.00")) {
			t.Errorf("expected outflow -100.00, got %s", transfer.Outflow.Amount())
		}
		if !transfer.Inflow.Amount().Equal(decimal.RequireFromString("100.00")) {
			t.Errorf("expected inflow 100.00, got %s", transfer.Inflow.Amount())
		}
		if transfer.SourceAccountID() != "checking" || transfer.DestinationAccountID() != "savings" {
			t.Errorf("legs landed on wrong accounts: %s -> %s", transfer.SourceAccountID(), transfer.DestinationAccountID())
		}
		if !transfer.Outflow.Amount().Abs().Equal(transfer.Inflow.Amount().Abs()) {
			t.Error("absolute leg amounts differ")
		}
	})

	t.Run("archived account forces pending", func(t *testing.T) {
		f := newTransferFixture()
		f.addAccount("checking", domain.AccountTypeDepository, domain.AccountStatusActive)
		f.addAccount("old-savings", domain.AccountTypeDepository, domain.AccountStatusArchived)

		transfer, err := f.uc.CreateTransfer(context.Background(), familyID, usecase.CreateTransferInput{
			SourceAccountID:      "checking",
			DestinationAccountID: "old-savings",
			Date:                 date,
			Amount:               decimal.RequireFromString("50.00"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if transfer.Status != domain.TransferStatusPending {
			t.Errorf("expected pending, got %s", transfer.Status)
		}
	})

	t.Run("same account fails validation with no writes", func(t *testing.T) {
		f := newTransferFixture()
		f.addAccount("checking", domain.AccountTypeDepository, domain.AccountStatusActive)

		var created int
		f.transactionRepo.CreateFunc = func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
			created++
			return nil
		}

		_, err := f.uc.CreateTransfer(context.Background(), familyID, usecase.CreateTransferInput{
			SourceAccountID:      "checking",
			DestinationAccountID: "checking",
			Date:                 date,
			Amount:               decimal.RequireFromString("100.00"),
		})

		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if created != 0 {
			t.Errorf("expected no transaction writes, got %d", created)
		}
	})

	t.Run("non-positive amount fails validation", func(t *testing.T) {
		f := newTransferFixture()
		f.addAccount("checking", domain.AccountTypeDepository, domain.AccountStatusActive)
		f.addAccount("savings", domain.AccountTypeDepository, domain.AccountStatusActive)

		for _, amount := range []string{"0", "-10.00"} {
			_, err := f.uc.CreateTransfer(context.Background(), familyID, usecase.CreateTransferInput{
				SourceAccountID:      "checking",
				DestinationAccountID: "savings",
				Date:                 date,
				Amount:               decimal.RequireFromString(amount),
			})

			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("amount %s: expected ValidationError, got %v", amount, err)
			}
		}
	})

	t.Run("account outside family is not found", func(t *testing.T) {
		f := newTransferFixture()
		f.addAccount("checking", domain.AccountTypeDepository, domain.AccountStatusActive)
		f.accountRepo.Create(context.Background(), &domain.Account{
			ID: "other", FamilyID: "fam-2", Currency: "USD",
			Type: domain.AccountTypeDepository, Status: domain.AccountStatusActive,
		})

		_, err := f.uc.CreateTransfer(context.Background(), familyID, usecase.CreateTransferInput{
			SourceAccountID:      "checking",
			DestinationAccountID: "other",
			Date:                 date,
			Amount:               decimal.RequireFromString("100.00"),
		})
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("currency mismatch is rejected", func(t *testing.T) {
		f := newTransferFixture()
		f.addAccount("checking", domain.AccountTypeDepository, domain.AccountStatusActive)
		eur := f.addAccount("eur-savings", domain.AccountTypeDepository, domain.AccountStatusActive)
		eur.Currency = "EUR"

		_, err := f.uc.CreateTransfer(context.Background(), familyID, usecase.CreateTransferInput{
			SourceAccountID:      "checking",
			DestinationAccountID: "eur-savings",
			Date:                 date,
			Amount:               decimal.RequireFromString("100.00"),
		})
		if !errors.Is(err, domain.ErrCurrencyMismatch) {
			t.Errorf("expected ErrCurrencyMismatch, got %v", err)
		}
	})

	t.Run("persistence failure surfaces and nothing is kept", func(t *testing.T) {
		f := newTransferFixture()
		f.addAccount("checking", domain.AccountTypeDepository, domain.AccountStatusActive)
		f.addAccount("savings", domain.AccountTypeDepository, domain.AccountStatusActive)

		boom := errors.New("insert failed")
		f.transferRepo.CreateFunc = func(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
			return boom
		}

		_, err := f.uc.CreateTransfer(context.Background(), familyID, usecase.CreateTransferInput{
			SourceAccountID:      "checking",
			DestinationAccountID: "savings",
			Date:                 date,
			Amount:               decimal.RequireFromString("100.00"),
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected insert failure, got %v", err)
		}
	})
}

func seedTransfer(f *transferFixture, status domain.TransferStatus) *domain.Transfer {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	source := f.addAccount("checking", domain.AccountTypeDepository, domain.AccountStatusActive)
	dest := f.addAccount("savings", domain.AccountTypeDepository, domain.AccountStatusActive)

	outflow := &domain.Transaction{
		ID:    "txn-out",
		Entry: &domain.Entry{ID: "entry-out", AccountID: source.ID, Date: date, Amount: decimal.RequireFromString("-100.00")},
	}
	inflow := &domain.Transaction{
		ID:    "txn-in",
		Entry: &domain.Entry{ID: "entry-in", AccountID: dest.ID, Date: date, Amount: decimal.RequireFromString("100.00")},
	}

	transfer := &domain.Transfer{
		ID:                   "tr-1",
		Status:               status,
		OutflowTransactionID: outflow.ID,
		InflowTransactionID:  inflow.ID,
		Outflow:              outflow,
		Inflow:               inflow,
		SourceAccount:        source,
		DestinationAccount:   dest,
		CreatedAt:            date,
	}

	f.transactionRepo.Create(context.Background(), nil, outflow)
	f.transactionRepo.Create(context.Background(), nil, inflow)
	f.transferRepo.Create(context.Background(), nil, transfer)

	return transfer
}

func TestTransferUseCase_ConfirmTransfer(t *testing.T) {
	t.Run("pending confirms", func(t *testing.T) {
		f := newTransferFixture()
		seedTransfer(f, domain.TransferStatusPending)

		transfer, err := f.uc.ConfirmTransfer(context.Background(), familyID, "tr-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if transfer.Status != domain.TransferStatusConfirmed {
			t.Errorf("expected confirmed, got %s", transfer.Status)
		}
	})

	t.Run("rejected transfer cannot confirm", func(t *testing.T) {
		f := newTransferFixture()
		seedTransfer(f, domain.TransferStatusRejected)

		_, err := f.uc.ConfirmTransfer(context.Background(), familyID, "tr-1")
		if !errors.Is(err, domain.ErrTransferNotPending) {
			t.Errorf("expected ErrTransferNotPending, got %v", err)
		}

		stored, _ := f.transferRepo.GetByID(context.Background(), familyID, "tr-1")
		if stored.Status != domain.TransferStatusRejected {
			t.Errorf("status changed to %s", stored.Status)
		}
	})

	t.Run("concurrent confirm loses cleanly", func(t *testing.T) {
		f := newTransferFixture()
		seedTransfer(f, domain.TransferStatusPending)

		// Simulate a concurrent writer that confirmed between the read
		// and the guarded update.
		f.transferRepo.UpdateStatusFunc = func(ctx context.Context, tx usecase.Transaction, id string, from, to domain.TransferStatus, updatedAt time.Time) error {
			return domain.ErrTransferNotPending
		}

		_, err := f.uc.ConfirmTransfer(context.Background(), familyID, "tr-1")
		if !errors.Is(err, domain.ErrTransferNotPending) {
			t.Errorf("expected ErrTransferNotPending, got %v", err)
		}
	})

	t.Run("unknown transfer is not found", func(t *testing.T) {
		f := newTransferFixture()

		_, err := f.uc.ConfirmTransfer(context.Background(), familyID, "missing")
		if !errors.Is(err, domain.ErrTransferNotFound) {
			t.Errorf("expected ErrTransferNotFound, got %v", err)
		}
	})
}

func TestTransferUseCase_RejectTransfer(t *testing.T) {
	t.Run("pending rejects", func(t *testing.T) {
		f := newTransferFixture()
		seedTransfer(f, domain.TransferStatusPending)

		transfer, err := f.uc.RejectTransfer(context.Background(), familyID, "tr-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if transfer.Status != domain.TransferStatusRejected {
			t.Errorf("expected rejected, got %s", transfer.Status)
		}
	})

	t.Run("second reject fails without undoing the first", func(t *testing.T) {
		f := newTransferFixture()
		seedTransfer(f, domain.TransferStatusPending)

		if _, err := f.uc.RejectTransfer(context.Background(), familyID, "tr-1"); err != nil {
			t.Fatalf("first reject failed: %v", err)
		}

		_, err := f.uc.RejectTransfer(context.Background(), familyID, "tr-1")
		if !errors.Is(err, domain.ErrTransferNotPending) {
			t.Errorf("expected ErrTransferNotPending, got %v", err)
		}

		stored, _ := f.transferRepo.GetByID(context.Background(), familyID, "tr-1")
		if stored.Status != domain.TransferStatusRejected {
			t.Errorf("expected rejected, got %s", stored.Status)
		}
	})

	t.Run("confirmed transfer cannot reject", func(t *testing.T) {
		f := newTransferFixture()
		seedTransfer(f, domain.TransferStatusConfirmed)

		_, err := f.uc.RejectTransfer(context.Background(), familyID, "tr-1")
		if !errors.Is(err, domain.ErrTransferNotPending) {
			t.Errorf("expected ErrTransferNotPending, got %v", err)
		}
	})
}

func TestTransferUseCase_UpdateTransferCategory(t *testing.T) {
	categoryID := "cat-1"

	t.Run("confirmed categorizable transfer accepts a category", func(t *testing.T) {
		f := newTransferFixture()
		seedTransfer(f, domain.TransferStatusConfirmed)
		f.categoryRepo.Create(context.Background(), &domain.Category{
			ID: categoryID, FamilyID: familyID, Name: "Savings",
			Classification: domain.ClassificationExpense,
		})

		transfer, err := f.uc.UpdateTransferCategory(context.Background(), familyID, "tr-1", &categoryID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if transfer.Outflow.CategoryID == nil || *transfer.Outflow.CategoryID != categoryID {
			t.Error("category not applied to outflow leg")
		}
		if transfer.Inflow.CategoryID != nil {
			t.Error("category leaked onto inflow leg")
		}
	})

	t.Run("pending transfer rejects category update", func(t *testing.T) {
		f := newTransferFixture()
		seedTransfer(f, domain.TransferStatusPending)

		_, err := f.uc.UpdateTransferCategory(context.Background(), familyID, "tr-1", &categoryID)
		if !errors.Is(err, domain.ErrTransferNotConfirmed) {
			t.Errorf("expected ErrTransferNotConfirmed, got %v", err)
		}
	})

	t.Run("transfer-only legs are not categorizable", func(t *testing.T) {
		f := newTransferFixture()
		transfer := seedTransfer(f, domain.TransferStatusConfirmed)
		transfer.SourceAccount.Type = domain.AccountTypeInvestment
		transfer.DestinationAccount.Type = domain.AccountTypeCrypto

		_, err := f.uc.UpdateTransferCategory(context.Background(), familyID, "tr-1", &categoryID)
		if !errors.Is(err, domain.ErrNotCategorizable) {
			t.Errorf("expected ErrNotCategorizable, got %v", err)
		}
	})

	t.Run("unknown category is not found", func(t *testing.T) {
		f := newTransferFixture()
		seedTransfer(f, domain.TransferStatusConfirmed)

		missing := "missing"
		_, err := f.uc.UpdateTransferCategory(context.Background(), familyID, "tr-1", &missing)
		if !errors.Is(err, domain.ErrCategoryNotFound) {
			t.Errorf("expected ErrCategoryNotFound, got %v", err)
		}
	})
}

func TestTransferUseCase_DeleteTransfer(t *testing.T) {
	f := newTransferFixture()
	seedTransfer(f, domain.TransferStatusConfirmed)

	if err := f.uc.DeleteTransfer(context.Background(), familyID, "tr-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.uc.GetTransfer(context.Background(), familyID, "tr-1"); !errors.Is(err, domain.ErrTransferNotFound) {
		t.Errorf("expected transfer gone, got %v", err)
	}
	if _, err := f.transactionRepo.GetByID(context.Background(), familyID, "txn-out"); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("expected outflow leg gone, got %v", err)
	}
	if _, err := f.transactionRepo.GetByID(context.Background(), familyID, "txn-in"); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("expected inflow leg gone, got %v", err)
	}
}

func TestTransferUseCase_ListTransfers(t *testing.T) {
	f := newTransferFixture()
	seedTransfer(f, domain.TransferStatusPending)

	t.Run("invalid status filter fails validation", func(t *testing.T) {
		bogus := domain.TransferStatus("bogus")
		_, err := f.uc.ListTransfers(context.Background(), familyID, usecase.TransferFilter{Status: &bogus}, 1, 25)

		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("status filter narrows results", func(t *testing.T) {
		pending := domain.TransferStatusPending
		page, err := f.uc.ListTransfers(context.Background(), familyID, usecase.TransferFilter{Status: &pending}, 1, 25)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Transfers) != 1 || page.TotalCount != 1 {
			t.Errorf("expected one pending transfer, got %d (total %d)", len(page.Transfers), page.TotalCount)
		}

		confirmed := domain.TransferStatusConfirmed
		page, err = f.uc.ListTransfers(context.Background(), familyID, usecase.TransferFilter{Status: &confirmed}, 1, 25)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Transfers) != 0 {
			t.Errorf("expected no confirmed transfers, got %d", len(page.Transfers))
		}
	})

	t.Run("pagination is normalized", func(t *testing.T) {
		page, err := f.uc.ListTransfers(context.Background(), familyID, usecase.TransferFilter{}, 0, 9999)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Page != 1 || page.PerPage != domain.DefaultPerPage {
			t.Errorf("expected normalized pagination, got page=%d per_page=%d", page.Page, page.PerPage)
		}
	})
}
