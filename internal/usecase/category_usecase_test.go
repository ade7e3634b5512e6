package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ledgerly/ledgerly/internal/domain"
	"github.com/ledgerly/ledgerly/internal/usecase"
	"github.com/ledgerly/ledgerly/internal/usecase/mocks"
)

func TestCategoryUseCase_CreateCategory(t *testing.T) {
	t.Run("creates a top-level category", func(t *testing.T) {
		repo := mocks.NewMockCategoryRepository()
		uc := usecase.NewCategoryUseCase(repo, nil, mocks.NewMockIDGenerator())

		category, err := uc.CreateCategory(context.Background(), familyID, usecase.CategoryInput{
			Name:           "Groceries",
			Classification: domain.ClassificationExpense,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if category.ID == "" || category.FamilyID != familyID {
			t.Errorf("bad category: %+v", category)
		}
	})

	t.Run("rejects invalid classification", func(t *testing.T) {
		repo := mocks.NewMockCategoryRepository()
		uc := usecase.NewCategoryUseCase(repo, nil, mocks.NewMockIDGenerator())

		_, err := uc.CreateCategory(context.Background(), familyID, usecase.CategoryInput{
			Name:           "Groceries",
			Classification: domain.CategoryClassification("other"),
		})

		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("rejects nesting below one level", func(t *testing.T) {
		repo := mocks.NewMockCategoryRepository()
		uc := usecase.NewCategoryUseCase(repo, nil, mocks.NewMockIDGenerator())

		parent, err := uc.CreateCategory(context.Background(), familyID, usecase.CategoryInput{
			Name:           "Food",
			Classification: domain.ClassificationExpense,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		child, err := uc.CreateCategory(context.Background(), familyID, usecase.CategoryInput{
			Name:           "Groceries",
			Classification: domain.ClassificationExpense,
			ParentID:       &parent.ID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = uc.CreateCategory(context.Background(), familyID, usecase.CategoryInput{
			Name:           "Produce",
			Classification: domain.ClassificationExpense,
			ParentID:       &child.ID,
		})

		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})
}

func TestCategoryUseCase_ListCategories_Cache(t *testing.T) {
	repo := mocks.NewMockCategoryRepository()
	cache := mocks.NewMockCache()
	uc := usecase.NewCategoryUseCase(repo, cache, mocks.NewMockIDGenerator())

	if _, err := uc.CreateCategory(context.Background(), familyID, usecase.CategoryInput{
		Name:           "Groceries",
		Classification: domain.ClassificationExpense,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var listCalls int
	repo.ListFunc = countingList(repo, &listCalls)

	// First unfiltered page misses the cache, second one hits it.
	if _, err := uc.ListCategories(context.Background(), familyID, "", nil, 1, domain.DefaultPerPage); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.ListCategories(context.Background(), familyID, "", nil, 1, domain.DefaultPerPage); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listCalls != 1 {
		t.Errorf("expected one repository hit, got %d", listCalls)
	}

	// A write invalidates, so the next list goes back to the repository.
	if _, err := uc.CreateCategory(context.Background(), familyID, usecase.CategoryInput{
		Name:           "Transport",
		Classification: domain.ClassificationExpense,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.ListCategories(context.Background(), familyID, "", nil, 1, domain.DefaultPerPage); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listCalls != 2 {
		t.Errorf("expected two repository hits after invalidation, got %d", listCalls)
	}

	// Filtered listings bypass the cache entirely.
	if _, err := uc.ListCategories(context.Background(), familyID, "gro", nil, 1, domain.DefaultPerPage); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listCalls != 3 {
		t.Errorf("expected filtered listing to hit the repository, got %d calls", listCalls)
	}
}

func countingList(repo *mocks.MockCategoryRepository, calls *int) func(ctx context.Context, famID, search string, classification *domain.CategoryClassification, limit, offset int) ([]*domain.Category, error) {
	return func(ctx context.Context, famID, search string, classification *domain.CategoryClassification, limit, offset int) ([]*domain.Category, error) {
		*calls++
		repo.ListFunc = nil
		defer func() { repo.ListFunc = countingList(repo, calls) }()
		return repo.List(ctx, famID, search, classification, limit, offset)
	}
}
