package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ledgerly/ledgerly/internal/domain"
)

const categoryCacheTTL = 5 * time.Minute

// CategoryUseCase handles category CRUD. Listings are cached per
// family; any write invalidates the family's cache entry.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
	cache        Cache
	idGen        IDGenerator
}

// NewCategoryUseCase creates a new CategoryUseCase. Cache may be nil.
func NewCategoryUseCase(categoryRepo CategoryRepository, cache Cache, idGen IDGenerator) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		cache:        cache,
		idGen:        idGen,
	}
}

// CategoryInput represents input for creating or updating a category.
type CategoryInput struct {
	Name           string
	Color          string
	Classification domain.CategoryClassification
	ParentID       *string
}

func (in CategoryInput) validate() error {
	ve := domain.NewValidationError()

	if in.Name == "" {
		ve.Add("name", "cannot be blank")
	}

	if in.Classification != domain.ClassificationIncome && in.Classification != domain.ClassificationExpense {
		ve.Add("classification", "must be income or expense")
	}

	if ve.HasErrors() {
		return ve
	}

	return nil
}

// CreateCategory creates a category for the family.
func (uc *CategoryUseCase) CreateCategory(ctx context.Context, familyID string, input CategoryInput) (*domain.Category, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		parent, err := uc.categoryRepo.GetByID(ctx, familyID, *input.ParentID)
		if err != nil {
			return nil, err
		}

		// One level of nesting only.
		if parent.ParentID != nil {
			ve := domain.NewValidationError()
			ve.Add("parent_id", "subcategories cannot have subcategories")

			return nil, ve
		}
	}

	now := time.Now().UTC()
	category := &domain.Category{
		ID:             uc.idGen.Generate(),
		FamilyID:       familyID,
		Name:           input.Name,
		Color:          input.Color,
		Classification: input.Classification,
		ParentID:       input.ParentID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, familyID)

	return category, nil
}

// GetCategory retrieves a family-owned category.
func (uc *CategoryUseCase) GetCategory(ctx context.Context, familyID, id string) (*domain.Category, error) {
	return uc.categoryRepo.GetByID(ctx, familyID, id)
}

// ListCategories lists categories alphabetically, optionally filtered
// by a search term and classification. Unfiltered first pages come
// from the cache when available.
func (uc *CategoryUseCase) ListCategories(ctx context.Context, familyID, search string, classification *domain.CategoryClassification, page, perPage int) ([]*domain.Category, error) {
	page, perPage = domain.ValidatePagination(page, perPage)

	cacheable := uc.cache != nil && search == "" && classification == nil && page == 1 && perPage == domain.DefaultPerPage
	key := categoryCacheKey(familyID)

	if cacheable {
		if raw, err := uc.cache.Get(ctx, key); err == nil && raw != nil {
			var cached []*domain.Category
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	categories, err := uc.categoryRepo.List(ctx, familyID, search, classification, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if raw, err := json.Marshal(categories); err == nil {
			_ = uc.cache.Set(ctx, key, raw, categoryCacheTTL)
		}
	}

	return categories, nil
}

// UpdateCategory updates a category's attributes.
func (uc *CategoryUseCase) UpdateCategory(ctx context.Context, familyID, id string, input CategoryInput) (*domain.Category, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	category, err := uc.categoryRepo.GetByID(ctx, familyID, id)
	if err != nil {
		return nil, err
	}

	category.Name = input.Name
	category.Color = input.Color
	category.Classification = input.Classification
	category.ParentID = input.ParentID
	category.UpdatedAt = time.Now().UTC()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, familyID)

	return category, nil
}

// DeleteCategory removes a category. Transactions referencing it fall
// back to uncategorized via the schema's ON DELETE SET NULL.
func (uc *CategoryUseCase) DeleteCategory(ctx context.Context, familyID, id string) error {
	if _, err := uc.categoryRepo.GetByID(ctx, familyID, id); err != nil {
		return err
	}

	if err := uc.categoryRepo.Delete(ctx, familyID, id); err != nil {
		return err
	}

	uc.invalidate(ctx, familyID)

	return nil
}

func (uc *CategoryUseCase) invalidate(ctx context.Context, familyID string) {
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, categoryCacheKey(familyID))
	}
}

func categoryCacheKey(familyID string) string {
	return fmt.Sprintf("categories:%s", familyID)
}
