package usecase

import (
	"context"
	"time"

	"github.com/ledgerly/ledgerly/internal/domain"
)

// TagUseCase handles tag CRUD.
type TagUseCase struct {
	tagRepo TagRepository
	idGen   IDGenerator
}

// NewTagUseCase creates a new TagUseCase.
func NewTagUseCase(tagRepo TagRepository, idGen IDGenerator) *TagUseCase {
	return &TagUseCase{tagRepo: tagRepo, idGen: idGen}
}

// CreateTag creates a tag for the family.
func (uc *TagUseCase) CreateTag(ctx context.Context, familyID, name, color string) (*domain.Tag, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tag := &domain.Tag{
		ID:        uc.idGen.Generate(),
		FamilyID:  familyID,
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}

	return tag, nil
}

// GetTag retrieves a family-owned tag.
func (uc *TagUseCase) GetTag(ctx context.Context, familyID, id string) (*domain.Tag, error) {
	return uc.tagRepo.GetByID(ctx, familyID, id)
}

// ListTags lists a family's tags alphabetically.
func (uc *TagUseCase) ListTags(ctx context.Context, familyID string, page, perPage int) ([]*domain.Tag, error) {
	page, perPage = domain.ValidatePagination(page, perPage)

	return uc.tagRepo.List(ctx, familyID, perPage, (page-1)*perPage)
}

// UpdateTag updates a tag's attributes.
func (uc *TagUseCase) UpdateTag(ctx context.Context, familyID, id, name, color string) (*domain.Tag, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	tag, err := uc.tagRepo.GetByID(ctx, familyID, id)
	if err != nil {
		return nil, err
	}

	tag.Name = name
	tag.Color = color
	tag.UpdatedAt = time.Now().UTC()

	if err := uc.tagRepo.Update(ctx, tag); err != nil {
		return nil, err
	}

	return tag, nil
}

// DeleteTag removes a tag.
func (uc *TagUseCase) DeleteTag(ctx context.Context, familyID, id string) error {
	if _, err := uc.tagRepo.GetByID(ctx, familyID, id); err != nil {
		return err
	}

	return uc.tagRepo.Delete(ctx, familyID, id)
}
