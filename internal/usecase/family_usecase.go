package usecase

import (
	"context"
	"time"

	"github.com/ledgerly/ledgerly/internal/domain"
)

// FamilyUseCase handles family registration and lookup.
type FamilyUseCase struct {
	familyRepo FamilyRepository
	idGen      IDGenerator
}

// NewFamilyUseCase creates a new FamilyUseCase.
func NewFamilyUseCase(familyRepo FamilyRepository, idGen IDGenerator) *FamilyUseCase {
	return &FamilyUseCase{familyRepo: familyRepo, idGen: idGen}
}

// CreateFamily registers a new family scope.
func (uc *FamilyUseCase) CreateFamily(ctx context.Context, name, currency string) (*domain.Family, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	if err := domain.ValidateCurrency(currency); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	family := &domain.Family{
		ID:        uc.idGen.Generate(),
		Name:      name,
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.familyRepo.Create(ctx, family); err != nil {
		return nil, err
	}

	return family, nil
}

// GetFamily retrieves a family by ID.
func (uc *FamilyUseCase) GetFamily(ctx context.Context, id string) (*domain.Family, error) {
	return uc.familyRepo.GetByID(ctx, id)
}
