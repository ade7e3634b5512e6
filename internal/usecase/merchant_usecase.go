package usecase

import (
	"context"
	"time"

	"github.com/ledgerly/ledgerly/internal/domain"
)

// MerchantUseCase handles merchant CRUD.
type MerchantUseCase struct {
	merchantRepo MerchantRepository
	idGen        IDGenerator
}

// NewMerchantUseCase creates a new MerchantUseCase.
func NewMerchantUseCase(merchantRepo MerchantRepository, idGen IDGenerator) *MerchantUseCase {
	return &MerchantUseCase{merchantRepo: merchantRepo, idGen: idGen}
}

// CreateMerchant creates a merchant for the family.
func (uc *MerchantUseCase) CreateMerchant(ctx context.Context, familyID, name, color string) (*domain.Merchant, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	merchant := &domain.Merchant{
		ID:        uc.idGen.Generate(),
		FamilyID:  familyID,
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.merchantRepo.Create(ctx, merchant); err != nil {
		return nil, err
	}

	return merchant, nil
}

// GetMerchant retrieves a family-owned merchant.
func (uc *MerchantUseCase) GetMerchant(ctx context.Context, familyID, id string) (*domain.Merchant, error) {
	return uc.merchantRepo.GetByID(ctx, familyID, id)
}

// ListMerchants lists a family's merchants alphabetically.
func (uc *MerchantUseCase) ListMerchants(ctx context.Context, familyID string, page, perPage int) ([]*domain.Merchant, error) {
	page, perPage = domain.ValidatePagination(page, perPage)

	return uc.merchantRepo.List(ctx, familyID, perPage, (page-1)*perPage)
}

// UpdateMerchant updates a merchant's attributes.
func (uc *MerchantUseCase) UpdateMerchant(ctx context.Context, familyID, id, name, color string) (*domain.Merchant, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	merchant, err := uc.merchantRepo.GetByID(ctx, familyID, id)
	if err != nil {
		return nil, err
	}

	merchant.Name = name
	merchant.Color = color
	merchant.UpdatedAt = time.Now().UTC()

	if err := uc.merchantRepo.Update(ctx, merchant); err != nil {
		return nil, err
	}

	return merchant, nil
}

// DeleteMerchant removes a merchant.
func (uc *MerchantUseCase) DeleteMerchant(ctx context.Context, familyID, id string) error {
	if _, err := uc.merchantRepo.GetByID(ctx, familyID, id); err != nil {
		return err
	}

	return uc.merchantRepo.Delete(ctx, familyID, id)
}
