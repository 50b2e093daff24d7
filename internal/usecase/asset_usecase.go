package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/finfolio/internal/domain"
)

// AssetUseCase manages the asset registry.
type AssetUseCase struct {
	assetRepo AssetRepository
	idGen     IDGenerator
}

// NewAssetUseCase creates a new AssetUseCase.
func NewAssetUseCase(assetRepo AssetRepository, idGen IDGenerator) *AssetUseCase {
	return &AssetUseCase{
		assetRepo: assetRepo,
		idGen:     idGen,
	}
}

// CreateAssetInput represents input for registering an asset.
type CreateAssetInput struct {
	Symbol string
	Name   string
	Type   domain.AssetType
}

// CreateAsset registers a new asset. Symbols are unique.
func (uc *AssetUseCase) CreateAsset(ctx context.Context, input CreateAssetInput) (*domain.Asset, error) {
	if err := domain.ValidateName(input.Symbol); err != nil {
		return nil, err
	}
	if !input.Type.IsValid() {
		return nil, errors.New("invalid asset type")
	}

	existing, err := uc.assetRepo.GetBySymbol(ctx, input.Symbol)
	if err != nil && !errors.Is(err, domain.ErrAssetNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAssetExists
	}

	asset := &domain.Asset{
		ID:        uc.idGen.Generate(),
		Symbol:    input.Symbol,
		Name:      input.Name,
		Type:      input.Type,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}

	return asset, nil
}

// ListAssets lists all registered assets.
func (uc *AssetUseCase) ListAssets(ctx context.Context) ([]*domain.Asset, error) {
	return uc.assetRepo.List(ctx)
}
