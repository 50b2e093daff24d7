package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finfolio/internal/domain"
)

// PriceUseCase appends to and reads the price log.
type PriceUseCase struct {
	priceRepo PriceRepository
	assetRepo AssetRepository
	idGen     IDGenerator
}

// NewPriceUseCase creates a new PriceUseCase.
func NewPriceUseCase(priceRepo PriceRepository, assetRepo AssetRepository, idGen IDGenerator) *PriceUseCase {
	return &PriceUseCase{
		priceRepo: priceRepo,
		assetRepo: assetRepo,
		idGen:     idGen,
	}
}

// SetPriceInput represents input for appending a price observation.
type SetPriceInput struct {
	Timestamp    *time.Time
	AssetID      string
	BaseCurrency string
	Price        decimal.Decimal
}

// SetPrice appends one observation to the price log. The referenced asset
// must exist and the price must be positive.
func (uc *PriceUseCase) SetPrice(ctx context.Context, input SetPriceInput) (*domain.PricePoint, error) {
	if _, err := uc.assetRepo.GetByID(ctx, input.AssetID); err != nil {
		return nil, err
	}

	baseCurrency := input.BaseCurrency
	if baseCurrency == "" {
		baseCurrency = DefaultBaseCurrency
	}

	ts := time.Now().UTC()
	if input.Timestamp != nil {
		ts = input.Timestamp.UTC()
	}

	price := &domain.PricePoint{
		ID:           uc.idGen.Generate(),
		AssetID:      input.AssetID,
		BaseCurrency: baseCurrency,
		Price:        input.Price,
		Timestamp:    ts,
		CreatedAt:    time.Now().UTC(),
	}
	if err := price.Validate(); err != nil {
		return nil, err
	}

	if err := uc.priceRepo.Create(ctx, price); err != nil {
		return nil, err
	}

	return price, nil
}

// LatestPrices returns the newest observation per asset in baseCurrency.
func (uc *PriceUseCase) LatestPrices(ctx context.Context, baseCurrency string) ([]*domain.PricePoint, error) {
	if baseCurrency == "" {
		baseCurrency = DefaultBaseCurrency
	}

	return uc.priceRepo.LatestPrices(ctx, baseCurrency)
}
