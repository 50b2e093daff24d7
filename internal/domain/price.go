package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is one append-only price observation for an asset in a base
// currency. The latest price for an (asset, currency) pair is the entry
// with the maximum timestamp; there is no interpolation.
type PricePoint struct {
	Timestamp    time.Time
	CreatedAt    time.Time
	ID           string
	AssetID      string
	BaseCurrency string
	Price        decimal.Decimal
}

// Validate checks that the observation can enter the price log.
func (p *PricePoint) Validate() error {
	if p.AssetID == "" {
		return ErrAssetNotFound
	}
	if p.Price.Sign() <= 0 {
		return ErrInvalidPrice
	}

	return nil
}
