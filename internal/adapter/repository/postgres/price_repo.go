package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/finfolio/internal/domain"
)

// PriceRepository implements persistence for the append-only price log.
type PriceRepository struct {
	pool *pgxpool.Pool
}

// NewPriceRepository creates a new price repository
func NewPriceRepository(pool *pgxpool.Pool) *PriceRepository {
	return &PriceRepository{pool: pool}
}

// Create appends a price observation
func (r *PriceRepository) Create(ctx context.Context, price *domain.PricePoint) error {
	query := `
		INSERT INTO prices (id, asset_id, base_currency, price, ts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		price.ID,
		price.AssetID,
		price.BaseCurrency,
		price.Price,
		price.Timestamp,
		price.CreatedAt,
	)

	return err
}

// LatestPriceMap returns the newest price per asset in baseCurrency.
// Assets with no observation in that currency have no entry.
func (r *PriceRepository) LatestPriceMap(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT DISTINCT ON (asset_id) asset_id, price
		FROM prices
		WHERE base_currency = $1
		ORDER BY asset_id, ts DESC, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, baseCurrency)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prices := make(map[string]decimal.Decimal)
	for rows.Next() {
		var assetID string
		var price decimal.Decimal
		if err := rows.Scan(&assetID, &price); err != nil {
			return nil, err
		}
		prices[assetID] = price
	}

	return prices, rows.Err()
}

// LatestPrices returns the newest full observation per asset in
// baseCurrency.
func (r *PriceRepository) LatestPrices(ctx context.Context, baseCurrency string) ([]*domain.PricePoint, error) {
	query := `
		SELECT DISTINCT ON (asset_id) id, asset_id, base_currency, price, ts, created_at
		FROM prices
		WHERE base_currency = $1
		ORDER BY asset_id, ts DESC, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, baseCurrency)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPrices(rows)
}

func scanPrices(rows pgx.Rows) ([]*domain.PricePoint, error) {
	var prices []*domain.PricePoint
	for rows.Next() {
		var price domain.PricePoint
		err := rows.Scan(
			&price.ID,
			&price.AssetID,
			&price.BaseCurrency,
			&price.Price,
			&price.Timestamp,
			&price.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		prices = append(prices, &price)
	}

	return prices, rows.Err()
}
