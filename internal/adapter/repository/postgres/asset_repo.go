package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finfolio/internal/domain"
)

// AssetRepository implements asset persistence
type AssetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(pool *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{pool: pool}
}

// Create inserts a new asset
func (r *AssetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	query := `
		INSERT INTO assets (id, symbol, name, type, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		asset.ID,
		asset.Symbol,
		asset.Name,
		asset.Type,
		asset.CreatedAt,
	)

	return err
}

// GetByID retrieves an asset by ID
func (r *AssetRepository) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	query := `
		SELECT id, symbol, name, type, created_at
		FROM assets
		WHERE id = $1
	`

	return r.scanAsset(r.pool.QueryRow(ctx, query, id))
}

// GetBySymbol retrieves an asset by its symbol
func (r *AssetRepository) GetBySymbol(ctx context.Context, symbol string) (*domain.Asset, error) {
	query := `
		SELECT id, symbol, name, type, created_at
		FROM assets
		WHERE symbol = $1
	`

	return r.scanAsset(r.pool.QueryRow(ctx, query, symbol))
}

// List lists all assets in registration order
func (r *AssetRepository) List(ctx context.Context) ([]*domain.Asset, error) {
	query := `
		SELECT id, symbol, name, type, created_at
		FROM assets
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []*domain.Asset
	for rows.Next() {
		asset, err := r.scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	return assets, rows.Err()
}

func (r *AssetRepository) scanAsset(row pgx.Row) (*domain.Asset, error) {
	var asset domain.Asset
	err := row.Scan(
		&asset.ID,
		&asset.Symbol,
		&asset.Name,
		&asset.Type,
		&asset.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAssetNotFound
	}
	if err != nil {
		return nil, err
	}

	return &asset, nil
}
