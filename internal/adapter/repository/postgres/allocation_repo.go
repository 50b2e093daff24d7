package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/finfolio/internal/domain"
	"github.com/iho/finfolio/internal/usecase"
)

// AllocationRepository implements allocation persistence. Writes run
// inside a caller-provided transaction so a replace-all is atomic.
type AllocationRepository struct {
	pool *pgxpool.Pool
}

// NewAllocationRepository creates a new allocation repository
func NewAllocationRepository(pool *pgxpool.Pool) *AllocationRepository {
	return &AllocationRepository{pool: pool}
}

// ListByPortfolio lists a portfolio's allocations in creation order
func (r *AllocationRepository) ListByPortfolio(ctx context.Context, portfolioID string) ([]*domain.Allocation, error) {
	query := `
		SELECT id, portfolio_id, asset_id, target_weight, min_weight, max_weight, drift_threshold, created_at
		FROM allocations
		WHERE portfolio_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, portfolioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []*domain.Allocation
	for rows.Next() {
		var alloc domain.Allocation
		var minWeight, maxWeight, driftThreshold decimal.NullDecimal
		err := rows.Scan(
			&alloc.ID,
			&alloc.PortfolioID,
			&alloc.AssetID,
			&alloc.TargetWeight,
			&minWeight,
			&maxWeight,
			&driftThreshold,
			&alloc.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if minWeight.Valid {
			alloc.MinWeight = &minWeight.Decimal
		}
		if maxWeight.Valid {
			alloc.MaxWeight = &maxWeight.Decimal
		}
		if driftThreshold.Valid {
			alloc.DriftThreshold = &driftThreshold.Decimal
		}
		allocations = append(allocations, &alloc)
	}

	return allocations, rows.Err()
}

// CreateTx inserts an allocation within the given transaction
func (r *AllocationRepository) CreateTx(ctx context.Context, tx usecase.Transaction, allocation *domain.Allocation) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO allocations (id, portfolio_id, asset_id, target_weight, min_weight, max_weight, drift_threshold, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := pgxTx.Exec(ctx, query,
		allocation.ID,
		allocation.PortfolioID,
		allocation.AssetID,
		allocation.TargetWeight,
		nullDecimal(allocation.MinWeight),
		nullDecimal(allocation.MaxWeight),
		nullDecimal(allocation.DriftThreshold),
		allocation.CreatedAt,
	)

	return err
}

// DeleteByPortfolioTx removes all allocations of a portfolio within the
// given transaction
func (r *AllocationRepository) DeleteByPortfolioTx(ctx context.Context, tx usecase.Transaction, portfolioID string) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `DELETE FROM allocations WHERE portfolio_id = $1`, portfolioID)

	return err
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}

	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
