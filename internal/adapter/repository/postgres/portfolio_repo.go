package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finfolio/internal/domain"
)

// PortfolioRepository implements portfolio persistence
type PortfolioRepository struct {
	pool *pgxpool.Pool
}

// NewPortfolioRepository creates a new portfolio repository
func NewPortfolioRepository(pool *pgxpool.Pool) *PortfolioRepository {
	return &PortfolioRepository{pool: pool}
}

// Create inserts a new portfolio
func (r *PortfolioRepository) Create(ctx context.Context, portfolio *domain.Portfolio) error {
	query := `
		INSERT INTO portfolios (id, user_id, name, base_currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		portfolio.ID,
		portfolio.UserID,
		portfolio.Name,
		portfolio.BaseCurrency,
		portfolio.CreatedAt,
		portfolio.UpdatedAt,
	)

	return err
}

// GetByID retrieves a portfolio by ID
func (r *PortfolioRepository) GetByID(ctx context.Context, id string) (*domain.Portfolio, error) {
	query := `
		SELECT id, user_id, name, base_currency, created_at, updated_at
		FROM portfolios
		WHERE id = $1
	`

	var portfolio domain.Portfolio
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&portfolio.ID,
		&portfolio.UserID,
		&portfolio.Name,
		&portfolio.BaseCurrency,
		&portfolio.CreatedAt,
		&portfolio.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPortfolioNotFound
	}
	if err != nil {
		return nil, err
	}

	return &portfolio, nil
}

// ListByUser lists a user's portfolios in creation order
func (r *PortfolioRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Portfolio, error) {
	query := `
		SELECT id, user_id, name, base_currency, created_at, updated_at
		FROM portfolios
		WHERE user_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var portfolios []*domain.Portfolio
	for rows.Next() {
		var portfolio domain.Portfolio
		err := rows.Scan(
			&portfolio.ID,
			&portfolio.UserID,
			&portfolio.Name,
			&portfolio.BaseCurrency,
			&portfolio.CreatedAt,
			&portfolio.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		portfolios = append(portfolios, &portfolio)
	}

	return portfolios, rows.Err()
}
