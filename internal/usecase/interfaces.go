package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finfolio/internal/domain"
)

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByUserAndName(ctx context.Context, userID, name string) (*domain.Account, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, id string) error
}

// AssetRepository defines data access for assets.
type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) error
	GetByID(ctx context.Context, id string) (*domain.Asset, error)
	GetBySymbol(ctx context.Context, symbol string) (*domain.Asset, error)
	List(ctx context.Context) ([]*domain.Asset, error)
}

// CategoryRepository defines data access for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
}

// TransactionRepository defines data access for the transaction log.
type TransactionRepository interface {
	Create(ctx context.Context, txn *domain.Transaction) error
	// ListByUserAndKinds returns the full (unordered) event log for the
	// user filtered to the given kinds.
	ListByUserAndKinds(ctx context.Context, userID string, kinds []domain.Kind) ([]*domain.Transaction, error)
	// ListExpensesByRange returns expense transactions within [from, to],
	// ordered by occurrence time. categoryID narrows the result when
	// non-empty.
	ListExpensesByRange(ctx context.Context, userID string, from, to time.Time, categoryID string) ([]*domain.Transaction, error)
	// SumExpenses sums expense source amounts within [from, to] for one
	// category.
	SumExpenses(ctx context.Context, userID, categoryID string, from, to time.Time) (decimal.Decimal, error)
}

// PriceRepository defines data access for the append-only price log.
type PriceRepository interface {
	Create(ctx context.Context, price *domain.PricePoint) error
	// LatestPriceMap returns the newest price per asset for the base
	// currency. Assets without an entry in that currency are absent.
	LatestPriceMap(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error)
	LatestPrices(ctx context.Context, baseCurrency string) ([]*domain.PricePoint, error)
}

// PortfolioRepository defines data access for portfolios.
type PortfolioRepository interface {
	Create(ctx context.Context, portfolio *domain.Portfolio) error
	GetByID(ctx context.Context, id string) (*domain.Portfolio, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Portfolio, error)
}

// AllocationRepository defines data access for target allocations.
type AllocationRepository interface {
	ListByPortfolio(ctx context.Context, portfolioID string) ([]*domain.Allocation, error)
	CreateTx(ctx context.Context, tx Transaction, allocation *domain.Allocation) error
	DeleteByPortfolioTx(ctx context.Context, tx Transaction, portfolioID string) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient database errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
