package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finfolio/internal/domain"
)

// PortfolioUseCase manages portfolios and their target allocations.
type PortfolioUseCase struct {
	portfolioRepo PortfolioRepository
	allocRepo     AllocationRepository
	txManager     TransactionManager
	retrier       Retrier
	idGen         IDGenerator
}

// NewPortfolioUseCase creates a new PortfolioUseCase.
func NewPortfolioUseCase(portfolioRepo PortfolioRepository, allocRepo AllocationRepository, txManager TransactionManager, retrier Retrier, idGen IDGenerator) *PortfolioUseCase {
	return &PortfolioUseCase{
		portfolioRepo: portfolioRepo,
		allocRepo:     allocRepo,
		txManager:     txManager,
		retrier:       retrier,
		idGen:         idGen,
	}
}

// CreatePortfolioInput represents input for creating a portfolio.
type CreatePortfolioInput struct {
	UserID       string
	Name         string
	BaseCurrency string
}

// CreatePortfolio creates a new portfolio.
func (uc *PortfolioUseCase) CreatePortfolio(ctx context.Context, input CreatePortfolioInput) (*domain.Portfolio, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	baseCurrency := input.BaseCurrency
	if baseCurrency == "" {
		baseCurrency = DefaultBaseCurrency
	}
	if err := domain.ValidateCurrency(baseCurrency); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	portfolio := &domain.Portfolio{
		ID:           uc.idGen.Generate(),
		UserID:       input.UserID,
		Name:         input.Name,
		BaseCurrency: baseCurrency,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.portfolioRepo.Create(ctx, portfolio); err != nil {
		return nil, err
	}

	return portfolio, nil
}

// GetPortfolio retrieves a portfolio by ID.
func (uc *PortfolioUseCase) GetPortfolio(ctx context.Context, id string) (*domain.Portfolio, error) {
	return uc.portfolioRepo.GetByID(ctx, id)
}

// ListPortfolios lists a user's portfolios.
func (uc *PortfolioUseCase) ListPortfolios(ctx context.Context, userID string) ([]*domain.Portfolio, error) {
	return uc.portfolioRepo.ListByUser(ctx, userID)
}

// AllocationInput is one target weight within a replace-all update.
type AllocationInput struct {
	MinWeight      *decimal.Decimal
	MaxWeight      *decimal.Decimal
	DriftThreshold *decimal.Decimal
	AssetID        string
	TargetWeight   decimal.Decimal
}

// SetAllocations replaces the portfolio's entire allocation set in one
// database transaction. Weights are validated to [0, 1]; the set is not
// required to sum to 1.
func (uc *PortfolioUseCase) SetAllocations(ctx context.Context, portfolioID string, inputs []AllocationInput) ([]*domain.Allocation, error) {
	if _, err := uc.portfolioRepo.GetByID(ctx, portfolioID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	allocs := make([]*domain.Allocation, 0, len(inputs))
	for _, input := range inputs {
		alloc := &domain.Allocation{
			ID:             uc.idGen.Generate(),
			PortfolioID:    portfolioID,
			AssetID:        input.AssetID,
			TargetWeight:   input.TargetWeight,
			MinWeight:      input.MinWeight,
			MaxWeight:      input.MaxWeight,
			DriftThreshold: input.DriftThreshold,
			CreatedAt:      now,
		}
		if err := alloc.Validate(); err != nil {
			return nil, err
		}
		allocs = append(allocs, alloc)
	}

	err := uc.retrier.Retry(ctx, func() error {
		return uc.replaceAllocations(ctx, portfolioID, allocs)
	})
	if err != nil {
		return nil, err
	}

	return allocs, nil
}

func (uc *PortfolioUseCase) replaceAllocations(ctx context.Context, portfolioID string, allocs []*domain.Allocation) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.allocRepo.DeleteByPortfolioTx(ctx, tx, portfolioID); err != nil {
		return err
	}
	for _, alloc := range allocs {
		if err := uc.allocRepo.CreateTx(ctx, tx, alloc); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
