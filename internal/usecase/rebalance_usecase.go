package usecase

import (
	"context"

	"github.com/iho/finfolio/internal/domain"
)

// RebalanceUseCase turns holdings and target allocations into transfer
// suggestions.
type RebalanceUseCase struct {
	portfolioRepo PortfolioRepository
	allocRepo     AllocationRepository
	txnRepo       TransactionRepository
	priceRepo     PriceRepository
}

// NewRebalanceUseCase creates a new RebalanceUseCase.
func NewRebalanceUseCase(portfolioRepo PortfolioRepository, allocRepo AllocationRepository, txnRepo TransactionRepository, priceRepo PriceRepository) *RebalanceUseCase {
	return &RebalanceUseCase{
		portfolioRepo: portfolioRepo,
		allocRepo:     allocRepo,
		txnRepo:       txnRepo,
		priceRepo:     priceRepo,
	}
}

// SuggestRebalanceInput represents input for a rebalance suggestion.
// BaseCurrency falls back to the portfolio's own base currency when empty.
type SuggestRebalanceInput struct {
	PortfolioID  string
	UserID       string
	BaseCurrency string
}

// SuggestRebalance loads the portfolio's allocations, replays the user's
// holdings, prices them and runs the planner. Missing data (no
// allocations, no priced holdings) degrades to an empty plan; only an
// unknown portfolio surfaces as an error.
func (uc *RebalanceUseCase) SuggestRebalance(ctx context.Context, input SuggestRebalanceInput) (*domain.RebalancePlan, error) {
	portfolio, err := uc.portfolioRepo.GetByID(ctx, input.PortfolioID)
	if err != nil {
		return nil, err
	}

	baseCurrency := input.BaseCurrency
	if baseCurrency == "" {
		baseCurrency = portfolio.BaseCurrency
	}
	if baseCurrency == "" {
		baseCurrency = DefaultBaseCurrency
	}

	allocs, err := uc.allocRepo.ListByPortfolio(ctx, input.PortfolioID)
	if err != nil {
		return nil, err
	}
	if len(allocs) == 0 {
		// An unconfigured portfolio simply has nothing to suggest.
		return domain.PlanRebalance(nil, nil, nil), nil
	}

	txs, err := uc.txnRepo.ListByUserAndKinds(ctx, input.UserID, holdingKinds)
	if err != nil {
		return nil, err
	}
	quantities := domain.AccumulateHoldings(txs)

	prices, err := uc.priceRepo.LatestPriceMap(ctx, baseCurrency)
	if err != nil {
		return nil, err
	}

	return domain.PlanRebalance(allocs, quantities, prices), nil
}
