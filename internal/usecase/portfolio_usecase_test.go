package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/finfolio/internal/domain"
	"github.com/iho/finfolio/internal/usecase"
	"github.com/iho/finfolio/internal/usecase/mocks"
)

func newPortfolioUseCase(portfolioRepo *mocks.MockPortfolioRepository, allocRepo *mocks.MockAllocationRepository) *usecase.PortfolioUseCase {
	return usecase.NewPortfolioUseCase(
		portfolioRepo,
		allocRepo,
		mocks.NewMockTransactionManager(),
		mocks.NewMockRetrier(),
		mocks.NewMockIDGenerator(),
	)
}

func TestPortfolioUseCase_CreatePortfolio(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreatePortfolioInput
		expectError bool
		wantCcy     string
	}{
		{
			name:    "explicit currency",
			input:   usecase.CreatePortfolioInput{UserID: "user-1", Name: "Main", BaseCurrency: "EUR"},
			wantCcy: "EUR",
		},
		{
			name:    "currency defaults to USD",
			input:   usecase.CreatePortfolioInput{UserID: "user-1", Name: "Main"},
			wantCcy: "USD",
		},
		{
			name:        "empty name rejected",
			input:       usecase.CreatePortfolioInput{UserID: "user-1", BaseCurrency: "USD"},
			expectError: true,
		},
		{
			name:        "unknown currency rejected",
			input:       usecase.CreatePortfolioInput{UserID: "user-1", Name: "Main", BaseCurrency: "XYZ"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newPortfolioUseCase(mocks.NewMockPortfolioRepository(), mocks.NewMockAllocationRepository())

			portfolio, err := uc.CreatePortfolio(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if portfolio.ID == "" {
				t.Error("expected generated ID")
			}
			if portfolio.BaseCurrency != tt.wantCcy {
				t.Errorf("base currency = %q, want %q", portfolio.BaseCurrency, tt.wantCcy)
			}
		})
	}
}

func TestPortfolioUseCase_SetAllocations_ReplacesExisting(t *testing.T) {
	ctx := context.Background()

	portfolioRepo := mocks.NewMockPortfolioRepository()
	if err := portfolioRepo.Create(ctx, &domain.Portfolio{ID: "pf-1", UserID: "user-1", Name: "Main"}); err != nil {
		t.Fatalf("seed portfolio: %v", err)
	}

	allocRepo := mocks.NewMockAllocationRepository()
	if err := allocRepo.CreateTx(ctx, &mocks.MockTransaction{}, &domain.Allocation{
		ID: "old", PortfolioID: "pf-1", AssetID: "eth", TargetWeight: decimal.NewFromInt(1),
	}); err != nil {
		t.Fatalf("seed allocation: %v", err)
	}

	uc := newPortfolioUseCase(portfolioRepo, allocRepo)

	allocs, err := uc.SetAllocations(ctx, "pf-1", []usecase.AllocationInput{
		{AssetID: "btc", TargetWeight: decimal.RequireFromString("0.7")},
		{AssetID: "usd", TargetWeight: decimal.RequireFromString("0.3")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(allocs) != 2 {
		t.Fatalf("expected 2 allocations, got %d", len(allocs))
	}

	stored, err := allocRepo.ListByPortfolio(ctx, "pf-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected old set replaced, got %d rows", len(stored))
	}
	for _, a := range stored {
		if a.AssetID == "eth" {
			t.Error("old allocation survived the replace")
		}
	}
}

func TestPortfolioUseCase_SetAllocations_InvalidWeight(t *testing.T) {
	ctx := context.Background()

	portfolioRepo := mocks.NewMockPortfolioRepository()
	if err := portfolioRepo.Create(ctx, &domain.Portfolio{ID: "pf-1", UserID: "user-1", Name: "Main"}); err != nil {
		t.Fatalf("seed portfolio: %v", err)
	}
	allocRepo := mocks.NewMockAllocationRepository()

	uc := newPortfolioUseCase(portfolioRepo, allocRepo)

	_, err := uc.SetAllocations(ctx, "pf-1", []usecase.AllocationInput{
		{AssetID: "btc", TargetWeight: decimal.RequireFromString("1.5")},
	})
	if !errors.Is(err, domain.ErrInvalidWeight) {
		t.Errorf("expected ErrInvalidWeight, got %v", err)
	}

	// Validation failure must happen before any row is touched.
	stored, _ := allocRepo.ListByPortfolio(ctx, "pf-1")
	if len(stored) != 0 {
		t.Errorf("expected no allocations written, got %d", len(stored))
	}
}

func TestPortfolioUseCase_SetAllocations_UnknownPortfolio(t *testing.T) {
	uc := newPortfolioUseCase(mocks.NewMockPortfolioRepository(), mocks.NewMockAllocationRepository())

	_, err := uc.SetAllocations(context.Background(), "missing", nil)
	if !errors.Is(err, domain.ErrPortfolioNotFound) {
		t.Errorf("expected ErrPortfolioNotFound, got %v", err)
	}
}

func TestPortfolioUseCase_SetAllocations_RollbackOnFailure(t *testing.T) {
	ctx := context.Background()

	portfolioRepo := mocks.NewMockPortfolioRepository()
	if err := portfolioRepo.Create(ctx, &domain.Portfolio{ID: "pf-1", UserID: "user-1", Name: "Main"}); err != nil {
		t.Fatalf("seed portfolio: %v", err)
	}

	allocRepo := mocks.NewMockAllocationRepository()
	allocRepo.CreateTxFunc = func(ctx context.Context, tx usecase.Transaction, allocation *domain.Allocation) error {
		return errors.New("insert failed")
	}

	rolledBack := false
	txMgr := mocks.NewMockTransactionManager()
	txMgr.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		return &mocks.MockTransaction{
			RollbackFunc: func(ctx context.Context) error {
				rolledBack = true
				return nil
			},
		}, nil
	}

	uc := usecase.NewPortfolioUseCase(portfolioRepo, allocRepo, txMgr, mocks.NewMockRetrier(), mocks.NewMockIDGenerator())

	_, err := uc.SetAllocations(ctx, "pf-1", []usecase.AllocationInput{
		{AssetID: "btc", TargetWeight: decimal.NewFromInt(1)},
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !rolledBack {
		t.Error("expected transaction rollback")
	}
}
