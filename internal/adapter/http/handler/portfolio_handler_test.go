package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/finfolio/internal/adapter/http/dto"
	"github.com/iho/finfolio/internal/domain"
	"github.com/iho/finfolio/internal/usecase"
)

type portfolioServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreatePortfolioInput) (*domain.Portfolio, error)
	getFn    func(ctx context.Context, id string) (*domain.Portfolio, error)
	listFn   func(ctx context.Context, userID string) ([]*domain.Portfolio, error)
	setFn    func(ctx context.Context, portfolioID string, inputs []usecase.AllocationInput) ([]*domain.Allocation, error)
}

func (s *portfolioServiceStub) CreatePortfolio(ctx context.Context, input usecase.CreatePortfolioInput) (*domain.Portfolio, error) {
	return s.createFn(ctx, input)
}

func (s *portfolioServiceStub) GetPortfolio(ctx context.Context, id string) (*domain.Portfolio, error) {
	return s.getFn(ctx, id)
}

func (s *portfolioServiceStub) ListPortfolios(ctx context.Context, userID string) ([]*domain.Portfolio, error) {
	return s.listFn(ctx, userID)
}

func (s *portfolioServiceStub) SetAllocations(ctx context.Context, portfolioID string, inputs []usecase.AllocationInput) ([]*domain.Allocation, error) {
	return s.setFn(ctx, portfolioID, inputs)
}

type rebalanceServiceStub struct {
	suggestFn func(ctx context.Context, input usecase.SuggestRebalanceInput) (*domain.RebalancePlan, error)
}

func (s *rebalanceServiceStub) SuggestRebalance(ctx context.Context, input usecase.SuggestRebalanceInput) (*domain.RebalancePlan, error) {
	return s.suggestFn(ctx, input)
}

func chiRequest(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestPortfolioHandler_Create_Success(t *testing.T) {
	portfolio := &domain.Portfolio{
		ID:           "pf-1",
		UserID:       "user-1",
		Name:         "retirement",
		BaseCurrency: "USD",
	}

	var captured usecase.CreatePortfolioInput
	handler := NewPortfolioHandler(&portfolioServiceStub{
		createFn: func(ctx context.Context, input usecase.CreatePortfolioInput) (*domain.Portfolio, error) {
			captured = input
			return portfolio, nil
		},
	}, nil, nil)

	body, _ := json.Marshal(dto.CreatePortfolioRequest{Name: "retirement"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/portfolios", bytes.NewReader(body))
	req.Header.Set(UserIDHeader, "user-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.UserID != "user-1" || captured.Name != "retirement" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}
}

func TestPortfolioHandler_SetAllocations_Success(t *testing.T) {
	var capturedID string
	var capturedInputs []usecase.AllocationInput
	handler := NewPortfolioHandler(&portfolioServiceStub{
		setFn: func(ctx context.Context, portfolioID string, inputs []usecase.AllocationInput) ([]*domain.Allocation, error) {
			capturedID = portfolioID
			capturedInputs = inputs
			return []*domain.Allocation{
				{ID: "alloc-1", AssetID: "btc", TargetWeight: decimal.RequireFromString("0.6")},
				{ID: "alloc-2", AssetID: "usd", TargetWeight: decimal.RequireFromString("0.4")},
			}, nil
		},
	}, nil, nil)

	body, _ := json.Marshal(dto.SetAllocationsRequest{
		Allocations: []dto.AllocationItem{
			{AssetID: "btc", TargetWeight: decimal.RequireFromString("0.6")},
			{AssetID: "usd", TargetWeight: decimal.RequireFromString("0.4")},
		},
	})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/portfolios/pf-1/allocations", bytes.NewReader(body))
	req = chiRequest(req, "id", "pf-1")
	rec := httptest.NewRecorder()

	handler.SetAllocations(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if capturedID != "pf-1" || len(capturedInputs) != 2 {
		t.Fatalf("unexpected call: id=%s inputs=%+v", capturedID, capturedInputs)
	}
	if capturedInputs[0].AssetID != "btc" || !capturedInputs[0].TargetWeight.Equal(decimal.RequireFromString("0.6")) {
		t.Fatalf("unexpected first allocation: %+v", capturedInputs[0])
	}
}

func TestPortfolioHandler_SetAllocations_InvalidWeight(t *testing.T) {
	handler := NewPortfolioHandler(&portfolioServiceStub{
		setFn: func(ctx context.Context, portfolioID string, inputs []usecase.AllocationInput) ([]*domain.Allocation, error) {
			return nil, domain.ErrInvalidWeight
		},
	}, nil, nil)

	body, _ := json.Marshal(dto.SetAllocationsRequest{
		Allocations: []dto.AllocationItem{
			{AssetID: "btc", TargetWeight: decimal.NewFromInt(2)},
		},
	})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/portfolios/pf-1/allocations", bytes.NewReader(body))
	req = chiRequest(req, "id", "pf-1")
	rec := httptest.NewRecorder()

	handler.SetAllocations(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPortfolioHandler_Rebalance_Success(t *testing.T) {
	plan := &domain.RebalancePlan{
		TotalValue: decimal.NewFromInt(4800),
		CurrentWeights: map[string]decimal.Decimal{
			"btc": decimal.RequireFromString("0.1666666666666667"),
		},
		TargetWeights: map[string]decimal.Decimal{
			"btc": decimal.RequireFromString("0.6"),
			"usd": decimal.RequireFromString("0.4"),
		},
		Legs: []domain.RebalanceLeg{
			{FromAssetID: "usd", ToAssetID: "btc", QuantityFrom: decimal.NewFromInt(2080)},
		},
	}

	var captured usecase.SuggestRebalanceInput
	handler := NewPortfolioHandler(&portfolioServiceStub{}, &rebalanceServiceStub{
		suggestFn: func(ctx context.Context, input usecase.SuggestRebalanceInput) (*domain.RebalancePlan, error) {
			captured = input
			return plan, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/portfolios/pf-1/rebalance?base_currency=EUR", nil)
	req.Header.Set(UserIDHeader, "user-1")
	req = chiRequest(req, "id", "pf-1")
	rec := httptest.NewRecorder()

	handler.Rebalance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.PortfolioID != "pf-1" || captured.UserID != "user-1" || captured.BaseCurrency != "EUR" {
		t.Fatalf("unexpected input: %+v", captured)
	}

	var resp dto.RebalancePlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Legs) != 1 || resp.Legs[0].FromAssetID != "usd" {
		t.Fatalf("unexpected plan: %+v", resp)
	}
	if !resp.TotalValue.Equal(decimal.NewFromInt(4800)) {
		t.Fatalf("unexpected total value: %s", resp.TotalValue)
	}
}

func TestPortfolioHandler_Rebalance_UnknownPortfolio(t *testing.T) {
	handler := NewPortfolioHandler(&portfolioServiceStub{}, &rebalanceServiceStub{
		suggestFn: func(ctx context.Context, input usecase.SuggestRebalanceInput) (*domain.RebalancePlan, error) {
			return nil, domain.ErrPortfolioNotFound
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/portfolios/missing/rebalance", nil)
	req.Header.Set(UserIDHeader, "user-1")
	req = chiRequest(req, "id", "missing")
	rec := httptest.NewRecorder()

	handler.Rebalance(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
