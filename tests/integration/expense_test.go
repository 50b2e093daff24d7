package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	adaptershttp "github.com/iho/finfolio/internal/adapter/http"
	"github.com/iho/finfolio/internal/adapter/http/dto"
	"github.com/iho/finfolio/internal/adapter/http/handler"
	"github.com/iho/finfolio/internal/adapter/repository/postgres"
	"github.com/iho/finfolio/internal/domain"
	"github.com/iho/finfolio/internal/usecase"
	"github.com/iho/finfolio/tests/testutil"
)

func newTestRouter(t *testing.T, testDB *testutil.TestDB) http.Handler {
	t.Helper()

	pool := testDB.Pool
	idGen := postgres.NewULIDGenerator()

	categoryRepo := postgres.NewCategoryRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	assetRepo := postgres.NewAssetRepository(pool)
	priceRepo := postgres.NewPriceRepository(pool)
	portfolioRepo := postgres.NewPortfolioRepository(pool)
	allocRepo := postgres.NewAllocationRepository(pool)

	categoryUC := usecase.NewCategoryUseCase(categoryRepo, idGen)
	txnUC := usecase.NewTransactionUseCase(txnRepo, categoryRepo, idGen)
	holdingsUC := usecase.NewHoldingsUseCase(txnRepo, accountRepo, assetRepo, priceRepo)
	portfolioUC := usecase.NewPortfolioUseCase(
		portfolioRepo, allocRepo,
		postgres.NewTxManager(pool),
		postgres.NewRetrier(zerolog.Nop()),
		idGen,
	)
	rebalanceUC := usecase.NewRebalanceUseCase(portfolioRepo, allocRepo, txnRepo, priceRepo)

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		UserHandler:        handler.NewUserHandler(nil, nil, nil),
		AccountHandler:     handler.NewAccountHandler(usecase.NewAccountUseCase(accountRepo, idGen)),
		AssetHandler:       handler.NewAssetHandler(usecase.NewAssetUseCase(assetRepo, idGen)),
		CategoryHandler:    handler.NewCategoryHandler(categoryUC),
		PriceHandler:       handler.NewPriceHandler(usecase.NewPriceUseCase(priceRepo, assetRepo, idGen), nil),
		TransactionHandler: handler.NewTransactionHandler(txnUC, nil),
		PortfolioHandler:   handler.NewPortfolioHandler(portfolioUC, rebalanceUC, nil),
		HoldingsHandler:    handler.NewHoldingsHandler(holdingsUC, nil),
		HealthHandler:      &handler.HealthHandler{},
		Logger:             zerolog.Nop(),
	})
}

func TestExpenseFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	user := testDB.CreateTestUser(ctx, "expense@example.com")
	usd := testDB.CreateTestAsset(ctx, "USD", domain.AssetFiat)

	router := newTestRouter(t, testDB)

	t.Run("record expense", func(t *testing.T) {
		body, _ := json.Marshal(dto.RecordExpenseRequest{
			AssetID:  usd.ID,
			Amount:   decimal.RequireFromString("12.50"),
			Merchant: "bakery",
		})

		r := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/expense", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set(handler.UserIDHeader, user.ID)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var resp dto.TransactionResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Kind != "expense" || resp.FromAmount == nil {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("expense appears in day listing", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil)
		r.Header.Set(handler.UserIDHeader, user.ID)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp []dto.TransactionResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(resp) != 1 {
			t.Fatalf("expected one expense, got %d", len(resp))
		}
	})

	t.Run("expense excluded from holdings", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/holdings", nil)
		r.Header.Set(handler.UserIDHeader, user.ID)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp []dto.HoldingResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(resp) != 0 {
			t.Fatalf("expected no holdings from expenses alone, got %+v", resp)
		}
	})
}
