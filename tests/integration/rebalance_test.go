package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/finfolio/internal/adapter/http/dto"
	"github.com/iho/finfolio/internal/adapter/http/handler"
	"github.com/iho/finfolio/internal/domain"
	"github.com/iho/finfolio/tests/testutil"
)

func TestRebalanceFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	user := testDB.CreateTestUser(ctx, "rebalance@example.com")
	usd := testDB.CreateTestAsset(ctx, "USD", domain.AssetFiat)
	eur := testDB.CreateTestAsset(ctx, "EUR", domain.AssetFiat)
	btc := testDB.CreateTestAsset(ctx, "BTC", domain.AssetCrypto)

	router := newTestRouter(t, testDB)

	doJSON := func(method, path string, payload any) *httptest.ResponseRecorder {
		t.Helper()
		var body bytes.Buffer
		if payload != nil {
			if err := json.NewEncoder(&body).Encode(payload); err != nil {
				t.Fatalf("failed to encode payload: %v", err)
			}
		}
		r := httptest.NewRequest(method, path, &body)
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set(handler.UserIDHeader, user.ID)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		return w
	}

	// Only trades enter the holdings replay, so seed the USD position by
	// converting EUR, then buy 8 BTC for 800 USD. Net: 4000 USD, 8 BTC.
	w := doJSON(http.MethodPost, "/api/v1/transactions/trade", dto.RecordTradeRequest{
		FromAssetID: eur.ID,
		FromAmount:  decimal.NewFromInt(4400),
		ToAssetID:   usd.ID,
		ToAmount:    decimal.NewFromInt(4800),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("trade failed: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(http.MethodPost, "/api/v1/transactions/trade", dto.RecordTradeRequest{
		FromAssetID: usd.ID,
		FromAmount:  decimal.NewFromInt(800),
		ToAssetID:   btc.ID,
		ToAmount:    decimal.NewFromInt(8),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("trade failed: %d %s", w.Code, w.Body.String())
	}

	for assetID, price := range map[string]string{usd.ID: "1", btc.ID: "100"} {
		w = doJSON(http.MethodPost, "/api/v1/prices/", dto.SetPriceRequest{
			AssetID: assetID,
			Price:   decimal.RequireFromString(price),
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("set price failed: %d %s", w.Code, w.Body.String())
		}
	}

	w = doJSON(http.MethodPost, "/api/v1/portfolios/", dto.CreatePortfolioRequest{Name: "main"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create portfolio failed: %d %s", w.Code, w.Body.String())
	}
	var portfolio dto.PortfolioResponse
	if err := json.Unmarshal(w.Body.Bytes(), &portfolio); err != nil {
		t.Fatalf("failed to decode portfolio: %v", err)
	}

	w = doJSON(http.MethodPut, "/api/v1/portfolios/"+portfolio.ID+"/allocations", dto.SetAllocationsRequest{
		Allocations: []dto.AllocationItem{
			{AssetID: btc.ID, TargetWeight: decimal.RequireFromString("0.6")},
			{AssetID: usd.ID, TargetWeight: decimal.RequireFromString("0.4")},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("set allocations failed: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(http.MethodGet, "/api/v1/portfolios/"+portfolio.ID+"/rebalance", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("rebalance failed: %d %s", w.Code, w.Body.String())
	}

	var plan dto.RebalancePlanResponse
	if err := json.Unmarshal(w.Body.Bytes(), &plan); err != nil {
		t.Fatalf("failed to decode plan: %v", err)
	}

	// Holdings: 8 BTC at 100 and 4000 USD at 1, total 4800. Target 60/40
	// means moving 2080 USD into BTC. The negative EUR position is not
	// in the allocation set and plays no part.
	if !plan.TotalValue.Equal(decimal.NewFromInt(4800)) {
		t.Fatalf("unexpected total value: %s", plan.TotalValue)
	}
	if len(plan.Legs) != 1 {
		t.Fatalf("expected one leg, got %+v", plan.Legs)
	}
	leg := plan.Legs[0]
	if leg.FromAssetID != usd.ID || leg.ToAssetID != btc.ID {
		t.Fatalf("unexpected leg direction: %+v", leg)
	}
	if !leg.QuantityFrom.Equal(decimal.NewFromInt(2080)) {
		t.Fatalf("unexpected leg quantity: %s", leg.QuantityFrom)
	}
}
