package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/finfolio/internal/adapter/http/dto"
	"github.com/iho/finfolio/internal/infrastructure/metrics"
	"github.com/iho/finfolio/internal/usecase"
)

// HoldingsService defines the behavior needed by HoldingsHandler.
type HoldingsService interface {
	ListHoldings(ctx context.Context, userID string) ([]usecase.Holding, error)
	AccountBalances(ctx context.Context, userID, baseCurrency string) ([]*usecase.AccountBalance, error)
}

// HoldingsHandler serves the derived holdings views. Each request
// replays the transaction log.
type HoldingsHandler struct {
	holdingsUC HoldingsService
	metrics    *metrics.Metrics
}

// NewHoldingsHandler creates a new HoldingsHandler.
func NewHoldingsHandler(holdingsUC HoldingsService, m *metrics.Metrics) *HoldingsHandler {
	return &HoldingsHandler{holdingsUC: holdingsUC, metrics: m}
}

// List returns net quantities per asset across the user's trades and
// rebalances.
func (h *HoldingsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	start := time.Now()
	holdings, err := h.holdingsUC.ListHoldings(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute holdings", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.HoldingsReplayDuration.Observe(time.Since(start).Seconds())
	}

	writeJSON(w, http.StatusOK, dto.HoldingsFromUseCase(holdings))
}

// Balances returns per-account positions valued against the latest
// prices. Unpriced positions report quantity only.
func (h *HoldingsHandler) Balances(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	start := time.Now()
	balances, err := h.holdingsUC.AccountBalances(r.Context(), userID, r.URL.Query().Get("base_currency"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute balances", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.HoldingsReplayDuration.Observe(time.Since(start).Seconds())
	}

	writeJSON(w, http.StatusOK, dto.AccountBalancesFromUseCase(balances))
}
