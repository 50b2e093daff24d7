package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/finfolio/internal/adapter/http/dto"
	"github.com/iho/finfolio/internal/domain"
	"github.com/iho/finfolio/internal/infrastructure/metrics"
	"github.com/iho/finfolio/internal/usecase"
)

// PriceService defines the behavior needed by PriceHandler.
type PriceService interface {
	SetPrice(ctx context.Context, input usecase.SetPriceInput) (*domain.PricePoint, error)
	LatestPrices(ctx context.Context, baseCurrency string) ([]*domain.PricePoint, error)
}

// PriceHandler handles the append-only price log.
type PriceHandler struct {
	priceUC PriceService
	metrics *metrics.Metrics
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(priceUC PriceService, m *metrics.Metrics) *PriceHandler {
	return &PriceHandler{priceUC: priceUC, metrics: m}
}

// Set appends one price observation.
func (h *PriceHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req dto.SetPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	price, err := h.priceUC.SetPrice(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to set price", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.PricesRecorded.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.PriceFromDomain(price))
}

// Latest returns the newest observation per asset in the requested base
// currency.
func (h *PriceHandler) Latest(w http.ResponseWriter, r *http.Request) {
	baseCurrency := r.URL.Query().Get("base_currency")

	prices, err := h.priceUC.LatestPrices(r.Context(), baseCurrency)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list prices", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PricesFromDomain(prices))
}
