package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finfolio/internal/adapter/http/dto"
	"github.com/iho/finfolio/internal/domain"
	"github.com/iho/finfolio/internal/infrastructure/metrics"
	"github.com/iho/finfolio/internal/usecase"
)

// PortfolioService defines the portfolio behavior needed by
// PortfolioHandler.
type PortfolioService interface {
	CreatePortfolio(ctx context.Context, input usecase.CreatePortfolioInput) (*domain.Portfolio, error)
	GetPortfolio(ctx context.Context, id string) (*domain.Portfolio, error)
	ListPortfolios(ctx context.Context, userID string) ([]*domain.Portfolio, error)
	SetAllocations(ctx context.Context, portfolioID string, inputs []usecase.AllocationInput) ([]*domain.Allocation, error)
}

// RebalanceService defines the planner behavior needed by
// PortfolioHandler.
type RebalanceService interface {
	SuggestRebalance(ctx context.Context, input usecase.SuggestRebalanceInput) (*domain.RebalancePlan, error)
}

// PortfolioHandler handles portfolios, allocations and rebalance
// suggestions.
type PortfolioHandler struct {
	portfolioUC PortfolioService
	rebalanceUC RebalanceService
	metrics     *metrics.Metrics
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioUC PortfolioService, rebalanceUC RebalanceService, m *metrics.Metrics) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioUC: portfolioUC,
		rebalanceUC: rebalanceUC,
		metrics:     m,
	}
}

// Create creates a portfolio.
func (h *PortfolioHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	var req dto.CreatePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	portfolio, err := h.portfolioUC.CreatePortfolio(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create portfolio", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.PortfoliosCreated.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.PortfolioFromDomain(portfolio))
}

// Get retrieves a portfolio by ID.
func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing portfolio ID", "")
		return
	}

	portfolio, err := h.portfolioUC.GetPortfolio(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get portfolio", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PortfolioFromDomain(portfolio))
}

// List lists the user's portfolios.
func (h *PortfolioHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	portfolios, err := h.portfolioUC.ListPortfolios(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list portfolios", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PortfoliosFromDomain(portfolios))
}

// SetAllocations replaces the portfolio's entire allocation set.
func (h *PortfolioHandler) SetAllocations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing portfolio ID", "")
		return
	}

	var req dto.SetAllocationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	allocs, err := h.portfolioUC.SetAllocations(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to set allocations", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.AllocationsWritten.Add(float64(len(allocs)))
	}

	writeJSON(w, http.StatusOK, dto.AllocationsFromDomain(allocs))
}

// Rebalance computes a transient rebalance suggestion for the
// portfolio. Nothing is persisted; recording the resulting trades is a
// separate, explicit step.
func (h *PortfolioHandler) Rebalance(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing portfolio ID", "")
		return
	}

	start := time.Now()
	plan, err := h.rebalanceUC.SuggestRebalance(r.Context(), usecase.SuggestRebalanceInput{
		PortfolioID:  id,
		UserID:       userID,
		BaseCurrency: r.URL.Query().Get("base_currency"),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to plan rebalance", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.RebalancePlans.Inc()
		h.metrics.RebalanceLegs.Observe(float64(len(plan.Legs)))
		h.metrics.RebalanceDuration.Observe(time.Since(start).Seconds())
	}

	writeJSON(w, http.StatusOK, dto.RebalancePlanFromDomain(plan))
}
