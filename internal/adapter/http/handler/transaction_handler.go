package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finfolio/internal/adapter/http/dto"
	"github.com/iho/finfolio/internal/domain"
	"github.com/iho/finfolio/internal/infrastructure/metrics"
	"github.com/iho/finfolio/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	RecordExpense(ctx context.Context, input usecase.RecordExpenseInput) (*domain.Transaction, error)
	RecordTrade(ctx context.Context, input usecase.RecordTradeInput) (*domain.Transaction, error)
	RecordIncome(ctx context.Context, input usecase.RecordIncomeInput) (*domain.Transaction, error)
	ListExpensesByDay(ctx context.Context, userID string, day time.Time, categoryName string) ([]*domain.Transaction, error)
	DailyCategoryTotals(ctx context.Context, userID string, day time.Time) (map[string]decimal.Decimal, error)
}

// TransactionHandler handles the append-only transaction log.
type TransactionHandler struct {
	txnUC   TransactionService
	metrics *metrics.Metrics
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(txnUC TransactionService, m *metrics.Metrics) *TransactionHandler {
	return &TransactionHandler{txnUC: txnUC, metrics: m}
}

func (h *TransactionHandler) recorded(kind domain.Kind) {
	if h.metrics != nil {
		h.metrics.TransactionsRecorded.WithLabelValues(string(kind)).Inc()
	}
}

func (h *TransactionHandler) failed(err error) {
	if h.metrics == nil {
		return
	}
	reason := "internal"
	if mapDomainError(err) == http.StatusBadRequest {
		reason = "validation"
	}
	h.metrics.TransactionErrors.WithLabelValues(reason).Inc()
}

// Expense records spending.
func (h *TransactionHandler) Expense(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	var req dto.RecordExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.txnUC.RecordExpense(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		h.failed(err)
		writeError(w, mapDomainError(err), "failed to record expense", err.Error())
		return
	}

	h.recorded(txn.Kind)
	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Trade records an exchange between two assets.
func (h *TransactionHandler) Trade(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	var req dto.RecordTradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.txnUC.RecordTrade(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		h.failed(err)
		writeError(w, mapDomainError(err), "failed to record trade", err.Error())
		return
	}

	h.recorded(txn.Kind)
	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Income records money received.
func (h *TransactionHandler) Income(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	var req dto.RecordIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.txnUC.RecordIncome(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		h.failed(err)
		writeError(w, mapDomainError(err), "failed to record income", err.Error())
		return
	}

	h.recorded(txn.Kind)
	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// ListExpenses lists the user's expenses for one calendar day, optionally
// filtered by category name. The day defaults to today.
func (h *TransactionHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	day := time.Now().UTC()
	if v := r.URL.Query().Get("day"); v != "" {
		parsed, err := parseDay(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid day", err.Error())
			return
		}
		day = parsed
	}

	txs, err := h.txnUC.ListExpensesByDay(r.Context(), userID, day, r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txs))
}

// DailyTotals sums the user's expenses per category for one calendar
// day. Seeded categories appear with a zero total even when unused.
func (h *TransactionHandler) DailyTotals(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	day := time.Now().UTC()
	if v := r.URL.Query().Get("day"); v != "" {
		parsed, err := parseDay(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid day", err.Error())
			return
		}
		day = parsed
	}

	totals, err := h.txnUC.DailyCategoryTotals(r.Context(), userID, day)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute totals", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryTotalsResponse{
		Day:    day.Format("2006-01-02"),
		Totals: totals,
	})
}
