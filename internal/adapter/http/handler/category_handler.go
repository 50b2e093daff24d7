package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/finfolio/internal/adapter/http/dto"
	"github.com/iho/finfolio/internal/domain"
	"github.com/iho/finfolio/internal/usecase"
)

// CategoryService defines the behavior needed by CategoryHandler.
type CategoryService interface {
	CreateCategory(ctx context.Context, input usecase.CreateCategoryInput) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	SeedExpenseCategories(ctx context.Context) ([]*domain.Category, error)
	SeedIncomeCategories(ctx context.Context) ([]*domain.Category, error)
}

// CategoryHandler handles spending categories.
type CategoryHandler struct {
	categoryUC CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryUC CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryUC: categoryUC}
}

// Create creates a category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	category, err := h.categoryUC.CreateCategory(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create category", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CategoryFromDomain(category))
}

// List lists all categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryUC.ListCategories(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list categories", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoriesFromDomain(categories))
}

// Seed ensures the default category set exists. The kind query selects
// expense (default) or income categories; seeding is idempotent.
func (h *CategoryHandler) Seed(w http.ResponseWriter, r *http.Request) {
	var (
		categories []*domain.Category
		err        error
	)

	switch r.URL.Query().Get("kind") {
	case "income":
		categories, err = h.categoryUC.SeedIncomeCategories(r.Context())
	case "", "expense":
		categories, err = h.categoryUC.SeedExpenseCategories(r.Context())
	default:
		writeError(w, http.StatusBadRequest, "unknown category kind", "")
		return
	}
	if err != nil {
		writeError(w, mapDomainError(err), "failed to seed categories", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoriesFromDomain(categories))
}
