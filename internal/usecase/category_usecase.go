package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/finfolio/internal/domain"
)

// CategoryUseCase manages transaction categories.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
	idGen        IDGenerator
}

// NewCategoryUseCase creates a new CategoryUseCase.
func NewCategoryUseCase(categoryRepo CategoryRepository, idGen IDGenerator) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		idGen:        idGen,
	}
}

// CreateCategoryInput represents input for creating a category.
type CreateCategoryInput struct {
	Name     string
	ParentID string
}

// CreateCategory creates a new category. Names are unique.
func (uc *CategoryUseCase) CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	existing, err := uc.categoryRepo.GetByName(ctx, input.Name)
	if err != nil && !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrCategoryExists
	}

	category := &domain.Category{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		ParentID:  input.ParentID,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// ListCategories lists all categories.
func (uc *CategoryUseCase) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return uc.categoryRepo.List(ctx)
}

// SeedIncomeCategories ensures the common income categories exist and
// returns them, created or pre-existing.
func (uc *CategoryUseCase) SeedIncomeCategories(ctx context.Context) ([]*domain.Category, error) {
	return uc.ensure(ctx, domain.DefaultIncomeCategories)
}

// SeedExpenseCategories ensures the default expense categories exist.
func (uc *CategoryUseCase) SeedExpenseCategories(ctx context.Context) ([]*domain.Category, error) {
	return uc.ensure(ctx, domain.DefaultExpenseCategories)
}

func (uc *CategoryUseCase) ensure(ctx context.Context, names []string) ([]*domain.Category, error) {
	categories := make([]*domain.Category, 0, len(names))
	for _, name := range names {
		existing, err := uc.categoryRepo.GetByName(ctx, name)
		if err == nil {
			categories = append(categories, existing)
			continue
		}
		if !errors.Is(err, domain.ErrCategoryNotFound) {
			return nil, err
		}

		category := &domain.Category{
			ID:        uc.idGen.Generate(),
			Name:      name,
			CreatedAt: time.Now().UTC(),
		}
		if err := uc.categoryRepo.Create(ctx, category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, nil
}
