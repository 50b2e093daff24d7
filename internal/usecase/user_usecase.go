package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/iho/finfolio/internal/domain"
)

// UserUseCase handles user management operations.
type UserUseCase struct {
	userRepo   UserRepository
	categories *CategoryUseCase
	idGen      IDGenerator
}

// NewUserUseCase creates a new user use case.
func NewUserUseCase(userRepo UserRepository, categories *CategoryUseCase, idGen IDGenerator) *UserUseCase {
	return &UserUseCase{
		userRepo:   userRepo,
		categories: categories,
		idGen:      idGen,
	}
}

// CreateUserInput represents input for creating a user.
type CreateUserInput struct {
	Email        string
	Name         string
	Password     string
	BaseCurrency string
	Role         domain.Role
}

// CreateUser creates a new user with a hashed password and seeds the
// default expense categories for the quick-entry flow.
func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleOperator
	}
	if !role.IsValid() {
		return nil, errors.New("invalid role")
	}

	baseCurrency := input.BaseCurrency
	if baseCurrency == "" {
		baseCurrency = DefaultBaseCurrency
	}
	if err := domain.ValidateCurrency(baseCurrency); err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Email:          input.Email,
		Name:           input.Name,
		HashedPassword: string(hashed),
		BaseCurrency:   baseCurrency,
		Role:           role,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if _, err := uc.categories.SeedExpenseCategories(ctx); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// Authenticate verifies email and password and returns the user.
func (uc *UserUseCase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Active {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
