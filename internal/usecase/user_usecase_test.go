package usecase_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/iho/finfolio/internal/domain"
	"github.com/iho/finfolio/internal/usecase"
	"github.com/iho/finfolio/internal/usecase/mocks"
)

func newUserUseCase(userRepo *mocks.MockUserRepository, categoryRepo *mocks.MockCategoryRepository) *usecase.UserUseCase {
	idGen := mocks.NewMockIDGenerator()
	categories := usecase.NewCategoryUseCase(categoryRepo, idGen)
	return usecase.NewUserUseCase(userRepo, categories, idGen)
}

func TestUserUseCase_CreateUser(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateUserInput
		expectError bool
	}{
		{
			name: "valid user",
			input: usecase.CreateUserInput{
				Email:    "alex@example.com",
				Name:     "Alex",
				Password: "Sup3rSecret",
			},
		},
		{
			name: "invalid email",
			input: usecase.CreateUserInput{
				Email:    "not-an-email",
				Password: "Sup3rSecret",
			},
			expectError: true,
		},
		{
			name: "weak password",
			input: usecase.CreateUserInput{
				Email:    "alex@example.com",
				Password: "short",
			},
			expectError: true,
		},
		{
			name: "unknown currency",
			input: usecase.CreateUserInput{
				Email:        "alex@example.com",
				Password:     "Sup3rSecret",
				BaseCurrency: "ZZZ",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			categoryRepo := mocks.NewMockCategoryRepository()
			uc := newUserUseCase(userRepo, categoryRepo)

			user, err := uc.CreateUser(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if user.BaseCurrency != "USD" {
				t.Errorf("base currency = %q, want USD default", user.BaseCurrency)
			}
			if user.Role != domain.RoleOperator {
				t.Errorf("role = %q, want operator default", user.Role)
			}
			if user.HashedPassword == tt.input.Password {
				t.Error("password stored in plain text")
			}
			if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(tt.input.Password)); err != nil {
				t.Errorf("stored hash does not verify: %v", err)
			}

			// Default expense categories are seeded alongside the user.
			categories, err := categoryRepo.List(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			names := make(map[string]bool, len(categories))
			for _, c := range categories {
				names[c.Name] = true
			}
			for _, want := range domain.DefaultExpenseCategories {
				if !names[want] {
					t.Errorf("expected seeded category %q", want)
				}
			}
		})
	}
}

func TestUserUseCase_CreateUser_DuplicateEmail(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	uc := newUserUseCase(userRepo, mocks.NewMockCategoryRepository())

	input := usecase.CreateUserInput{Email: "alex@example.com", Password: "Sup3rSecret"}
	if _, err := uc.CreateUser(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := uc.CreateUser(context.Background(), input)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestUserUseCase_Authenticate(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	uc := newUserUseCase(userRepo, mocks.NewMockCategoryRepository())

	created, err := uc.CreateUser(context.Background(), usecase.CreateUserInput{
		Email:    "alex@example.com",
		Password: "Sup3rSecret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := uc.Authenticate(context.Background(), "alex@example.com", "Sup3rSecret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("authenticated wrong user: %s", user.ID)
	}

	if _, err := uc.Authenticate(context.Background(), "alex@example.com", "WrongPass1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := uc.Authenticate(context.Background(), "ghost@example.com", "Sup3rSecret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestUserUseCase_Authenticate_InactiveUser(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	uc := newUserUseCase(userRepo, mocks.NewMockCategoryRepository())

	created, err := uc.CreateUser(context.Background(), usecase.CreateUserInput{
		Email:    "alex@example.com",
		Password: "Sup3rSecret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	created.Active = false

	if _, err := uc.Authenticate(context.Background(), "alex@example.com", "Sup3rSecret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for inactive user, got %v", err)
	}
}
