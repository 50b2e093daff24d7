package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/finfolio/internal/domain"
)

// AccountUseCase manages user accounts.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	UserID   string
	Name     string
	Type     domain.AccountType
	Currency string
}

// CreateAccount creates a new account. The call is idempotent on (user,
// name): if such an account exists it is returned unchanged.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}
	if !input.Type.IsValid() {
		return nil, errors.New("invalid account type")
	}

	existing, err := uc.accountRepo.GetByUserAndName(ctx, input.UserID, input.Name)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	currency := input.Currency
	if currency == "" {
		currency = DefaultBaseCurrency
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		UserID:    input.UserID,
		Name:      input.Name,
		Type:      input.Type,
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// ListAccounts lists a user's accounts.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, userID string) ([]*domain.Account, error) {
	return uc.accountRepo.ListByUser(ctx, userID)
}

// UpdateAccountInput represents a partial account update. Nil fields are
// left unchanged.
type UpdateAccountInput struct {
	Name     *string
	Type     *domain.AccountType
	Currency *string
}

// UpdateAccount applies a partial update to an account.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, id string, input UpdateAccountInput) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := domain.ValidateName(*input.Name); err != nil {
			return nil, err
		}
		account.Name = *input.Name
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, errors.New("invalid account type")
		}
		account.Type = *input.Type
	}
	if input.Currency != nil {
		account.Currency = *input.Currency
	}
	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// DeleteAccount removes an account.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id string) error {
	if _, err := uc.accountRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return uc.accountRepo.Delete(ctx, id)
}
