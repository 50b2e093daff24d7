package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finfolio/internal/domain"
	"github.com/iho/finfolio/internal/usecase"
)

// CreateUserRequest registers a new user.
type CreateUserRequest struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Password     string `json:"password"`
	BaseCurrency string `json:"base_currency,omitempty"`
	Role         string `json:"role,omitempty"`
}

func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Email:        r.Email,
		Name:         r.Name,
		Password:     r.Password,
		BaseCurrency: r.BaseCurrency,
		Role:         domain.Role(r.Role),
	}
}

// LoginRequest exchanges credentials for a token.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateAccountRequest creates an account. The call is idempotent on the
// account name within a user.
type CreateAccountRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Currency string `json:"currency,omitempty"`
}

func (r *CreateAccountRequest) ToUseCaseInput(userID string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		UserID:   userID,
		Name:     r.Name,
		Type:     domain.AccountType(r.Type),
		Currency: r.Currency,
	}
}

// UpdateAccountRequest applies a partial account update; absent fields are
// left unchanged.
type UpdateAccountRequest struct {
	Name     *string `json:"name,omitempty"`
	Type     *string `json:"type,omitempty"`
	Currency *string `json:"currency,omitempty"`
}

func (r *UpdateAccountRequest) ToUseCaseInput() usecase.UpdateAccountInput {
	input := usecase.UpdateAccountInput{
		Name:     r.Name,
		Currency: r.Currency,
	}
	if r.Type != nil {
		t := domain.AccountType(*r.Type)
		input.Type = &t
	}
	return input
}

// CreateAssetRequest registers an asset in the shared registry.
type CreateAssetRequest struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Type   string `json:"type"`
}

func (r *CreateAssetRequest) ToUseCaseInput() usecase.CreateAssetInput {
	return usecase.CreateAssetInput{
		Symbol: r.Symbol,
		Name:   r.Name,
		Type:   domain.AssetType(r.Type),
	}
}

// CreateCategoryRequest creates a spending category.
type CreateCategoryRequest struct {
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

func (r *CreateCategoryRequest) ToUseCaseInput() usecase.CreateCategoryInput {
	return usecase.CreateCategoryInput{
		Name:     r.Name,
		ParentID: r.ParentID,
	}
}

// SetPriceRequest appends one observation to the price log.
type SetPriceRequest struct {
	AssetID      string          `json:"asset_id"`
	Price        decimal.Decimal `json:"price"`
	BaseCurrency string          `json:"base_currency,omitempty"`
	Timestamp    *time.Time      `json:"timestamp,omitempty"`
}

func (r *SetPriceRequest) ToUseCaseInput() usecase.SetPriceInput {
	return usecase.SetPriceInput{
		AssetID:      r.AssetID,
		Price:        r.Price,
		BaseCurrency: r.BaseCurrency,
		Timestamp:    r.Timestamp,
	}
}

// RecordExpenseRequest records spending of Amount in AssetID.
type RecordExpenseRequest struct {
	AccountID  string          `json:"account_id,omitempty"`
	CategoryID string          `json:"category_id,omitempty"`
	AssetID    string          `json:"asset_id"`
	Amount     decimal.Decimal `json:"amount"`
	Merchant   string          `json:"merchant,omitempty"`
	Note       string          `json:"note,omitempty"`
	OccurredAt *time.Time      `json:"occurred_at,omitempty"`
}

func (r *RecordExpenseRequest) ToUseCaseInput(userID string) usecase.RecordExpenseInput {
	return usecase.RecordExpenseInput{
		UserID:     userID,
		AccountID:  r.AccountID,
		CategoryID: r.CategoryID,
		AssetID:    r.AssetID,
		Amount:     r.Amount,
		Merchant:   r.Merchant,
		Note:       r.Note,
		OccurredAt: r.OccurredAt,
	}
}

// RecordTradeRequest records an exchange between two assets with an
// optional fee leg.
type RecordTradeRequest struct {
	AccountID   string          `json:"account_id,omitempty"`
	FromAssetID string          `json:"from_asset_id"`
	FromAmount  decimal.Decimal `json:"from_amount"`
	ToAssetID   string          `json:"to_asset_id"`
	ToAmount    decimal.Decimal `json:"to_amount"`
	FeeAssetID  string          `json:"fee_asset_id,omitempty"`
	FeeAmount   decimal.Decimal `json:"fee_amount,omitempty"`
	Note        string          `json:"note,omitempty"`
	OccurredAt  *time.Time      `json:"occurred_at,omitempty"`
}

func (r *RecordTradeRequest) ToUseCaseInput(userID string) usecase.RecordTradeInput {
	return usecase.RecordTradeInput{
		UserID:      userID,
		AccountID:   r.AccountID,
		FromAssetID: r.FromAssetID,
		FromAmount:  r.FromAmount,
		ToAssetID:   r.ToAssetID,
		ToAmount:    r.ToAmount,
		FeeAssetID:  r.FeeAssetID,
		FeeAmount:   r.FeeAmount,
		Note:        r.Note,
		OccurredAt:  r.OccurredAt,
	}
}

// RecordIncomeRequest records Amount received into AssetID.
type RecordIncomeRequest struct {
	AccountID  string          `json:"account_id,omitempty"`
	CategoryID string          `json:"category_id,omitempty"`
	AssetID    string          `json:"asset_id"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note,omitempty"`
	OccurredAt *time.Time      `json:"occurred_at,omitempty"`
}

func (r *RecordIncomeRequest) ToUseCaseInput(userID string) usecase.RecordIncomeInput {
	return usecase.RecordIncomeInput{
		UserID:     userID,
		AccountID:  r.AccountID,
		CategoryID: r.CategoryID,
		AssetID:    r.AssetID,
		Amount:     r.Amount,
		Note:       r.Note,
		OccurredAt: r.OccurredAt,
	}
}

// CreatePortfolioRequest creates a portfolio.
type CreatePortfolioRequest struct {
	Name         string `json:"name"`
	BaseCurrency string `json:"base_currency,omitempty"`
}

func (r *CreatePortfolioRequest) ToUseCaseInput(userID string) usecase.CreatePortfolioInput {
	return usecase.CreatePortfolioInput{
		UserID:       userID,
		Name:         r.Name,
		BaseCurrency: r.BaseCurrency,
	}
}

// AllocationItem is one target weight within a SetAllocationsRequest.
type AllocationItem struct {
	AssetID        string           `json:"asset_id"`
	TargetWeight   decimal.Decimal  `json:"target_weight"`
	MinWeight      *decimal.Decimal `json:"min_weight,omitempty"`
	MaxWeight      *decimal.Decimal `json:"max_weight,omitempty"`
	DriftThreshold *decimal.Decimal `json:"drift_threshold,omitempty"`
}

// SetAllocationsRequest replaces a portfolio's entire allocation set.
type SetAllocationsRequest struct {
	Allocations []AllocationItem `json:"allocations"`
}

func (r *SetAllocationsRequest) ToUseCaseInput() []usecase.AllocationInput {
	inputs := make([]usecase.AllocationInput, 0, len(r.Allocations))
	for _, item := range r.Allocations {
		inputs = append(inputs, usecase.AllocationInput{
			AssetID:        item.AssetID,
			TargetWeight:   item.TargetWeight,
			MinWeight:      item.MinWeight,
			MaxWeight:      item.MaxWeight,
			DriftThreshold: item.DriftThreshold,
		})
	}
	return inputs
}
