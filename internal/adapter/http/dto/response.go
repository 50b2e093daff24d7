package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finfolio/internal/domain"
	"github.com/iho/finfolio/internal/usecase"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// UserResponse is the public view of a user; the password hash never
// leaves the server.
type UserResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	BaseCurrency string    `json:"base_currency"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

func UserFromDomain(u *domain.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		BaseCurrency: u.BaseCurrency,
		Role:         string(u.Role),
		Active:       u.Active,
		CreatedAt:    u.CreatedAt,
	}
}

// TokenResponse carries a freshly issued JWT.
type TokenResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func AccountFromDomain(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Type:      string(a.Type),
		Currency:  a.Currency,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func AccountsFromDomain(accounts []*domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, AccountFromDomain(a))
	}
	return out
}

type AssetResponse struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

func AssetFromDomain(a *domain.Asset) AssetResponse {
	return AssetResponse{
		ID:        a.ID,
		Symbol:    a.Symbol,
		Name:      a.Name,
		Type:      string(a.Type),
		CreatedAt: a.CreatedAt,
	}
}

func AssetsFromDomain(assets []*domain.Asset) []AssetResponse {
	out := make([]AssetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, AssetFromDomain(a))
	}
	return out
}

type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  string    `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func CategoryFromDomain(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
	}
}

func CategoriesFromDomain(categories []*domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryFromDomain(c))
	}
	return out
}

type PriceResponse struct {
	ID           string          `json:"id"`
	AssetID      string          `json:"asset_id"`
	Price        decimal.Decimal `json:"price"`
	BaseCurrency string          `json:"base_currency"`
	Timestamp    time.Time       `json:"timestamp"`
}

func PriceFromDomain(p *domain.PricePoint) PriceResponse {
	return PriceResponse{
		ID:           p.ID,
		AssetID:      p.AssetID,
		Price:        p.Price,
		BaseCurrency: p.BaseCurrency,
		Timestamp:    p.Timestamp,
	}
}

func PricesFromDomain(prices []*domain.PricePoint) []PriceResponse {
	out := make([]PriceResponse, 0, len(prices))
	for _, p := range prices {
		out = append(out, PriceFromDomain(p))
	}
	return out
}

// TransactionResponse mirrors the stored event. Absent legs and optional
// fields are omitted.
type TransactionResponse struct {
	ID          string           `json:"id"`
	Kind        string           `json:"kind"`
	AccountID   string           `json:"account_id,omitempty"`
	CategoryID  string           `json:"category_id,omitempty"`
	FromAssetID string           `json:"from_asset_id,omitempty"`
	FromAmount  *decimal.Decimal `json:"from_amount,omitempty"`
	ToAssetID   string           `json:"to_asset_id,omitempty"`
	ToAmount    *decimal.Decimal `json:"to_amount,omitempty"`
	FeeAssetID  string           `json:"fee_asset_id,omitempty"`
	FeeAmount   *decimal.Decimal `json:"fee_amount,omitempty"`
	Merchant    string           `json:"merchant,omitempty"`
	Note        string           `json:"note,omitempty"`
	OccurredAt  time.Time        `json:"occurred_at"`
	CreatedAt   time.Time        `json:"created_at"`
}

func TransactionFromDomain(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          t.ID,
		Kind:        string(t.Kind),
		AccountID:   t.AccountID,
		CategoryID:  t.CategoryID,
		FromAssetID: t.FromAssetID,
		ToAssetID:   t.ToAssetID,
		FeeAssetID:  t.FeeAssetID,
		Merchant:    t.Merchant,
		Note:        t.Note,
		OccurredAt:  t.OccurredAt,
		CreatedAt:   t.CreatedAt,
	}
	if t.FromAssetID != "" {
		amount := t.FromAmount
		resp.FromAmount = &amount
	}
	if t.ToAssetID != "" {
		amount := t.ToAmount
		resp.ToAmount = &amount
	}
	if t.FeeAssetID != "" {
		amount := t.FeeAmount
		resp.FeeAmount = &amount
	}
	return resp
}

func TransactionsFromDomain(txs []*domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, TransactionFromDomain(t))
	}
	return out
}

// CategoryTotalsResponse maps category names to summed spending for one
// day. Seeded categories appear with a zero total even when unused.
type CategoryTotalsResponse struct {
	Day    string                     `json:"day"`
	Totals map[string]decimal.Decimal `json:"totals"`
}

type PortfolioResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	BaseCurrency string    `json:"base_currency"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func PortfolioFromDomain(p *domain.Portfolio) PortfolioResponse {
	return PortfolioResponse{
		ID:           p.ID,
		Name:         p.Name,
		BaseCurrency: p.BaseCurrency,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func PortfoliosFromDomain(portfolios []*domain.Portfolio) []PortfolioResponse {
	out := make([]PortfolioResponse, 0, len(portfolios))
	for _, p := range portfolios {
		out = append(out, PortfolioFromDomain(p))
	}
	return out
}

type AllocationResponse struct {
	ID             string           `json:"id"`
	AssetID        string           `json:"asset_id"`
	TargetWeight   decimal.Decimal  `json:"target_weight"`
	MinWeight      *decimal.Decimal `json:"min_weight,omitempty"`
	MaxWeight      *decimal.Decimal `json:"max_weight,omitempty"`
	DriftThreshold *decimal.Decimal `json:"drift_threshold,omitempty"`
}

func AllocationFromDomain(a *domain.Allocation) AllocationResponse {
	return AllocationResponse{
		ID:             a.ID,
		AssetID:        a.AssetID,
		TargetWeight:   a.TargetWeight,
		MinWeight:      a.MinWeight,
		MaxWeight:      a.MaxWeight,
		DriftThreshold: a.DriftThreshold,
	}
}

func AllocationsFromDomain(allocs []*domain.Allocation) []AllocationResponse {
	out := make([]AllocationResponse, 0, len(allocs))
	for _, a := range allocs {
		out = append(out, AllocationFromDomain(a))
	}
	return out
}

type HoldingResponse struct {
	AssetID  string          `json:"asset_id"`
	Symbol   string          `json:"symbol"`
	Quantity decimal.Decimal `json:"quantity"`
}

func HoldingsFromUseCase(holdings []usecase.Holding) []HoldingResponse {
	out := make([]HoldingResponse, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, HoldingResponse{
			AssetID:  h.AssetID,
			Symbol:   h.Symbol,
			Quantity: h.Quantity,
		})
	}
	return out
}

// PositionResponse is one valued line inside an account balance. Price
// and value are omitted when the asset has no price observation.
type PositionResponse struct {
	AssetID  string           `json:"asset_id"`
	Symbol   string           `json:"symbol"`
	Quantity decimal.Decimal  `json:"quantity"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Value    *decimal.Decimal `json:"value,omitempty"`
}

type AccountBalanceResponse struct {
	AccountID   string             `json:"account_id"`
	AccountName string             `json:"account_name"`
	Positions   []PositionResponse `json:"positions"`
	TotalValue  *decimal.Decimal   `json:"total_value,omitempty"`
}

func AccountBalancesFromUseCase(balances []*usecase.AccountBalance) []AccountBalanceResponse {
	out := make([]AccountBalanceResponse, 0, len(balances))
	for _, b := range balances {
		positions := make([]PositionResponse, 0, len(b.Positions))
		for _, p := range b.Positions {
			positions = append(positions, PositionResponse{
				AssetID:  p.AssetID,
				Symbol:   p.Symbol,
				Quantity: p.Quantity,
				Price:    p.Price,
				Value:    p.Value,
			})
		}
		out = append(out, AccountBalanceResponse{
			AccountID:   b.AccountID,
			AccountName: b.AccountName,
			Positions:   positions,
			TotalValue:  b.TotalValue,
		})
	}
	return out
}

type RebalanceLegResponse struct {
	FromAssetID  string          `json:"from_asset_id"`
	ToAssetID    string          `json:"to_asset_id"`
	QuantityFrom decimal.Decimal `json:"quantity_from"`
}

// RebalancePlanResponse is the transient planner output; nothing about it
// is persisted.
type RebalancePlanResponse struct {
	TotalValue     decimal.Decimal            `json:"total_value"`
	CurrentWeights map[string]decimal.Decimal `json:"current_weights"`
	TargetWeights  map[string]decimal.Decimal `json:"target_weights"`
	Legs           []RebalanceLegResponse     `json:"legs"`
}

func RebalancePlanFromDomain(plan *domain.RebalancePlan) RebalancePlanResponse {
	legs := make([]RebalanceLegResponse, 0, len(plan.Legs))
	for _, leg := range plan.Legs {
		legs = append(legs, RebalanceLegResponse{
			FromAssetID:  leg.FromAssetID,
			ToAssetID:    leg.ToAssetID,
			QuantityFrom: leg.QuantityFrom,
		})
	}
	return RebalancePlanResponse{
		TotalValue:     plan.TotalValue,
		CurrentWeights: plan.CurrentWeights,
		TargetWeights:  plan.TargetWeights,
		Legs:           legs,
	}
}
