package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/finfolio/internal/domain"
)

func TestTransactionFromDomain_OmitsAbsentLegs(t *testing.T) {
	now := time.Now().UTC()
	tx := &domain.Transaction{
		ID:          "tx-1",
		Kind:        domain.KindExpense,
		AccountID:   "acc-1",
		CategoryID:  "cat-1",
		FromAssetID: "usd",
		FromAmount:  decimal.NewFromInt(35),
		Merchant:    "bakery",
		OccurredAt:  now,
		CreatedAt:   now,
	}

	resp := TransactionFromDomain(tx)

	require.Equal(t, "expense", resp.Kind)
	require.NotNil(t, resp.FromAmount)
	require.True(t, resp.FromAmount.Equal(decimal.NewFromInt(35)))
	require.Nil(t, resp.ToAmount)
	require.Nil(t, resp.FeeAmount)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	require.NotContains(t, string(body), "to_amount")
	require.NotContains(t, string(body), "fee_amount")
}

func TestTransactionFromDomain_TradeCarriesBothLegs(t *testing.T) {
	tx := &domain.Transaction{
		ID:          "tx-2",
		Kind:        domain.KindTrade,
		FromAssetID: "usd",
		FromAmount:  decimal.NewFromInt(800),
		ToAssetID:   "btc",
		ToAmount:    decimal.NewFromInt(8),
	}

	resp := TransactionFromDomain(tx)

	require.NotNil(t, resp.FromAmount)
	require.NotNil(t, resp.ToAmount)
	require.True(t, resp.ToAmount.Equal(decimal.NewFromInt(8)))
}

func TestUserFromDomain_NeverExposesPasswordHash(t *testing.T) {
	u := &domain.User{
		ID:             "user-1",
		Email:          "ada@example.com",
		Name:           "Ada",
		HashedPassword: "bcrypt-hash",
		BaseCurrency:   "USD",
		Role:           domain.RoleOperator,
	}

	body, err := json.Marshal(UserFromDomain(u))
	require.NoError(t, err)
	require.NotContains(t, string(body), "bcrypt-hash")
	require.Contains(t, string(body), "ada@example.com")
}
