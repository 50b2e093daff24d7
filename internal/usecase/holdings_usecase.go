package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/finfolio/internal/domain"
)

// HoldingsUseCase derives point-in-time holdings views from the
// transaction log. Every query replays the full log; there is no
// incremental state and nothing to invalidate.
type HoldingsUseCase struct {
	txnRepo     TransactionRepository
	accountRepo AccountRepository
	assetRepo   AssetRepository
	priceRepo   PriceRepository
}

// NewHoldingsUseCase creates a new HoldingsUseCase.
func NewHoldingsUseCase(txnRepo TransactionRepository, accountRepo AccountRepository, assetRepo AssetRepository, priceRepo PriceRepository) *HoldingsUseCase {
	return &HoldingsUseCase{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		assetRepo:   assetRepo,
		priceRepo:   priceRepo,
	}
}

// ComputeHoldings returns net quantities per asset from the user's trade
// and rebalance transactions.
func (uc *HoldingsUseCase) ComputeHoldings(ctx context.Context, userID string) (map[string]decimal.Decimal, error) {
	txs, err := uc.txnRepo.ListByUserAndKinds(ctx, userID, holdingKinds)
	if err != nil {
		return nil, err
	}

	return domain.AccumulateHoldings(txs), nil
}

// ComputeHoldingsByAccount returns net quantities per (account, asset)
// pair. Trades, rebalances, expenses and incomes all participate here.
func (uc *HoldingsUseCase) ComputeHoldingsByAccount(ctx context.Context, userID string) (map[string]map[string]decimal.Decimal, error) {
	txs, err := uc.txnRepo.ListByUserAndKinds(ctx, userID, accountKinds)
	if err != nil {
		return nil, err
	}

	return domain.AccumulateHoldingsByAccount(txs), nil
}

// Holding is one global position resolved to its asset symbol.
type Holding struct {
	AssetID  string
	Symbol   string
	Quantity decimal.Decimal
}

// ListHoldings resolves the global holdings map to asset symbols for
// presentation. Assets that no longer resolve are skipped.
func (uc *HoldingsUseCase) ListHoldings(ctx context.Context, userID string) ([]Holding, error) {
	qty, err := uc.ComputeHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(qty) == 0 {
		return nil, nil
	}

	assets, err := uc.assetRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	symbols := make(map[string]string, len(assets))
	ordered := make([]string, 0, len(assets))
	for _, a := range assets {
		symbols[a.ID] = a.Symbol
		ordered = append(ordered, a.ID)
	}

	holdings := make([]Holding, 0, len(qty))
	for _, assetID := range ordered {
		q, held := qty[assetID]
		if !held {
			continue
		}
		holdings = append(holdings, Holding{
			AssetID:  assetID,
			Symbol:   symbols[assetID],
			Quantity: q,
		})
	}

	return holdings, nil
}

// Position is one valued holding within an account. Price and Value are
// nil when the asset has no price in the requested base currency.
type Position struct {
	Price    *decimal.Decimal
	Value    *decimal.Decimal
	AssetID  string
	Symbol   string
	Quantity decimal.Decimal
}

// AccountBalance is the valued per-account holdings view. TotalValue is
// nil when no position carries a positive value.
type AccountBalance struct {
	TotalValue  *decimal.Decimal
	AccountID   string
	AccountName string
	Positions   []Position
}

// AccountBalances values each account's positions against the latest
// prices in baseCurrency. Unpriced positions report quantity only; their
// absence from the totals is deliberate under-reporting, not an error.
func (uc *HoldingsUseCase) AccountBalances(ctx context.Context, userID, baseCurrency string) ([]*AccountBalance, error) {
	byAccount, err := uc.ComputeHoldingsByAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(byAccount) == 0 {
		return nil, nil
	}

	accounts, err := uc.accountRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	assets, err := uc.assetRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	prices, err := uc.priceRepo.LatestPriceMap(ctx, baseCurrency)
	if err != nil {
		return nil, err
	}

	symbols := make(map[string]string, len(assets))
	assetOrder := make([]string, 0, len(assets))
	for _, a := range assets {
		symbols[a.ID] = a.Symbol
		assetOrder = append(assetOrder, a.ID)
	}

	balances := make([]*AccountBalance, 0, len(byAccount))
	for _, account := range accounts {
		positions, held := byAccount[account.ID]
		if !held {
			continue
		}

		balance := &AccountBalance{
			AccountID:   account.ID,
			AccountName: account.Name,
		}

		total := decimal.Zero
		for _, assetID := range assetOrder {
			q, ok := positions[assetID]
			if !ok {
				continue
			}

			pos := Position{
				AssetID:  assetID,
				Symbol:   symbols[assetID],
				Quantity: q,
			}
			if price, priced := prices[assetID]; priced {
				value := price.Mul(q)
				pos.Price = &price
				pos.Value = &value
				total = total.Add(value)
			}
			balance.Positions = append(balance.Positions, pos)
		}

		if total.IsPositive() {
			balance.TotalValue = &total
		}
		balances = append(balances, balance)
	}

	return balances, nil
}
