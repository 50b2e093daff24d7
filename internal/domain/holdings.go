package domain

import "github.com/shopspring/decimal"

// DustThreshold is the absolute net quantity below which a position is
// treated as fully closed rather than a near-zero residual.
var DustThreshold = decimal.New(1, -10) // 1e-10

// AccumulateHoldings replays trade and rebalance transactions into net
// quantities per asset. The accumulation is a commutative sum of signed
// deltas, so any permutation of the same transaction set yields the same
// result. Positions whose absolute quantity is within DustThreshold are
// dropped.
func AccumulateHoldings(txs []*Transaction) map[string]decimal.Decimal {
	qty := make(map[string]decimal.Decimal)

	for _, t := range txs {
		if t.Kind != KindTrade && t.Kind != KindRebalance {
			continue
		}
		if t.HasFromLeg() {
			qty[t.FromAssetID] = qty[t.FromAssetID].Sub(t.FromAmount)
		}
		if t.HasToLeg() {
			qty[t.ToAssetID] = qty[t.ToAssetID].Add(t.ToAmount)
		}
	}

	return dropDust(qty)
}

// AccumulateHoldingsByAccount replays trade, rebalance, expense and income
// transactions into net quantities per (account, asset) pair. Transactions
// not tied to an account are excluded from this view entirely; they remain
// visible through AccumulateHoldings. Expenses subtract only the source
// leg and incomes add only the destination leg. Accounts whose asset map
// is empty after dust filtering are dropped.
func AccumulateHoldingsByAccount(txs []*Transaction) map[string]map[string]decimal.Decimal {
	byAccount := make(map[string]map[string]decimal.Decimal)

	add := func(accountID, assetID string, delta decimal.Decimal) {
		m, ok := byAccount[accountID]
		if !ok {
			m = make(map[string]decimal.Decimal)
			byAccount[accountID] = m
		}
		m[assetID] = m[assetID].Add(delta)
	}

	for _, t := range txs {
		if t.AccountID == "" {
			continue
		}

		switch t.Kind {
		case KindTrade, KindRebalance:
			if t.HasFromLeg() {
				add(t.AccountID, t.FromAssetID, t.FromAmount.Neg())
			}
			if t.HasToLeg() {
				add(t.AccountID, t.ToAssetID, t.ToAmount)
			}
		case KindExpense:
			if t.HasFromLeg() {
				add(t.AccountID, t.FromAssetID, t.FromAmount.Neg())
			}
		case KindIncome:
			if t.HasToLeg() {
				add(t.AccountID, t.ToAssetID, t.ToAmount)
			}
		}
	}

	cleaned := make(map[string]map[string]decimal.Decimal, len(byAccount))
	for accountID, m := range byAccount {
		filtered := dropDust(m)
		if len(filtered) > 0 {
			cleaned[accountID] = filtered
		}
	}

	return cleaned
}

func dropDust(qty map[string]decimal.Decimal) map[string]decimal.Decimal {
	cleaned := make(map[string]decimal.Decimal, len(qty))
	for assetID, q := range qty {
		if q.Abs().GreaterThan(DustThreshold) {
			cleaned[assetID] = q
		}
	}

	return cleaned
}
