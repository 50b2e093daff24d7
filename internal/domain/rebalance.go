package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// balanceEpsilon is the value delta below which an allocated asset is
// considered balanced and a pairing side is considered exhausted.
var balanceEpsilon = decimal.New(1, -6) // 1e-6

// RebalanceLeg is one proposed transfer: sell QuantityFrom of the source
// asset and move the proceeds into the destination asset.
type RebalanceLeg struct {
	FromAssetID  string
	ToAssetID    string
	QuantityFrom decimal.Decimal
}

// RebalancePlan is the transient result of comparing current holdings
// against a portfolio's target weights.
type RebalancePlan struct {
	CurrentWeights map[string]decimal.Decimal
	TargetWeights  map[string]decimal.Decimal
	TotalValue     decimal.Decimal
	Legs           []RebalanceLeg
}

// ValueAssets prices the requested assets into monetary values. Assets
// absent from the price map contribute nothing and are omitted from the
// result; that distinguishes "no price data" from a legitimately zero
// value. The total sums included values only.
func ValueAssets(assetIDs []string, quantities, prices map[string]decimal.Decimal) (decimal.Decimal, map[string]decimal.Decimal) {
	values := make(map[string]decimal.Decimal, len(assetIDs))
	total := decimal.Zero

	for _, assetID := range assetIDs {
		price, ok := prices[assetID]
		if !ok {
			continue
		}
		v := quantities[assetID].Mul(price)
		values[assetID] = v
		total = total.Add(v)
	}

	return total, values
}

type imbalance struct {
	assetID string
	value   decimal.Decimal
}

// PlanRebalance compares current holdings against target weights and
// proposes transfer legs. The pairing is a greedy single pass matching the
// largest remaining source against the largest remaining destination; it
// is a heuristic, not a transfer-minimizing optimum. The slice order of
// allocs is the deterministic tie-break for equal imbalances.
//
// A portfolio with no allocations, or with no priced holdings among the
// allocated assets, yields an empty plan rather than an error. Allocated
// assets with no usable price never appear in CurrentWeights; a missing or
// non-positive price on a source asset terminates the pairing loop,
// leaving remaining imbalances unaddressed.
func PlanRebalance(allocs []*Allocation, quantities, prices map[string]decimal.Decimal) *RebalancePlan {
	plan := &RebalancePlan{
		CurrentWeights: make(map[string]decimal.Decimal),
		TargetWeights:  make(map[string]decimal.Decimal),
		TotalValue:     decimal.Zero,
	}
	if len(allocs) == 0 {
		return plan
	}

	assetIDs := make([]string, 0, len(allocs))
	for _, a := range allocs {
		assetIDs = append(assetIDs, a.AssetID)
		plan.TargetWeights[a.AssetID] = a.TargetWeight
	}

	// Only assets in the allocation set participate; other holdings are
	// ignored.
	total, values := ValueAssets(assetIDs, quantities, prices)
	if total.Sign() <= 0 {
		return plan
	}
	plan.TotalValue = total

	for _, assetID := range assetIDs {
		if v, ok := values[assetID]; ok {
			plan.CurrentWeights[assetID] = v.Div(total)
		}
	}

	var sources, dests []imbalance
	for _, assetID := range assetIDs {
		// Unheld or unpriced assets value to zero here, so their full
		// target becomes a destination delta.
		delta := plan.TargetWeights[assetID].Mul(total).Sub(values[assetID])
		switch {
		case delta.LessThan(balanceEpsilon.Neg()):
			sources = append(sources, imbalance{assetID: assetID, value: delta.Neg()})
		case delta.GreaterThan(balanceEpsilon):
			dests = append(dests, imbalance{assetID: assetID, value: delta})
		}
	}

	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].value.GreaterThan(sources[j].value)
	})
	sort.SliceStable(dests, func(i, j int) bool {
		return dests[i].value.GreaterThan(dests[j].value)
	})

	si, di := 0, 0
	for si < len(sources) && di < len(dests) {
		src := &sources[si]
		dst := &dests[di]

		moveValue := decimal.Min(src.value, dst.value)

		fromPrice, ok := prices[src.assetID]
		if !ok || fromPrice.Sign() <= 0 {
			break
		}

		plan.Legs = append(plan.Legs, RebalanceLeg{
			FromAssetID:  src.assetID,
			ToAssetID:    dst.assetID,
			QuantityFrom: moveValue.Div(fromPrice),
		})

		src.value = src.value.Sub(moveValue)
		dst.value = dst.value.Sub(moveValue)
		if src.value.LessThanOrEqual(balanceEpsilon) {
			si++
		}
		if dst.value.LessThanOrEqual(balanceEpsilon) {
			di++
		}
	}

	return plan
}
