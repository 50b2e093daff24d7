package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a transaction. Direction is implied by the kind and by
// the from/to role of each leg; amounts are never stored signed.
type Kind string

const (
	KindExpense   Kind = "expense"
	KindIncome    Kind = "income"
	KindTrade     Kind = "trade"
	KindTransfer  Kind = "transfer"
	KindRebalance Kind = "rebalance"
)

var validKinds = map[Kind]bool{
	KindExpense:   true,
	KindIncome:    true,
	KindTrade:     true,
	KindTransfer:  true,
	KindRebalance: true,
}

// IsValid checks if the kind is a known transaction kind.
func (k Kind) IsValid() bool {
	return validKinds[k]
}

// Transaction is an immutable event in the cash log. A leg is present when
// its asset ID is non-empty and its amount is positive; optional fields
// (account, category, fee leg, merchant, note) are empty when absent.
type Transaction struct {
	OccurredAt  time.Time
	CreatedAt   time.Time
	ID          string
	UserID      string
	AccountID   string
	Kind        Kind
	CategoryID  string
	FromAssetID string
	FromAmount  decimal.Decimal
	ToAssetID   string
	ToAmount    decimal.Decimal
	FeeAssetID  string
	FeeAmount   decimal.Decimal
	Merchant    string
	Note        string
}

// HasFromLeg reports whether the transaction carries a source leg.
func (t *Transaction) HasFromLeg() bool {
	return t.FromAssetID != "" && t.FromAmount.IsPositive()
}

// HasToLeg reports whether the transaction carries a destination leg.
func (t *Transaction) HasToLeg() bool {
	return t.ToAssetID != "" && t.ToAmount.IsPositive()
}

// Validate checks kind-specific leg requirements and amount signs.
func (t *Transaction) Validate() error {
	if !t.Kind.IsValid() {
		return ErrInvalidKind
	}

	if t.FromAmount.IsNegative() || t.ToAmount.IsNegative() || t.FeeAmount.IsNegative() {
		return ErrInvalidAmount
	}

	switch t.Kind {
	case KindExpense:
		// Spending reduces the asset used to pay; an expense has no
		// destination asset in this model.
		if !t.HasFromLeg() {
			return ErrMissingFromLeg
		}
		if t.ToAssetID != "" {
			return ErrUnexpectedToLeg
		}
	case KindIncome:
		if !t.HasToLeg() {
			return ErrMissingToLeg
		}
		if t.FromAssetID != "" {
			return ErrUnexpectedFromLeg
		}
	case KindTrade, KindTransfer, KindRebalance:
		if !t.HasFromLeg() {
			return ErrMissingFromLeg
		}
		if !t.HasToLeg() {
			return ErrMissingToLeg
		}
	}

	return nil
}
