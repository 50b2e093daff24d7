package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Portfolio groups target allocations for one user.
type Portfolio struct {
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ID           string
	UserID       string
	Name         string
	BaseCurrency string
}

// Allocation is a target weight for one asset within one portfolio.
// Weights across a portfolio are not required to sum to 1; callers are
// expected to keep them consistent. Min/max/drift bounds are stored but
// not interpreted by the planner.
type Allocation struct {
	CreatedAt      time.Time
	MinWeight      *decimal.Decimal
	MaxWeight      *decimal.Decimal
	DriftThreshold *decimal.Decimal
	ID             string
	PortfolioID    string
	AssetID        string
	TargetWeight   decimal.Decimal
}

// Validate checks the target weight range.
func (a *Allocation) Validate() error {
	if a.TargetWeight.IsNegative() || a.TargetWeight.GreaterThan(decimal.NewFromInt(1)) {
		return ErrInvalidWeight
	}

	return nil
}
