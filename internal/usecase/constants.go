package usecase

import (
	"time"

	"github.com/iho/finfolio/internal/domain"
)

const (
	// DefaultTransactionTimeout is the maximum duration for a database
	// transaction. This prevents long-running transactions from blocking
	// tables.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultBaseCurrency is used when neither the request nor the
	// portfolio specifies one.
	DefaultBaseCurrency = "USD"
)

// holdingKinds feed the global holdings view.
var holdingKinds = []domain.Kind{domain.KindTrade, domain.KindRebalance}

// accountKinds feed the per-account holdings view.
var accountKinds = []domain.Kind{
	domain.KindTrade,
	domain.KindRebalance,
	domain.KindExpense,
	domain.KindIncome,
}
