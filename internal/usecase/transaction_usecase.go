package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finfolio/internal/domain"
)

// TransactionUseCase records and queries transaction log events.
type TransactionUseCase struct {
	txnRepo      TransactionRepository
	categoryRepo CategoryRepository
	idGen        IDGenerator
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(txnRepo TransactionRepository, categoryRepo CategoryRepository, idGen IDGenerator) *TransactionUseCase {
	return &TransactionUseCase{
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
		idGen:        idGen,
	}
}

// RecordExpenseInput represents input for a quick expense entry.
type RecordExpenseInput struct {
	OccurredAt *time.Time
	UserID     string
	AccountID  string
	CategoryID string
	AssetID    string
	Merchant   string
	Note       string
	Amount     decimal.Decimal
}

// RecordExpense records spending of Amount in AssetID.
func (uc *TransactionUseCase) RecordExpense(ctx context.Context, input RecordExpenseInput) (*domain.Transaction, error) {
	txn := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		UserID:      input.UserID,
		AccountID:   input.AccountID,
		Kind:        domain.KindExpense,
		CategoryID:  input.CategoryID,
		FromAssetID: input.AssetID,
		FromAmount:  input.Amount,
		Merchant:    input.Merchant,
		Note:        input.Note,
		OccurredAt:  occurredAt(input.OccurredAt),
		CreatedAt:   time.Now().UTC(),
	}

	return uc.record(ctx, txn)
}

// RecordTradeInput represents input for an asset exchange.
type RecordTradeInput struct {
	OccurredAt  *time.Time
	UserID      string
	AccountID   string
	FromAssetID string
	ToAssetID   string
	FeeAssetID  string
	Note        string
	FromAmount  decimal.Decimal
	ToAmount    decimal.Decimal
	FeeAmount   decimal.Decimal
}

// RecordTrade records an exchange of FromAmount of the source asset for
// ToAmount of the destination asset. The optional fee leg is stored but
// does not participate in holdings aggregation.
func (uc *TransactionUseCase) RecordTrade(ctx context.Context, input RecordTradeInput) (*domain.Transaction, error) {
	txn := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		UserID:      input.UserID,
		AccountID:   input.AccountID,
		Kind:        domain.KindTrade,
		FromAssetID: input.FromAssetID,
		FromAmount:  input.FromAmount,
		ToAssetID:   input.ToAssetID,
		ToAmount:    input.ToAmount,
		FeeAssetID:  input.FeeAssetID,
		FeeAmount:   input.FeeAmount,
		Note:        input.Note,
		OccurredAt:  occurredAt(input.OccurredAt),
		CreatedAt:   time.Now().UTC(),
	}

	return uc.record(ctx, txn)
}

// RecordIncomeInput represents input for an income entry.
type RecordIncomeInput struct {
	OccurredAt *time.Time
	UserID     string
	AccountID  string
	CategoryID string
	AssetID    string
	Note       string
	Amount     decimal.Decimal
}

// RecordIncome records Amount received into AssetID.
func (uc *TransactionUseCase) RecordIncome(ctx context.Context, input RecordIncomeInput) (*domain.Transaction, error) {
	txn := &domain.Transaction{
		ID:         uc.idGen.Generate(),
		UserID:     input.UserID,
		AccountID:  input.AccountID,
		Kind:       domain.KindIncome,
		CategoryID: input.CategoryID,
		ToAssetID:  input.AssetID,
		ToAmount:   input.Amount,
		Note:       input.Note,
		OccurredAt: occurredAt(input.OccurredAt),
		CreatedAt:  time.Now().UTC(),
	}

	return uc.record(ctx, txn)
}

func (uc *TransactionUseCase) record(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error) {
	if err := txn.Validate(); err != nil {
		return nil, err
	}
	if err := uc.txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	return txn, nil
}

// ListExpensesByDay returns the user's expenses for one calendar day,
// optionally narrowed to a category by name. An unknown category name
// yields an empty result, not an error.
func (uc *TransactionUseCase) ListExpensesByDay(ctx context.Context, userID string, day time.Time, categoryName string) ([]*domain.Transaction, error) {
	categoryID := ""
	if categoryName != "" {
		category, err := uc.categoryRepo.GetByName(ctx, categoryName)
		if err != nil {
			if errors.Is(err, domain.ErrCategoryNotFound) {
				return nil, nil
			}
			return nil, err
		}
		categoryID = category.ID
	}

	from, to := dayBounds(day)

	return uc.txnRepo.ListExpensesByRange(ctx, userID, from, to, categoryID)
}

// DailyCategoryTotals sums the day's expenses for each default expense
// category. Categories that do not exist contribute zero.
func (uc *TransactionUseCase) DailyCategoryTotals(ctx context.Context, userID string, day time.Time) (map[string]decimal.Decimal, error) {
	from, to := dayBounds(day)

	totals := make(map[string]decimal.Decimal, len(domain.DefaultExpenseCategories))
	for _, name := range domain.DefaultExpenseCategories {
		category, err := uc.categoryRepo.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, domain.ErrCategoryNotFound) {
				totals[name] = decimal.Zero
				continue
			}
			return nil, err
		}

		sum, err := uc.txnRepo.SumExpenses(ctx, userID, category.ID, from, to)
		if err != nil {
			return nil, err
		}
		totals[name] = sum
	}

	return totals, nil
}

func occurredAt(ts *time.Time) time.Time {
	if ts != nil {
		return ts.UTC()
	}
	return time.Now().UTC()
}

func dayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)

	return start, end
}
