package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/finfolio/internal/domain"
)

// TransactionRepository implements persistence for the append-only
// transaction log.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create appends a transaction to the log
func (r *TransactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	query := `
		INSERT INTO transactions (
			id, user_id, account_id, kind, category_id,
			from_asset_id, from_amount, to_asset_id, to_amount,
			fee_asset_id, fee_amount, merchant, note,
			occurred_at, created_at
		)
		VALUES (
			$1, $2, NULLIF($3, ''), $4, NULLIF($5, ''),
			NULLIF($6, ''), $7, NULLIF($8, ''), $9,
			NULLIF($10, ''), $11, $12, $13,
			$14, $15
		)
	`

	_, err := r.pool.Exec(ctx, query,
		txn.ID,
		txn.UserID,
		txn.AccountID,
		txn.Kind,
		txn.CategoryID,
		txn.FromAssetID,
		txn.FromAmount,
		txn.ToAssetID,
		txn.ToAmount,
		txn.FeeAssetID,
		txn.FeeAmount,
		txn.Merchant,
		txn.Note,
		txn.OccurredAt,
		txn.CreatedAt,
	)

	return err
}

// ListByUserAndKinds returns the user's transactions filtered to kinds.
// Holdings replay does not depend on order, so none is imposed.
func (r *TransactionRepository) ListByUserAndKinds(ctx context.Context, userID string, kinds []domain.Kind) ([]*domain.Transaction, error) {
	query := `
		SELECT id, user_id, COALESCE(account_id, ''), kind, COALESCE(category_id, ''),
		       COALESCE(from_asset_id, ''), from_amount, COALESCE(to_asset_id, ''), to_amount,
		       COALESCE(fee_asset_id, ''), fee_amount, merchant, note,
		       occurred_at, created_at
		FROM transactions
		WHERE user_id = $1 AND kind = ANY($2)
	`

	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}

	rows, err := r.pool.Query(ctx, query, userID, names)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListExpensesByRange returns expenses within [from, to] ordered by
// occurrence time. categoryID narrows the result when non-empty.
func (r *TransactionRepository) ListExpensesByRange(ctx context.Context, userID string, from, to time.Time, categoryID string) ([]*domain.Transaction, error) {
	query := `
		SELECT id, user_id, COALESCE(account_id, ''), kind, COALESCE(category_id, ''),
		       COALESCE(from_asset_id, ''), from_amount, COALESCE(to_asset_id, ''), to_amount,
		       COALESCE(fee_asset_id, ''), fee_amount, merchant, note,
		       occurred_at, created_at
		FROM transactions
		WHERE user_id = $1
		  AND kind = 'expense'
		  AND occurred_at BETWEEN $2 AND $3
		  AND ($4 = '' OR category_id = $4)
		ORDER BY occurred_at, id
	`

	rows, err := r.pool.Query(ctx, query, userID, from, to, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// SumExpenses sums expense source amounts within [from, to] for one
// category.
func (r *TransactionRepository) SumExpenses(ctx context.Context, userID, categoryID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(from_amount), 0)
		FROM transactions
		WHERE user_id = $1
		  AND kind = 'expense'
		  AND category_id = $2
		  AND occurred_at BETWEEN $3 AND $4
	`

	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, query, userID, categoryID, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

func scanTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var txns []*domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		err := rows.Scan(
			&txn.ID,
			&txn.UserID,
			&txn.AccountID,
			&txn.Kind,
			&txn.CategoryID,
			&txn.FromAssetID,
			&txn.FromAmount,
			&txn.ToAssetID,
			&txn.ToAmount,
			&txn.FeeAssetID,
			&txn.FeeAmount,
			&txn.Merchant,
			&txn.Note,
			&txn.OccurredAt,
			&txn.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		txns = append(txns, &txn)
	}

	return txns, rows.Err()
}
