package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/gestionbanque/bankcore/internal/domain"
)

const (
	listTransactionsByAccountSQL = `SELECT id, account_id, transfer_id, amount, created_at
		FROM transactions WHERE account_id = $1
		ORDER BY created_at, id LIMIT $2 OFFSET $3`

	sumTransactionsByAccountSQL = `SELECT COALESCE(SUM(amount), 0)
		FROM transactions WHERE account_id = $1`
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	db DB
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return newTransactionRepositoryWithDB(pool)
}

func newTransactionRepositoryWithDB(db DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// ListByAccount lists an account's transactions in chronological order.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.db.Query(ctx, listTransactionsByAccountSQL, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0, limit)
	for rows.Next() {
		var (
			txn       domain.Transaction
			amount    pgtype.Numeric
			createdAt pgtype.Timestamptz
		)

		if err := rows.Scan(&txn.ID, &txn.AccountID, &txn.TransferID, &amount, &createdAt); err != nil {
			return nil, err
		}

		txn.Amount = numericToDecimal(amount)
		txn.CreatedAt = createdAt.Time

		transactions = append(transactions, &txn)
	}

	return transactions, rows.Err()
}

// SumByAccount returns the signed sum of all transaction amounts
// recorded for an account. Zero when the account has no history.
func (r *TransactionRepository) SumByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	var sum pgtype.Numeric
	if err := r.db.QueryRow(ctx, sumTransactionsByAccountSQL, accountID).Scan(&sum); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}
