package postgres

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/gestionbanque/bankcore/internal/domain"
	"github.com/gestionbanque/bankcore/internal/usecase"
)

const (
	lockPairForUpdateSQL = `SELECT id, balance::text FROM accounts
		WHERE id = ANY($1) ORDER BY id FOR UPDATE`

	updateBalanceSQL = `UPDATE accounts SET balance = $2, updated_at = $3 WHERE id = $1`

	insertTransactionSQL = `INSERT INTO transactions (id, account_id, transfer_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	checkConsistencySQL = `SELECT a.id FROM accounts a
		LEFT JOIN transactions t ON t.account_id = a.id
		GROUP BY a.id, a.balance, a.opening_balance
		HAVING a.balance <> a.opening_balance + COALESCE(SUM(t.amount), 0)
		ORDER BY a.id`
)

// LedgerStore implements usecase.LedgerStore and usecase.LedgerRepository
// on PostgreSQL. Both balance updates and the paired transaction rows are
// written in one database transaction, with row locks taken in sorted
// account ID order to match the in-process lock ordering.
type LedgerStore struct {
	db      DB
	idGen   usecase.IDGenerator
	retrier *Retrier
}

// NewLedgerStore creates a new LedgerStore.
func NewLedgerStore(pool *pgxpool.Pool, idGen usecase.IDGenerator) *LedgerStore {
	return newLedgerStoreWithDB(pool, idGen)
}

func newLedgerStoreWithDB(db DB, idGen usecase.IDGenerator) *LedgerStore {
	return &LedgerStore{
		db:      db,
		idGen:   idGen,
		retrier: NewRetrier(),
	}
}

// ApplyTransfer atomically moves amount between two accounts and records
// the paired debit and credit rows. Balances are re-checked under the row
// locks, so a stale read outside the transaction can never overdraw the
// source account. Deadlocks and serialization failures are retried.
func (s *LedgerStore) ApplyTransfer(ctx context.Context, fromID, toID string, amount decimal.Decimal, transferID string, now time.Time) (*domain.Transaction, *domain.Transaction, error) {
	var debit, credit *domain.Transaction

	err := s.retrier.Retry(ctx, func() error {
		var err error
		debit, credit, err = s.applyTransferOnce(ctx, fromID, toID, amount, transferID, now)

		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return debit, credit, nil
}

func (s *LedgerStore) applyTransferOnce(ctx context.Context, fromID, toID string, amount decimal.Decimal, transferID string, now time.Time) (*domain.Transaction, *domain.Transaction, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ids := []string{fromID, toID}
	sort.Strings(ids)

	balances, err := lockBalances(ctx, tx, ids)
	if err != nil {
		return nil, nil, err
	}

	fromBalance, ok := balances[fromID]
	if !ok {
		return nil, nil, domain.ErrAccountNotFound
	}

	toBalance, ok := balances[toID]
	if !ok {
		return nil, nil, domain.ErrAccountNotFound
	}

	if fromBalance.LessThan(amount) {
		return nil, nil, domain.ErrInsufficientFunds
	}

	updatedAt := timeToPgTimestamptz(now)
	if _, err := tx.Exec(ctx, updateBalanceSQL, fromID, decimalToNumeric(fromBalance.Sub(amount)), updatedAt); err != nil {
		return nil, nil, err
	}

	if _, err := tx.Exec(ctx, updateBalanceSQL, toID, decimalToNumeric(toBalance.Add(amount)), updatedAt); err != nil {
		return nil, nil, err
	}

	debit := &domain.Transaction{
		ID:         s.idGen.Generate(),
		AccountID:  fromID,
		TransferID: transferID,
		Amount:     amount.Neg(),
		CreatedAt:  now,
	}

	credit := &domain.Transaction{
		ID:         s.idGen.Generate(),
		AccountID:  toID,
		TransferID: transferID,
		Amount:     amount,
		CreatedAt:  now,
	}

	for _, txn := range []*domain.Transaction{debit, credit} {
		if _, err := tx.Exec(ctx, insertTransactionSQL,
			txn.ID, txn.AccountID, txn.TransferID, decimalToNumeric(txn.Amount), timeToPgTimestamptz(txn.CreatedAt),
		); err != nil {
			return nil, nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return debit, credit, nil
}

// CheckConsistency returns the IDs of accounts whose balance does not
// equal their opening balance plus the sum of their recorded amounts.
func (s *LedgerStore) CheckConsistency(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, checkConsistencySQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mismatched []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		mismatched = append(mismatched, id)
	}

	return mismatched, rows.Err()
}

func lockBalances(ctx context.Context, tx pgx.Tx, ids []string) (map[string]decimal.Decimal, error) {
	rows, err := tx.Query(ctx, lockPairForUpdateSQL, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make(map[string]decimal.Decimal, len(ids))
	for rows.Next() {
		var (
			id      string
			balance string
		)

		if err := rows.Scan(&id, &balance); err != nil {
			return nil, err
		}

		d, err := decimal.NewFromString(balance)
		if err != nil {
			return nil, err
		}

		balances[id] = d
	}

	return balances, rows.Err()
}
