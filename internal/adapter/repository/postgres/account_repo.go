package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestionbanque/bankcore/internal/domain"
)

const pgErrUniqueViolation = "23505"

const (
	accountColumns = `id, account_number, holder_name, balance, opening_balance, created_at, updated_at`

	insertAccountSQL = `INSERT INTO accounts (id, account_number, holder_name, balance, opening_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	getAccountByIDSQL = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	listAccountsSQL = `SELECT ` + accountColumns + ` FROM accounts ORDER BY id LIMIT $1 OFFSET $2`

	lockAccountSQL = `SELECT 1 FROM accounts WHERE id = $1 FOR UPDATE`

	accountHasTransactionsSQL = `SELECT EXISTS (SELECT 1 FROM transactions WHERE account_id = $1)`

	deleteAccountSQL = `DELETE FROM accounts WHERE id = $1`
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	db DB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return newAccountRepositoryWithDB(pool)
}

func newAccountRepositoryWithDB(db DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.db.Exec(ctx, insertAccountSQL,
		account.ID,
		account.AccountNumber,
		account.HolderName,
		decimalToNumeric(account.Balance),
		decimalToNumeric(account.OpeningBalance),
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrDuplicateAccountNumber
		}

		return err
	}

	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	account, err := scanAccount(r.db.QueryRow(ctx, getAccountByIDSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return account, nil
}

// List lists accounts ordered by ID with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.db.Query(ctx, listAccountsSQL, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0, limit)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// Delete removes an account. The row is locked first so a concurrent
// transfer cannot append history between the emptiness check and the
// delete. Accounts with recorded transactions are never removed.
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var one int
	if err := tx.QueryRow(ctx, lockAccountSQL, id).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrAccountNotFound
		}

		return err
	}

	var hasTransactions bool
	if err := tx.QueryRow(ctx, accountHasTransactionsSQL, id).Scan(&hasTransactions); err != nil {
		return err
	}

	if hasTransactions {
		return domain.ErrAccountHasTransactions
	}

	if _, err := tx.Exec(ctx, deleteAccountSQL, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account            domain.Account
		balance            pgtype.Numeric
		openingBalance     pgtype.Numeric
		createdAt, updated pgtype.Timestamptz
	)

	err := row.Scan(
		&account.ID,
		&account.AccountNumber,
		&account.HolderName,
		&balance,
		&openingBalance,
		&createdAt,
		&updated,
	)
	if err != nil {
		return nil, err
	}

	account.Balance = numericToDecimal(balance)
	account.OpeningBalance = numericToDecimal(openingBalance)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updated.Time

	return &account, nil
}
