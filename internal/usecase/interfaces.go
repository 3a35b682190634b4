package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestionbanque/bankcore/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	// Delete removes an account. It fails with ErrAccountHasTransactions
	// when ledger records reference the account.
	Delete(ctx context.Context, id string) error
}

// TransactionRepository defines read access to ledger records.
// Records are append-only: the only writer is LedgerStore.ApplyTransfer.
type TransactionRepository interface {
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	SumByAccount(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// LedgerStore is the single mutation path for balances. ApplyTransfer
// debits fromID, credits toID and appends the paired records as one
// atomic unit, re-validating sufficiency at commit time.
type LedgerStore interface {
	ApplyTransfer(ctx context.Context, fromID, toID string, amount decimal.Decimal, transferID string, now time.Time) (debit, credit *domain.Transaction, err error)
}

// LedgerRepository defines ledger-wide verification queries.
type LedgerRepository interface {
	// CheckConsistency returns the ids of accounts whose balance does not
	// equal opening balance plus the sum of their ledger records.
	CheckConsistency(ctx context.Context) ([]string, error)
}

// LockManager grants exclusive in-process locks over account identifiers.
// Pair locks are always acquired in a fixed global order so that two
// transfers moving funds in opposite directions cannot deadlock.
type LockManager interface {
	WithLockedPair(ctx context.Context, idA, idB string, fn func() error) error
	WithLocked(ctx context.Context, id string, fn func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
