package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestionbanque/bankcore/internal/domain"
	"github.com/gestionbanque/bankcore/internal/infrastructure/metrics"
)

// TransferUseCase executes one transfer as an atomic, lock-protected
// operation. Preconditions are checked before any lock is taken; the
// balance check itself is delegated to the store so it happens at commit
// time under row locks.
type TransferUseCase struct {
	store LedgerStore
	locks LockManager
	idGen IDGenerator
	cache Cache
}

// NewTransferUseCase creates a new TransferUseCase. cache may be nil.
func NewTransferUseCase(store LedgerStore, locks LockManager, idGen IDGenerator, cache Cache) *TransferUseCase {
	return &TransferUseCase{
		store: store,
		locks: locks,
		idGen: idGen,
		cache: cache,
	}
}

// TransferInput represents input for a transfer.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
}

// TransferResult holds the two ledger records produced by a transfer.
type TransferResult struct {
	TransferID string
	Debit      *domain.Transaction
	Credit     *domain.Transaction
}

// Transfer moves amount from one account to another. On any failure no
// partial state is persisted and the store error propagates unchanged.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if input.FromAccountID == input.ToAccountID {
		metrics.TransferErrors.WithLabelValues(metrics.ErrorType(domain.ErrSameAccount)).Inc()
		return nil, domain.ErrSameAccount
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		metrics.TransferErrors.WithLabelValues(metrics.ErrorType(domain.ErrInvalidAmount)).Inc()
		return nil, domain.ErrInvalidAmount
	}

	start := time.Now()
	transferID := uc.idGen.Generate()

	var debit, credit *domain.Transaction

	err := uc.locks.WithLockedPair(ctx, input.FromAccountID, input.ToAccountID, func() error {
		var err error
		debit, credit, err = uc.store.ApplyTransfer(ctx, input.FromAccountID, input.ToAccountID, input.Amount, transferID, time.Now().UTC())

		return err
	})
	if err != nil {
		metrics.TransferErrors.WithLabelValues(metrics.ErrorType(err)).Inc()
		return nil, err
	}

	uc.invalidateBalances(ctx, input.FromAccountID, input.ToAccountID)

	metrics.TransfersCreated.Inc()
	metrics.TransferDuration.Observe(time.Since(start).Seconds())

	return &TransferResult{
		TransferID: transferID,
		Debit:      debit,
		Credit:     credit,
	}, nil
}

// invalidateBalances drops cached balances after a committed transfer.
// Cache failures are ignored: the TTL bounds staleness.
func (uc *TransferUseCase) invalidateBalances(ctx context.Context, ids ...string) {
	if uc.cache == nil {
		return
	}

	for _, id := range ids {
		_ = uc.cache.Delete(ctx, BalanceCacheKey(id))
	}
}

// BalanceCacheKey returns the cache key for an account balance.
func BalanceCacheKey(accountID string) string {
	return "balance:" + accountID
}
