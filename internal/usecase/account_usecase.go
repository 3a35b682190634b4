package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestionbanque/bankcore/internal/domain"
	"github.com/gestionbanque/bankcore/internal/infrastructure/metrics"
)

// AccountUseCase handles account lifecycle and reads. Balance mutation is
// not here: transfers are the only path that writes balances.
type AccountUseCase struct {
	accountRepo AccountRepository
	locks       LockManager
	idGen       IDGenerator
	cache       Cache
}

// NewAccountUseCase creates a new AccountUseCase. cache may be nil.
func NewAccountUseCase(accountRepo AccountRepository, locks LockManager, idGen IDGenerator, cache Cache) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		locks:       locks,
		idGen:       idGen,
		cache:       cache,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	AccountNumber  string
	HolderName     string
	OpeningBalance decimal.Decimal
}

// CreateAccount creates a new account. The opening balance is an
// administrative assignment, not a transfer.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountNumber(input.AccountNumber); err != nil {
		return nil, err
	}

	if err := domain.ValidateHolderName(input.HolderName); err != nil {
		return nil, err
	}

	if err := domain.ValidateOpeningBalance(input.OpeningBalance); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:             uc.idGen.Generate(),
		AccountNumber:  input.AccountNumber,
		HolderName:     input.HolderName,
		Balance:        input.OpeningBalance,
		OpeningBalance: input.OpeningBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	metrics.AccountsCreated.Inc()

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetBalance retrieves the current balance, serving from cache when warm.
func (uc *AccountUseCase) GetBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, BalanceCacheKey(id)); err == nil {
			if balance, err := decimal.NewFromString(cached); err == nil {
				return balance, nil
			}
		}
	}

	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, BalanceCacheKey(id), account.Balance.String(), BalanceCacheTTL)
	}

	return account.Balance, nil
}

// ListAccountsInput represents offset pagination input.
type ListAccountsInput struct {
	Page int
	Size int
}

// ListAccounts lists accounts ordered by id.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset, err := pageToLimitOffset(input.Page, input.Size)
	if err != nil {
		return nil, err
	}

	return uc.accountRepo.List(ctx, limit, offset)
}

// DeleteAccount removes an account. Deletion is rejected when ledger
// records reference the account, and holds the account lock so it cannot
// interleave with a transfer touching the same account.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id string) error {
	err := uc.locks.WithLocked(ctx, id, func() error {
		return uc.accountRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, BalanceCacheKey(id))
	}

	metrics.AccountsDeleted.Inc()

	return nil
}

// pageToLimitOffset validates a page request and converts it to the
// limit/offset form the repositories use.
func pageToLimitOffset(page, size int) (limit, offset int, err error) {
	if err := domain.ValidatePageRequest(page, size); err != nil {
		return 0, 0, err
	}

	if size == 0 {
		size = DefaultPageSize
	}

	if size > MaxPageSize {
		size = MaxPageSize
	}

	return size, page * size, nil
}
