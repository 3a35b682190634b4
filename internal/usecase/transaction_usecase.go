package usecase

import (
	"context"

	"github.com/gestionbanque/bankcore/internal/domain"
)

// TransactionUseCase handles ledger record reads.
type TransactionUseCase struct {
	transactionRepo TransactionRepository
	accountRepo     AccountRepository
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(transactionRepo TransactionRepository, accountRepo AccountRepository) *TransactionUseCase {
	return &TransactionUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
	}
}

// ListByAccountInput represents input for listing an account's records.
type ListByAccountInput struct {
	AccountID string
	Page      int
	Size      int
}

// ListByAccount lists ledger records for an account ordered by creation
// time, id tie-break. Fails with ErrAccountNotFound for unknown accounts
// rather than returning an empty page.
func (uc *TransactionUseCase) ListByAccount(ctx context.Context, input ListByAccountInput) ([]*domain.Transaction, error) {
	limit, offset, err := pageToLimitOffset(input.Page, input.Size)
	if err != nil {
		return nil, err
	}

	if _, err := uc.accountRepo.GetByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	return uc.transactionRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}

// VerifyAccount checks the sum invariant for one account: opening balance
// plus the sum of its ledger records equals the current balance.
func (uc *TransactionUseCase) VerifyAccount(ctx context.Context, accountID string) (bool, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return false, err
	}

	sum, err := uc.transactionRepo.SumByAccount(ctx, accountID)
	if err != nil {
		return false, err
	}

	return account.OpeningBalance.Add(sum).Equal(account.Balance), nil
}
