package usecase

import (
	"context"
)

// LedgerUseCase handles ledger-wide verification.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{ledgerRepo: ledgerRepo}
}

// ConsistencyReport is the result of a ledger-wide sum invariant check.
type ConsistencyReport struct {
	Consistent         bool
	MismatchedAccounts []string
}

// CheckConsistency verifies that every account balance equals its opening
// balance plus the sum of its ledger records.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	mismatched, err := uc.ledgerRepo.CheckConsistency(ctx)
	if err != nil {
		return nil, err
	}

	return &ConsistencyReport{
		Consistent:         len(mismatched) == 0,
		MismatchedAccounts: mismatched,
	}, nil
}
