package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound        = errors.New("account not found")
	ErrDuplicateAccountNumber = errors.New("account number already exists")
	ErrAccountHasTransactions = errors.New("account has transaction history")

	// Transfer errors
	ErrSameAccount       = errors.New("cannot transfer to same account")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Locking errors. ErrLockTimeout is retryable: the caller may repeat
	// the same transfer once contention clears.
	ErrLockTimeout = errors.New("timed out waiting for account locks")

	// Pagination errors
	ErrInvalidPageRequest = errors.New("invalid page request")
)
