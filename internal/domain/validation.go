package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAccountNumber  = errors.New("invalid account number")
	ErrInvalidHolderName     = errors.New("invalid holder name")
	ErrNegativeOpeningBalance = errors.New("opening balance must not be negative")
)

// Validation constants
const (
	MaxAccountNumberLength = 20
	MaxHolderNameLength    = 100
)

// ValidateAccountNumber validates the human-facing account number.
func ValidateAccountNumber(number string) error {
	number = strings.TrimSpace(number)

	if number == "" {
		return fmt.Errorf("%w: must not be empty", ErrInvalidAccountNumber)
	}

	if len(number) > MaxAccountNumberLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidAccountNumber, MaxAccountNumberLength)
	}

	return nil
}

// ValidateHolderName validates the account holder name.
func ValidateHolderName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: must not be empty", ErrInvalidHolderName)
	}

	if len(name) > MaxHolderNameLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidHolderName, MaxHolderNameLength)
	}

	return nil
}

// ValidateOpeningBalance validates the administrative opening balance.
func ValidateOpeningBalance(balance decimal.Decimal) error {
	if balance.IsNegative() {
		return ErrNegativeOpeningBalance
	}

	return nil
}

// ValidatePageRequest validates offset pagination parameters.
// Size zero falls back to the caller's default.
func ValidatePageRequest(page, size int) error {
	if page < 0 {
		return fmt.Errorf("%w: page must not be negative", ErrInvalidPageRequest)
	}

	if size < 0 {
		return fmt.Errorf("%w: size must not be negative", ErrInvalidPageRequest)
	}

	return nil
}
