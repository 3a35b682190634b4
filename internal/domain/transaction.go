package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single immutable ledger record against one account.
// A transfer produces exactly two of them, one debit and one credit with
// equal magnitude, linked by a shared TransferID.
type Transaction struct {
	ID         string
	AccountID  string
	TransferID string
	Amount     decimal.Decimal
	CreatedAt  time.Time
}

// IsDebit reports whether the record removes funds from its account.
func (t *Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

// IsCredit reports whether the record adds funds to its account.
func (t *Transaction) IsCredit() bool {
	return t.Amount.IsPositive()
}
