package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestionbanque/bankcore/internal/domain"
	"github.com/gestionbanque/bankcore/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID            string          `json:"id"`
	AccountNumber string          `json:"account_number"`
	HolderName    string          `json:"holder_name"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		AccountNumber: a.AccountNumber,
		HolderName:    a.HolderName,
		Balance:       a.Balance,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse represents a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Page     int                `json:"page"`
	Size     int                `json:"size"`
}

// BalanceResponse represents an account balance.
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

// TransactionResponse represents a ledger record in API responses.
type TransactionResponse struct {
	ID         string          `json:"id"`
	AccountID  string          `json:"account_id"`
	TransferID string          `json:"transfer_id"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:         t.ID,
		AccountID:  t.AccountID,
		TransferID: t.TransferID,
		Amount:     t.Amount,
		CreatedAt:  t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse represents a page of transactions.
type ListTransactionsResponse struct {
	AccountID    string                 `json:"account_id"`
	Transactions []*TransactionResponse `json:"transactions"`
	Page         int                    `json:"page"`
	Size         int                    `json:"size"`
}

// TransferResponse confirms a completed transfer with its paired records.
type TransferResponse struct {
	TransferID string               `json:"transfer_id"`
	Message    string               `json:"message"`
	Debit      *TransactionResponse `json:"debit"`
	Credit     *TransactionResponse `json:"credit"`
}

// TransferFromResult converts a transfer result to a response.
func TransferFromResult(result *usecase.TransferResult, message string) *TransferResponse {
	return &TransferResponse{
		TransferID: result.TransferID,
		Message:    message,
		Debit:      TransactionFromDomain(result.Debit),
		Credit:     TransactionFromDomain(result.Credit),
	}
}

// VerificationResponse reports the sum invariant check for one account.
type VerificationResponse struct {
	AccountID  string `json:"account_id"`
	Consistent bool   `json:"consistent"`
}

// ConsistencyResponse reports the ledger-wide consistency check.
type ConsistencyResponse struct {
	Consistent         bool     `json:"consistent"`
	MismatchedAccounts []string `json:"mismatched_accounts,omitempty"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
