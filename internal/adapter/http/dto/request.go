package dto

import (
	"github.com/shopspring/decimal"

	"github.com/gestionbanque/bankcore/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	AccountNumber  string          `json:"account_number"`
	HolderName     string          `json:"holder_name"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		AccountNumber:  r.AccountNumber,
		HolderName:     r.HolderName,
		OpeningBalance: r.OpeningBalance,
	}
}
