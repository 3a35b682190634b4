package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gestionbanque/bankcore/internal/adapter/http/dto"
	"github.com/gestionbanque/bankcore/internal/domain"
	"github.com/gestionbanque/bankcore/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	ListByAccount(ctx context.Context, input usecase.ListByAccountInput) ([]*domain.Transaction, error)
	VerifyAccount(ctx context.Context, accountID string) (bool, error)
}

// TransactionHandler handles transaction history HTTP requests.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// ListByAccount lists an account's transactions with page/size pagination.
func (h *TransactionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	page := parseIntQuery(r, "page", 0)
	size := parseIntQuery(r, "size", 0)

	transactions, err := h.transactionUC.ListByAccount(r.Context(), usecase.ListByAccountInput{
		AccountID: accountID,
		Page:      page,
		Size:      size,
	})
	if err != nil {
		writeDomainError(w, err, "failed to list transactions")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		AccountID:    accountID,
		Transactions: dto.TransactionsFromDomain(transactions),
		Page:         page,
		Size:         len(transactions),
	})
}

// Verify checks the sum invariant for one account.
func (h *TransactionHandler) Verify(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	consistent, err := h.transactionUC.VerifyAccount(r.Context(), accountID)
	if err != nil {
		writeDomainError(w, err, "failed to verify account")
		return
	}

	writeJSON(w, http.StatusOK, dto.VerificationResponse{
		AccountID:  accountID,
		Consistent: consistent,
	})
}
