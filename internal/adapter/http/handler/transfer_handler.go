package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/gestionbanque/bankcore/internal/adapter/http/dto"
	"github.com/gestionbanque/bankcore/internal/domain"
	"github.com/gestionbanque/bankcore/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	Transfer(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error)
}

// TransferHandler handles transfer HTTP requests.
type TransferHandler struct {
	transferUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Create moves funds from the account in the path to the account in the
// toAccountId query parameter. Unknown accounts map to 400 on this route.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	fromID := chi.URLParam(r, "id")
	if fromID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	toID := r.URL.Query().Get("toAccountId")
	if toID == "" {
		writeError(w, http.StatusBadRequest, "missing toAccountId parameter", "")
		return
	}

	rawAmount := r.URL.Query().Get("amount")
	if rawAmount == "" {
		writeError(w, http.StatusBadRequest, "missing amount parameter", "")
		return
	}

	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	result, err := h.transferUC.Transfer(r.Context(), usecase.TransferInput{
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        amount,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			writeError(w, http.StatusBadRequest, "failed to transfer", err.Error())
			return
		}

		writeDomainError(w, err, "failed to transfer")

		return
	}

	message := fmt.Sprintf("transferred %s from %s to %s", amount, fromID, toID)
	writeJSON(w, http.StatusOK, dto.TransferFromResult(result, message))
}
