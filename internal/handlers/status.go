package handlers

import (
	"errors"
	"net/http"

	"github.com/benx421/payment-gateway/disputes/internal/api"
	"github.com/benx421/payment-gateway/disputes/internal/models"
	"github.com/benx421/payment-gateway/disputes/internal/provider"
)

// GetBankStatus handles GET /bank/transaction/{transactionId}
func (h *Handler) GetBankStatus(w http.ResponseWriter, r *http.Request) {
	h.serveStatus(w, r, h.bankStatus)
}

// GetMerchantStatus handles GET /merchant/transaction/{transactionId}
func (h *Handler) GetMerchantStatus(w http.ResponseWriter, r *http.Request) {
	h.serveStatus(w, r, h.merchantStatus)
}

func (h *Handler) serveStatus(w http.ResponseWriter, r *http.Request, source provider.StatusProvider) {
	transactionID, err := bindTransactionID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidTransactionID, err.Error())
		return
	}

	status, err := source.Status(r.Context(), transactionID)
	if errors.Is(err, models.ErrTransactionNotFound) {
		writeError(w, http.StatusNotFound, api.ErrorCodeNotFound, "transaction not found")
		return
	}
	if err != nil {
		h.logger.Error("status lookup failed", "transaction_id", transactionID, "error", err)
		writeError(w, http.StatusInternalServerError, api.ErrorCodeInternalError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, api.TransactionStatusResponse{
		TransactionID: transactionID,
		Status:        status,
	})
}
