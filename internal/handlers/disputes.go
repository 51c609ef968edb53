package handlers

import (
	"net/http"
	"strings"

	"github.com/benx421/payment-gateway/disputes/internal/api"
	"github.com/benx421/payment-gateway/disputes/internal/models"
	"github.com/benx421/payment-gateway/disputes/internal/service"
)

// CreateDispute handles POST /api/v1/disputes
//
// A message goes through interpretation; a structured body is evaluated
// directly.
func (h *Handler) CreateDispute(w http.ResponseWriter, r *http.Request) {
	var body api.CreateDisputeRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest, err.Error())
		return
	}

	var (
		res *service.Resolution
		err error
	)
	switch {
	case hasText(body.Message):
		res, err = h.disputes.Submit(r.Context(), *body.Message)
	case hasText(body.TransactionID):
		res, err = h.disputes.SubmitDirect(r.Context(), *body.TransactionID, deref(body.DisputeReason))
	default:
		writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest, "message or transaction_id is required")
		return
	}
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDisputeResponse(res))
}

// CreateDirectDispute handles POST /api/v1/disputes/direct
func (h *Handler) CreateDirectDispute(w http.ResponseWriter, r *http.Request) {
	var body api.DirectDisputeRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest, err.Error())
		return
	}

	res, err := h.disputes.SubmitDirect(r.Context(), body.TransactionID, deref(body.DisputeReason))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.DirectDisputeResponse{
		TransactionID:      res.TransactionID,
		VerificationResult: res.Outcome.VerificationResult,
		ReasonCode:         res.Outcome.ReasonCode,
		Status:             res.Status,
		Refund:             api.NewRefund(res.Refund),
	})
}

// ListDisputes handles GET /api/v1/disputes
func (h *Handler) ListDisputes(w http.ResponseWriter, r *http.Request) {
	records, err := h.disputes.List(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if records == nil {
		records = []models.DisputeRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}

// GetDispute handles GET /api/v1/disputes/{transactionId}
func (h *Handler) GetDispute(w http.ResponseWriter, r *http.Request) {
	transactionID, err := bindTransactionID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidTransactionID, err.Error())
		return
	}

	record, err := h.disputes.Get(r.Context(), transactionID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func toDisputeResponse(res *service.Resolution) api.DisputeResponse {
	if res.NeedsMoreInfo() {
		return api.DisputeResponse{
			Status:    res.Status,
			Questions: res.Questions,
		}
	}

	transactionID := res.TransactionID
	return api.DisputeResponse{
		TransactionID: &transactionID,
		Status:        res.Status,
		Explanation:   res.Explanation,
		Refund:        api.NewRefund(res.Refund),
	}
}

func hasText(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
