package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/benx421/payment-gateway/disputes/internal/api"
	"github.com/benx421/payment-gateway/disputes/internal/service"
	"github.com/oapi-codegen/runtime"
)

const maxBodyBytes = 64 << 10

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Nothing useful to do if write fails
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code api.ErrorCode, message string) {
	writeJSON(w, status, api.ErrorResponse{Error: code, Message: message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// bindTransactionID reads the {transactionId} path parameter
func bindTransactionID(r *http.Request) (string, error) {
	var transactionID string
	err := runtime.BindStyledParameterWithOptions("simple", "transactionId", r.PathValue("transactionId"), &transactionID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", fmt.Errorf("invalid format for parameter transactionId: %w", err)
	}
	return transactionID, nil
}

func mapServiceErrorToCode(code string) (int, api.ErrorCode) {
	switch code {
	case service.ErrCodeInvalidRequest:
		return http.StatusBadRequest, api.ErrorCodeInvalidRequest
	case service.ErrCodeInvalidTransactionID:
		return http.StatusBadRequest, api.ErrorCodeInvalidTransactionID
	case service.ErrCodeInvalidReason:
		return http.StatusBadRequest, api.ErrorCodeInvalidDisputeReason
	case service.ErrCodeDisputeNotFound:
		return http.StatusNotFound, api.ErrorCodeDisputeNotFound
	default:
		return http.StatusInternalServerError, api.ErrorCodeInternalError
	}
}

func extractServiceError(err error) *service.ServiceError {
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return nil
}

// handleServiceError maps service errors to structured HTTP responses
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	svcErr := extractServiceError(err)
	if svcErr == nil {
		h.logger.Error("unexpected error", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, api.ErrorCodeInternalError, "internal error")
		return
	}

	status, code := mapServiceErrorToCode(svcErr.Code)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "path", r.URL.Path, "code", svcErr.Code, "error", err)
		writeError(w, status, code, "internal error")
		return
	}

	writeError(w, status, code, svcErr.Message)
}
