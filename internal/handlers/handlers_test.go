package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benx421/payment-gateway/disputes/internal/api"
	"github.com/benx421/payment-gateway/disputes/internal/models"
	"github.com/benx421/payment-gateway/disputes/internal/provider"
	"github.com/benx421/payment-gateway/disputes/internal/service"
	"github.com/benx421/payment-gateway/disputes/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestMux(t *testing.T, disputes service.DisputeResolver, health service.HealthChecker) *http.ServeMux {
	t.Helper()

	bank := provider.NewTable(provider.SideBank, map[string]models.TransactionStatus{
		"TXN101": models.TransactionStatusFailed,
	})
	merchant := provider.NewTable(provider.SideMerchant, map[string]models.TransactionStatus{
		"TXN101": models.TransactionStatusSuccess,
	})

	mux := http.NewServeMux()
	NewHandler(disputes, health, bank, merchant, testLogger()).Register(mux)
	return mux
}

func do(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func refundedResolution() *service.Resolution {
	explanation := "Your refund has been initiated."
	return &service.Resolution{
		TransactionID: "TXN101",
		Status:        models.DecisionRefundInitiated,
		Explanation:   &explanation,
		Outcome:       service.Classify(models.TransactionStatusFailed, models.TransactionStatusSuccess),
		Refund: &models.RefundRecord{
			RefundID:      service.RefundIDFor("TXN101"),
			TransactionID: "TXN101",
			RefundStatus:  models.RefundStatusInitiated,
			Message:       service.RefundInitiatedMessage,
			CreatedAt:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestCreateDispute_Message(t *testing.T) {
	disputes := mocks.NewMockDisputeResolver(t)
	mux := newTestMux(t, disputes, nil)

	disputes.On("Submit", mock.Anything, "TXN101 debited, order failed").Return(refundedResolution(), nil)

	rec := do(mux, http.MethodPost, "/api/v1/disputes", `{"message":"TXN101 debited, order failed"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[api.DisputeResponse](t, rec)
	assert.Equal(t, models.DecisionRefundInitiated, body.Status)
	require.NotNil(t, body.TransactionID)
	assert.Equal(t, "TXN101", *body.TransactionID)
	require.NotNil(t, body.Explanation)
	require.NotNil(t, body.Refund)
	assert.Equal(t, service.RefundIDFor("TXN101"), body.Refund.RefundID)
	assert.Empty(t, body.Questions)
}

func TestCreateDispute_NeedMoreInfo(t *testing.T) {
	disputes := mocks.NewMockDisputeResolver(t)
	mux := newTestMux(t, disputes, nil)

	disputes.On("Submit", mock.Anything, "my money is gone").Return(&service.Resolution{
		Status:    service.StatusNeedMoreInfo,
		Questions: []string{"Please provide the transaction ID to proceed."},
	}, nil)

	rec := do(mux, http.MethodPost, "/api/v1/disputes", `{"message":"my money is gone"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[api.DisputeResponse](t, rec)
	assert.Equal(t, service.StatusNeedMoreInfo, body.Status)
	assert.Equal(t, []string{"Please provide the transaction ID to proceed."}, body.Questions)
	assert.Nil(t, body.TransactionID)
	assert.Nil(t, body.Refund)
}

func TestCreateDispute_StructuredBodyGoesDirect(t *testing.T) {
	disputes := mocks.NewMockDisputeResolver(t)
	mux := newTestMux(t, disputes, nil)

	disputes.On("SubmitDirect", mock.Anything, "TXN303", "charged twice").Return(&service.Resolution{
		TransactionID: "TXN303",
		Status:        models.DecisionEscalate,
	}, nil)

	rec := do(mux, http.MethodPost, "/api/v1/disputes", `{"transaction_id":"TXN303","dispute_reason":"charged twice"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[api.DisputeResponse](t, rec)
	assert.Equal(t, models.DecisionEscalate, body.Status)
	assert.Nil(t, body.Explanation)
	disputes.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestCreateDispute_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"invalid json", `{"message":`},
		{"neither field", `{"dispute_reason":"no id"}`},
		{"blank message", `{"message":"   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			disputes := mocks.NewMockDisputeResolver(t)
			mux := newTestMux(t, disputes, nil)

			rec := do(mux, http.MethodPost, "/api/v1/disputes", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, api.ErrorCodeInvalidRequest, decode[api.ErrorResponse](t, rec).Error)
		})
	}
}

func TestCreateDirectDispute(t *testing.T) {
	disputes := mocks.NewMockDisputeResolver(t)
	mux := newTestMux(t, disputes, nil)

	disputes.On("SubmitDirect", mock.Anything, "TXN101", "").Return(refundedResolution(), nil)

	rec := do(mux, http.MethodPost, "/api/v1/disputes/direct", `{"transaction_id":"TXN101"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[api.DirectDisputeResponse](t, rec)
	assert.Equal(t, "TXN101", body.TransactionID)
	assert.Equal(t, models.VerificationRefundEligible, body.VerificationResult)
	assert.Equal(t, models.ReasonBankFailedMerchantSuccess, body.ReasonCode)
	assert.Equal(t, models.DecisionRefundInitiated, body.Status)
	require.NotNil(t, body.Refund)
	assert.Equal(t, models.RefundStatusInitiated, body.Refund.RefundStatus)
}

func TestCreateDirectDispute_ServiceErrors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   api.ErrorCode
	}{
		{
			name:           "invalid transaction id",
			err:            &service.ServiceError{Code: service.ErrCodeInvalidTransactionID, Message: "transaction_id is required"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   api.ErrorCodeInvalidTransactionID,
		},
		{
			name:           "reason too long",
			err:            &service.ServiceError{Code: service.ErrCodeInvalidReason, Message: "too long"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   api.ErrorCodeInvalidDisputeReason,
		},
		{
			name:           "store failure",
			err:            &service.ServiceError{Code: service.ErrCodeStorageFailure, Message: "failed to store dispute", Err: errors.New("locked")},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   api.ErrorCodeInternalError,
		},
		{
			name:           "unexpected error",
			err:            errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   api.ErrorCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			disputes := mocks.NewMockDisputeResolver(t)
			mux := newTestMux(t, disputes, nil)

			disputes.On("SubmitDirect", mock.Anything, "TXN101", "x").Return(nil, tt.err)

			rec := do(mux, http.MethodPost, "/api/v1/disputes/direct", `{"transaction_id":"TXN101","dispute_reason":"x"}`)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			body := decode[api.ErrorResponse](t, rec)
			assert.Equal(t, tt.expectedCode, body.Error)
			assert.NotContains(t, body.Message, "locked", "internal causes are not leaked")
		})
	}
}

func TestListDisputes(t *testing.T) {
	t.Run("records", func(t *testing.T) {
		disputes := mocks.NewMockDisputeResolver(t)
		mux := newTestMux(t, disputes, nil)
		disputes.On("List", mock.Anything).Return([]models.DisputeRecord{
			{ID: 1, TransactionID: "TXN101"},
			{ID: 2, TransactionID: "TXN202"},
		}, nil)

		rec := do(mux, http.MethodGet, "/api/v1/disputes", "")

		require.Equal(t, http.StatusOK, rec.Code)
		records := decode[[]models.DisputeRecord](t, rec)
		require.Len(t, records, 2)
		assert.Equal(t, int64(1), records[0].ID)
	})

	t.Run("empty list is an array", func(t *testing.T) {
		disputes := mocks.NewMockDisputeResolver(t)
		mux := newTestMux(t, disputes, nil)
		disputes.On("List", mock.Anything).Return(nil, nil)

		rec := do(mux, http.MethodGet, "/api/v1/disputes", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func TestGetDispute(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		disputes := mocks.NewMockDisputeResolver(t)
		mux := newTestMux(t, disputes, nil)
		disputes.On("Get", mock.Anything, "TXN101").Return(&models.DisputeRecord{
			ID:            3,
			TransactionID: "TXN101",
			FinalStatus:   models.DecisionRefundInitiated,
		}, nil)

		rec := do(mux, http.MethodGet, "/api/v1/disputes/TXN101", "")

		require.Equal(t, http.StatusOK, rec.Code)
		record := decode[models.DisputeRecord](t, rec)
		assert.Equal(t, models.DecisionRefundInitiated, record.FinalStatus)
	})

	t.Run("not found", func(t *testing.T) {
		disputes := mocks.NewMockDisputeResolver(t)
		mux := newTestMux(t, disputes, nil)
		disputes.On("Get", mock.Anything, "TXN000").
			Return(nil, &service.ServiceError{Code: service.ErrCodeDisputeNotFound, Message: "no dispute found for transaction"})

		rec := do(mux, http.MethodGet, "/api/v1/disputes/TXN000", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, api.ErrorCodeDisputeNotFound, decode[api.ErrorResponse](t, rec).Error)
	})
}

func TestStatusRoutes(t *testing.T) {
	mux := newTestMux(t, mocks.NewMockDisputeResolver(t), nil)

	rec := do(mux, http.MethodGet, "/bank/transaction/TXN101", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, api.TransactionStatusResponse{TransactionID: "TXN101", Status: models.TransactionStatusFailed},
		decode[api.TransactionStatusResponse](t, rec))

	rec = do(mux, http.MethodGet, "/merchant/transaction/TXN101", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.TransactionStatusSuccess, decode[api.TransactionStatusResponse](t, rec).Status)

	rec = do(mux, http.MethodGet, "/bank/transaction/TXN999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, api.ErrorCodeNotFound, decode[api.ErrorResponse](t, rec).Error)
}

func TestStatusRoutes_ServeHTTPProvider(t *testing.T) {
	mux := newTestMux(t, mocks.NewMockDisputeResolver(t), nil)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	bank := provider.NewHTTPProvider(provider.SideBank, server.URL+"/bank/transaction", time.Second)

	status, err := bank.Status(t.Context(), "TXN101")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusFailed, status)

	_, err = bank.Status(t.Context(), "TXN999")
	assert.ErrorIs(t, err, models.ErrTransactionNotFound)
}

func TestGetHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		health := mocks.NewMockHealthChecker(t)
		health.On("PingContext", mock.Anything).Return(nil)
		mux := newTestMux(t, mocks.NewMockDisputeResolver(t), health)

		rec := do(mux, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, api.Healthy, decode[api.HealthResponse](t, rec).Status)
	})

	t.Run("database unreachable", func(t *testing.T) {
		health := mocks.NewMockHealthChecker(t)
		health.On("PingContext", mock.Anything).Return(errors.New("connection refused"))
		mux := newTestMux(t, mocks.NewMockDisputeResolver(t), health)

		rec := do(mux, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, api.Unhealthy, decode[api.HealthResponse](t, rec).Status)
	})
}
