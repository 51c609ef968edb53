package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benx421/payment-gateway/disputes/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidatedHandler(t *testing.T) (http.Handler, *bool) {
	t.Helper()

	doc, err := api.GetSwagger()
	require.NoError(t, err)

	validate, err := RequestValidation(doc, testLogger())
	require.NoError(t, err)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return validate(next), &called
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRequestValidation(t *testing.T) {
	tests := []struct {
		name       string
		req        *http.Request
		wantCalled bool
	}{
		{
			name:       "valid direct dispute",
			req:        jsonRequest(http.MethodPost, "/api/v1/disputes/direct", `{"transaction_id":"TXN101","dispute_reason":"refund not received"}`),
			wantCalled: true,
		},
		{
			name:       "direct dispute without transaction id",
			req:        jsonRequest(http.MethodPost, "/api/v1/disputes/direct", `{"dispute_reason":"refund not received"}`),
			wantCalled: false,
		},
		{
			name:       "wrong type",
			req:        jsonRequest(http.MethodPost, "/api/v1/disputes", `{"message":42}`),
			wantCalled: false,
		},
		{
			name:       "chat dispute",
			req:        jsonRequest(http.MethodPost, "/api/v1/disputes", `{"message":"TXN101 charged but order failed"}`),
			wantCalled: true,
		},
		{
			name:       "malformed transaction id in path",
			req:        httptest.NewRequest(http.MethodGet, "/api/v1/disputes/TXN%20101", nil),
			wantCalled: false,
		},
		{
			name:       "undocumented route passes through",
			req:        httptest.NewRequest(http.MethodGet, "/docs", nil),
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, called := newValidatedHandler(t)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, tt.req)

			assert.Equal(t, tt.wantCalled, *called)
			if !tt.wantCalled {
				assert.Equal(t, http.StatusBadRequest, rec.Code)

				var body api.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, api.ErrorCodeInvalidRequest, body.Error)
				assert.NotEmpty(t, body.Message)
			}
		})
	}
}

func TestRequestValidation_BodyStillReadable(t *testing.T) {
	doc, err := api.GetSwagger()
	require.NoError(t, err)
	validate, err := RequestValidation(doc, testLogger())
	require.NoError(t, err)

	var got api.DirectDisputeRequest
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	})

	validate(next).ServeHTTP(httptest.NewRecorder(),
		jsonRequest(http.MethodPost, "/api/v1/disputes/direct", `{"transaction_id":"TXN202"}`))

	assert.Equal(t, "TXN202", got.TransactionID)
}
