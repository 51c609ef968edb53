package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/benx421/payment-gateway/disputes/internal/api"
	"github.com/benx421/payment-gateway/disputes/internal/app"
	"github.com/benx421/payment-gateway/disputes/internal/middleware"
)

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(application *app.App, logger *slog.Logger) (http.Handler, error) {
	handler := NewHandler(
		application.Disputes,
		application.DB,
		application.Fixtures.Bank(),
		application.Fixtures.Merchant(),
		logger,
	)

	doc, err := api.GetSwagger()
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	if err := api.RegisterDocsRoutes(mux, doc); err != nil {
		return nil, err
	}
	handler.Register(mux)

	validate, err := middleware.RequestValidation(doc, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create request validator: %w", err)
	}

	var finalHandler http.Handler = mux

	finalHandler = middleware.FailureInjection(&application.Config.App, logger)(finalHandler)
	finalHandler = validate(finalHandler)
	finalHandler = middleware.Idempotency(application.Idempotency, logger)(finalHandler)

	return finalHandler, nil
}

// Register adds the API routes to mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/disputes", h.CreateDispute)
	mux.HandleFunc("POST /api/v1/disputes/direct", h.CreateDirectDispute)
	mux.HandleFunc("GET /api/v1/disputes", h.ListDisputes)
	mux.HandleFunc("GET /api/v1/disputes/{transactionId}", h.GetDispute)
	mux.HandleFunc("GET /bank/transaction/{transactionId}", h.GetBankStatus)
	mux.HandleFunc("GET /merchant/transaction/{transactionId}", h.GetMerchantStatus)
	mux.HandleFunc("GET /health", h.GetHealth)
}
