// Package handlers implements HTTP handlers for the dispute API.
package handlers

import (
	"log/slog"

	"github.com/benx421/payment-gateway/disputes/internal/provider"
	"github.com/benx421/payment-gateway/disputes/internal/service"
)

// Handler serves the dispute routes and the sample status services
type Handler struct {
	disputes       service.DisputeResolver
	healthChecker  service.HealthChecker
	bankStatus     provider.StatusProvider
	merchantStatus provider.StatusProvider
	logger         *slog.Logger
}

// NewHandler creates a new Handler with injected service dependencies.
func NewHandler(
	disputes service.DisputeResolver,
	healthChecker service.HealthChecker,
	bankStatus provider.StatusProvider,
	merchantStatus provider.StatusProvider,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		disputes:       disputes,
		healthChecker:  healthChecker,
		bankStatus:     bankStatus,
		merchantStatus: merchantStatus,
		logger:         logger,
	}
}
