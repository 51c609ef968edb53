// Package app wires configuration, storage and services into one dispute
// engine shared by the HTTP server and the command line.
package app

import (
	"fmt"
	"log/slog"

	"github.com/benx421/payment-gateway/disputes/internal/config"
	"github.com/benx421/payment-gateway/disputes/internal/db"
	"github.com/benx421/payment-gateway/disputes/internal/llm"
	"github.com/benx421/payment-gateway/disputes/internal/provider"
	"github.com/benx421/payment-gateway/disputes/internal/repository"
	"github.com/benx421/payment-gateway/disputes/internal/service"
)

// App holds the assembled components
type App struct {
	Config      *config.Config
	DB          *db.DB
	Disputes    *service.DisputeService
	Fixtures    *provider.Fixtures
	Idempotency repository.IdempotencyRepository
}

// Option overrides a component, mainly for tests
type Option func(*options)

type options struct {
	generator llm.Generator
}

// WithGenerator replaces the language-model client
func WithGenerator(gen llm.Generator) Option {
	return func(o *options) {
		o.generator = gen
	}
}

// New builds the dispute engine on top of an open database
func New(database *db.DB, cfg *config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	fixtures, err := provider.LoadFixtures(cfg.Providers.FixturesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load status fixtures: %w", err)
	}

	bank, merchant := statusProviders(&cfg.Providers, fixtures)

	gen := o.generator
	if gen == nil {
		gen = llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.Model)
	}

	var disputeOpts []service.DisputeServiceOption
	if cfg.App.AIAdvisorEnabled {
		disputeOpts = append(disputeOpts, service.WithAdvisor(llm.NewAdvisor(gen, cfg.LLM.ParseTimeout)))
	}

	disputes := service.NewDisputeService(
		service.NewReconcileService(bank, merchant, logger),
		service.NewRefundService(repository.NewRefundRepository(database), logger),
		repository.NewDisputeRepository(database),
		llm.NewInterpreter(gen, cfg.LLM.ParseTimeout, logger, llm.WithIDValidator(service.ValidateTransactionID)),
		llm.NewExplainer(gen, cfg.LLM.ExplainTimeout, logger),
		logger,
		disputeOpts...,
	)

	logger.Info("dispute engine assembled",
		"bank_provider", providerKind(cfg.Providers.BankStatusURL),
		"merchant_provider", providerKind(cfg.Providers.MerchantStatusURL),
		"fixtures", len(fixtures.Transactions),
		"ai_advisor", cfg.App.AIAdvisorEnabled,
		"llm_model", cfg.LLM.Model,
	)

	return &App{
		Config:      cfg,
		DB:          database,
		Disputes:    disputes,
		Fixtures:    fixtures,
		Idempotency: repository.NewIdempotencyRepository(database),
	}, nil
}

// statusProviders uses the remote services when configured and the fixture
// tables otherwise.
func statusProviders(cfg *config.ProvidersConfig, fixtures *provider.Fixtures) (bank, merchant provider.StatusProvider) {
	bank = fixtures.Bank()
	if cfg.BankStatusURL != "" {
		bank = provider.NewHTTPProvider(provider.SideBank, cfg.BankStatusURL, cfg.Timeout)
	}

	merchant = fixtures.Merchant()
	if cfg.MerchantStatusURL != "" {
		merchant = provider.NewHTTPProvider(provider.SideMerchant, cfg.MerchantStatusURL, cfg.Timeout)
	}
	return bank, merchant
}

func providerKind(url string) string {
	if url == "" {
		return "fixtures"
	}
	return url
}
