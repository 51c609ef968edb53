package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/benx421/payment-gateway/disputes/internal/models"
)

// statusResponse accepts both the generic "status" field and the
// side-specific field legacy status services return.
type statusResponse struct {
	TransactionID  string `json:"transaction_id"`
	Status         string `json:"status"`
	BankStatus     string `json:"bank_status"`
	MerchantStatus string `json:"merchant_status"`
}

// HTTPProvider fetches status from GET {baseURL}/{transactionID}.
// A 404 means the provider has no record. No retries.
type HTTPProvider struct {
	client  *http.Client
	baseURL string
	side    Side
}

// NewHTTPProvider creates an HTTP status provider with a per-request timeout
func NewHTTPProvider(side Side, baseURL string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		side:    side,
	}
}

// Status fetches the transaction status from the remote provider
func (p *HTTPProvider) Status(ctx context.Context, transactionID string) (models.TransactionStatus, error) {
	endpoint := p.baseURL + "/" + url.PathEscape(transactionID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.TransactionStatusUnknown, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return models.TransactionStatusUnknown, fmt.Errorf("%s status request failed: %w", p.side, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return models.TransactionStatusUnknown, fmt.Errorf("%s %s: %w", p.side, transactionID, models.ErrTransactionNotFound)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return models.TransactionStatusUnknown, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return models.TransactionStatusUnknown, fmt.Errorf("%s status service error (%d): %s", p.side, resp.StatusCode, string(body))
	}

	var sr statusResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return models.TransactionStatusUnknown, fmt.Errorf("decode response: %w", err)
	}

	raw := sr.Status
	if raw == "" {
		if p.side == SideBank {
			raw = sr.BankStatus
		} else {
			raw = sr.MerchantStatus
		}
	}

	status := models.ParseTransactionStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if status == models.TransactionStatusUnknown {
		return status, fmt.Errorf("%s returned unrecognised status %q", p.side, raw)
	}
	return status, nil
}
