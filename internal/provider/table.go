package provider

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/benx421/payment-gateway/disputes/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/default.yaml
var defaultFixtures []byte

// Fixture is one transaction as both parties recorded it
type Fixture struct {
	Bank     models.TransactionStatus `yaml:"bank"`
	Merchant models.TransactionStatus `yaml:"merchant"`
}

// Fixtures is a static set of transactions
type Fixtures struct {
	Transactions map[string]Fixture `yaml:"transactions"`
}

// LoadFixtures reads fixtures from a YAML file, or the built-in set when path is empty.
func LoadFixtures(path string) (*Fixtures, error) {
	data := defaultFixtures
	if path != "" {
		var err error
		data, err = os.ReadFile(path) // #nosec G304 -- operator-supplied path
		if err != nil {
			return nil, fmt.Errorf("failed to read fixtures: %w", err)
		}
	}
	return ParseFixtures(data)
}

// ParseFixtures decodes and validates a YAML fixture document
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}

	for id, fx := range f.Transactions {
		if models.ParseTransactionStatus(string(fx.Bank)) == models.TransactionStatusUnknown {
			return nil, fmt.Errorf("fixture %s: invalid bank status %q", id, fx.Bank)
		}
		if models.ParseTransactionStatus(string(fx.Merchant)) == models.TransactionStatusUnknown {
			return nil, fmt.Errorf("fixture %s: invalid merchant status %q", id, fx.Merchant)
		}
	}

	if f.Transactions == nil {
		f.Transactions = map[string]Fixture{}
	}
	return &f, nil
}

// IDs returns the fixture transaction ids in sorted order
func (f *Fixtures) IDs() []string {
	ids := make([]string, 0, len(f.Transactions))
	for id := range f.Transactions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Bank returns the bank's view of the fixtures
func (f *Fixtures) Bank() *Table {
	return f.table(SideBank)
}

// Merchant returns the merchant's view of the fixtures
func (f *Fixtures) Merchant() *Table {
	return f.table(SideMerchant)
}

func (f *Fixtures) table(side Side) *Table {
	statuses := make(map[string]models.TransactionStatus, len(f.Transactions))
	for id, fx := range f.Transactions {
		if side == SideBank {
			statuses[id] = fx.Bank
		} else {
			statuses[id] = fx.Merchant
		}
	}
	return NewTable(side, statuses)
}

// Table is an in-memory StatusProvider. It is read-only after construction.
type Table struct {
	statuses map[string]models.TransactionStatus
	side     Side
}

// NewTable copies statuses into a new table
func NewTable(side Side, statuses map[string]models.TransactionStatus) *Table {
	copied := make(map[string]models.TransactionStatus, len(statuses))
	for id, s := range statuses {
		copied[id] = s
	}
	return &Table{statuses: copied, side: side}
}

// Side reports which party the table speaks for
func (t *Table) Side() Side {
	return t.side
}

// Status looks the transaction up in the table
func (t *Table) Status(_ context.Context, transactionID string) (models.TransactionStatus, error) {
	status, ok := t.statuses[transactionID]
	if !ok {
		return models.TransactionStatusUnknown, fmt.Errorf("%s %s: %w", t.side, transactionID, models.ErrTransactionNotFound)
	}
	return status, nil
}
