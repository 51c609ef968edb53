// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"

	"github.com/benx421/payment-gateway/disputes/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockDisputeRepository is a mock of repository.DisputeRepository
type MockDisputeRepository struct {
	mock.Mock
}

// NewMockDisputeRepository creates a mock that asserts its expectations on cleanup
func NewMockDisputeRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDisputeRepository {
	m := &MockDisputeRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDisputeRepository) Insert(ctx context.Context, record *models.DisputeRecord) (int64, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDisputeRepository) FindLatestByTransactionID(ctx context.Context, transactionID string) (*models.DisputeRecord, error) {
	args := m.Called(ctx, transactionID)
	record, _ := args.Get(0).(*models.DisputeRecord)
	return record, args.Error(1)
}

func (m *MockDisputeRepository) ListAll(ctx context.Context) ([]models.DisputeRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]models.DisputeRecord)
	return records, args.Error(1)
}

// MockRefundRepository is a mock of repository.RefundRepository
type MockRefundRepository struct {
	mock.Mock
}

// NewMockRefundRepository creates a mock that asserts its expectations on cleanup
func NewMockRefundRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRefundRepository {
	m := &MockRefundRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRefundRepository) CreateIfAbsent(ctx context.Context, refund *models.RefundRecord) (*models.RefundRecord, error) {
	args := m.Called(ctx, refund)
	record, _ := args.Get(0).(*models.RefundRecord)
	return record, args.Error(1)
}

func (m *MockRefundRepository) FindByTransactionID(ctx context.Context, transactionID string) (*models.RefundRecord, error) {
	args := m.Called(ctx, transactionID)
	record, _ := args.Get(0).(*models.RefundRecord)
	return record, args.Error(1)
}

// MockIdempotencyRepository is a mock of repository.IdempotencyRepository
type MockIdempotencyRepository struct {
	mock.Mock
}

// NewMockIdempotencyRepository creates a mock that asserts its expectations on cleanup
func NewMockIdempotencyRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockIdempotencyRepository {
	m := &MockIdempotencyRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockIdempotencyRepository) Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error) {
	args := m.Called(ctx, key, requestPath)
	record, _ := args.Get(0).(*models.IdempotencyKey)
	return record, args.Error(1)
}

func (m *MockIdempotencyRepository) Store(ctx context.Context, idemKey *models.IdempotencyKey) error {
	args := m.Called(ctx, idemKey)
	return args.Error(0)
}
