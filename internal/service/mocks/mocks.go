// Package mocks provides testify mocks for the service interfaces.
package mocks

import (
	"context"

	"github.com/benx421/payment-gateway/disputes/internal/models"
	"github.com/benx421/payment-gateway/disputes/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockDisputeResolver is a mock of service.DisputeResolver
type MockDisputeResolver struct {
	mock.Mock
}

// NewMockDisputeResolver creates a mock that asserts its expectations on cleanup
func NewMockDisputeResolver(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDisputeResolver {
	m := &MockDisputeResolver{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDisputeResolver) Submit(ctx context.Context, message string) (*service.Resolution, error) {
	args := m.Called(ctx, message)
	res, _ := args.Get(0).(*service.Resolution)
	return res, args.Error(1)
}

func (m *MockDisputeResolver) SubmitDirect(ctx context.Context, transactionID, reason string) (*service.Resolution, error) {
	args := m.Called(ctx, transactionID, reason)
	res, _ := args.Get(0).(*service.Resolution)
	return res, args.Error(1)
}

func (m *MockDisputeResolver) List(ctx context.Context) ([]models.DisputeRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]models.DisputeRecord)
	return records, args.Error(1)
}

func (m *MockDisputeResolver) Get(ctx context.Context, transactionID string) (*models.DisputeRecord, error) {
	args := m.Called(ctx, transactionID)
	record, _ := args.Get(0).(*models.DisputeRecord)
	return record, args.Error(1)
}

// MockHealthChecker is a mock of service.HealthChecker
type MockHealthChecker struct {
	mock.Mock
}

// NewMockHealthChecker creates a mock that asserts its expectations on cleanup
func NewMockHealthChecker(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockHealthChecker {
	m := &MockHealthChecker{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockHealthChecker) PingContext(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
