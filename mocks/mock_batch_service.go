package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"dataquality/internal/domain"
	"dataquality/internal/service"
)

// MockBatchService is a mock implementation of service.BatchService.
type MockBatchService struct {
	mock.Mock
}

func (m *MockBatchService) Submit(ctx context.Context, input service.SubmitBatchInput) (*domain.ValidationBatch, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValidationBatch), args.Error(1)
}

func (m *MockBatchService) GetBatch(ctx context.Context, id uuid.UUID) (*domain.ValidationBatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValidationBatch), args.Error(1)
}

func (m *MockBatchService) ListBatches(ctx context.Context, offset, limit int) ([]domain.ValidationBatch, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ValidationBatch), args.Int(1), args.Error(2)
}

func (m *MockBatchService) SourceURL(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
