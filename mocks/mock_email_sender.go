package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dataquality/internal/domain"
	"dataquality/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendBatchReport(ctx context.Context, batch *domain.ValidationBatch, rejections []port.BatchRejection) error {
	args := m.Called(ctx, batch, rejections)
	return args.Error(0)
}
