package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dataquality/internal/port"
)

// MockDuplicateFinder is a mock implementation of port.DuplicateRecordFinder.
type MockDuplicateFinder struct {
	mock.Mock
}

func (m *MockDuplicateFinder) FindAcceptedByCVE(ctx context.Context, q port.DuplicateQuery) ([]port.DuplicateMatch, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.DuplicateMatch), args.Error(1)
}
