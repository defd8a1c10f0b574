package queue

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wordsim/internal/similarity"
)

// MockPublisher is a mock implementation of Publisher using testify/mock.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, rep *similarity.Report) error {
	args := m.Called(ctx, rep)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
