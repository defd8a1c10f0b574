package cache

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"wordsim/internal/embeddings"
)

// MockCache is a mock implementation of the VectorCache interface for testing
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (embeddings.Vector, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(embeddings.Vector), args.Bool(1), args.Error(2)
}

func (m *MockCache) Set(ctx context.Context, key string, vec embeddings.Vector, ttl time.Duration) error {
	args := m.Called(ctx, key, vec, ttl)
	return args.Error(0)
}

func (m *MockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
