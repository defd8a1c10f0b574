package vectordb

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wordsim/internal/embeddings"
)

// MockStore is a mock implementation of Store using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) EnsureTable(ctx context.Context, dim int) error {
	args := m.Called(ctx, dim)
	return args.Error(0)
}

func (m *MockStore) Upsert(ctx context.Context, entries []Entry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockStore) Get(ctx context.Context, words []string) (map[string]embeddings.Vector, error) {
	args := m.Called(ctx, words)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]embeddings.Vector), args.Error(1)
}

func (m *MockStore) Search(ctx context.Context, query embeddings.Vector, k int) ([]Match, error) {
	args := m.Called(ctx, query, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Match), args.Error(1)
}

func (m *MockStore) Dim() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
