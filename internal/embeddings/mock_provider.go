package embeddings

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockProvider is a mock implementation of Provider using testify/mock.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockProvider) Dim() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockProvider) Lookup(ctx context.Context, word string) (Vector, error) {
	args := m.Called(ctx, word)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(Vector), args.Error(1)
}

// StaticProvider serves a fixed word table. It is the in-memory provider used by
// tests and examples.
type StaticProvider struct {
	ProviderName string
	Vectors      map[string]Vector
}

func (s StaticProvider) Name() string {
	if s.ProviderName == "" {
		return "static"
	}
	return s.ProviderName
}

// Dim reports the width of an arbitrary entry; tables are expected to be uniform.
func (s StaticProvider) Dim() int {
	for _, v := range s.Vectors {
		return len(v)
	}
	return 0
}

func (s StaticProvider) Lookup(_ context.Context, word string) (Vector, error) {
	v, ok := s.Vectors[word]
	if !ok {
		return nil, ErrWordNotFound
	}
	return v, nil
}
