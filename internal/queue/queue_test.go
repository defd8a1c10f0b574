package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wordsim/internal/similarity"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "similarity.reports.glove", Subject("glove"))
}

func TestPublishWithRetry(t *testing.T) {
	rep := &similarity.Report{Provider: "glove"}
	unavailable := errors.New("nats: no servers available for connection")

	tests := []struct {
		name      string
		attempts  int
		setupMock func(*MockPublisher)
		wantErr   error
		wantCalls int
	}{
		{
			name:     "first attempt succeeds",
			attempts: 3,
			setupMock: func(m *MockPublisher) {
				m.On("Publish", mock.Anything, rep).Return(nil).Once()
			},
			wantCalls: 1,
		},
		{
			name:     "succeeds after retries",
			attempts: 3,
			setupMock: func(m *MockPublisher) {
				m.On("Publish", mock.Anything, rep).Return(unavailable).Twice()
				m.On("Publish", mock.Anything, rep).Return(nil).Once()
			},
			wantCalls: 3,
		},
		{
			name:     "gives up with last error",
			attempts: 2,
			setupMock: func(m *MockPublisher) {
				m.On("Publish", mock.Anything, rep).Return(unavailable)
			},
			wantErr:   unavailable,
			wantCalls: 2,
		},
		{
			name:     "zero attempts still tries once",
			attempts: 0,
			setupMock: func(m *MockPublisher) {
				m.On("Publish", mock.Anything, rep).Return(unavailable)
			},
			wantErr:   unavailable,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockPublisher)
			tt.setupMock(m)

			err := PublishWithRetry(context.Background(), m, rep, tt.attempts, time.Millisecond)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			m.AssertNumberOfCalls(t, "Publish", tt.wantCalls)
		})
	}
}

func TestPublishWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rep := &similarity.Report{Provider: "glove"}

	m := new(MockPublisher)
	m.On("Publish", mock.Anything, rep).Run(func(mock.Arguments) { cancel() }).Return(errors.New("timeout"))

	err := PublishWithRetry(ctx, m, rep, 5, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	m.AssertNumberOfCalls(t, "Publish", 1)
}

func TestNoOpPublisher(t *testing.T) {
	p := NewNoOpPublisher()
	assert.NoError(t, p.Publish(context.Background(), &similarity.Report{}))
	assert.NoError(t, p.Close())
}

func TestNATSPublisher_RejectsIncompleteReport(t *testing.T) {
	p := NewNATS(nil, nil)
	assert.Error(t, p.Publish(context.Background(), nil))
	assert.Error(t, p.Publish(context.Background(), &similarity.Report{}))
}
