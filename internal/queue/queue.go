package queue

import (
	"context"
	"time"

	"wordsim/internal/retry"
	"wordsim/internal/similarity"
)

const subjectPrefix = "similarity.reports."

// Subject is the NATS subject a provider's reports are published on.
func Subject(provider string) string {
	return subjectPrefix + provider
}

// Publisher ships finished reports to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, rep *similarity.Report) error
	Close() error
}

// maxBackoff bounds the wait between publish attempts.
const maxBackoff = 10 * time.Second

// PublishWithRetry attempts to publish with retries and exponential backoff.
func PublishWithRetry(ctx context.Context, p Publisher, rep *similarity.Report, attempts int, base time.Duration) error {
	if attempts <= 0 {
		attempts = 1
	}
	for attempt := 0; attempt < attempts; attempt++ {
		err := p.Publish(ctx, rep)
		if err == nil {
			return nil
		}
		if attempt == attempts-1 {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retry.ExponentialBackoff(attempt, base, maxBackoff)):
		}
	}
	return nil
}
