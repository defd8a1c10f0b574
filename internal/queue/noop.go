package queue

import (
	"context"

	"wordsim/internal/similarity"
)

// NoOpPublisher drops every report. Used when REPORT_SINK=none.
type NoOpPublisher struct{}

func NewNoOpPublisher() *NoOpPublisher { return &NoOpPublisher{} }

func (NoOpPublisher) Publish(context.Context, *similarity.Report) error { return nil }

func (NoOpPublisher) Close() error { return nil }
