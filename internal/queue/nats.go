package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"wordsim/internal/similarity"
)

// NewNATS constructs a publisher that sends reports as JSON over core NATS.
func NewNATS(log *slog.Logger, nc *nats.Conn) Publisher {
	return &natsPublisher{log: log, nc: nc}
}

type natsPublisher struct {
	log *slog.Logger
	nc  *nats.Conn
}

func (p *natsPublisher) Publish(ctx context.Context, rep *similarity.Report) error {
	if rep == nil {
		return errors.New("report required")
	}
	if rep.Provider == "" {
		return errors.New("report provider required")
	}
	body, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	subject := Subject(rep.Provider)
	if err := p.nc.Publish(subject, body); err != nil {
		return err
	}
	// Flush so a one-shot binary does not exit with the message still buffered.
	if err := p.nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush %s: %w", subject, err)
	}
	p.log.Info("report published", "subject", subject, "id", rep.ID, "bytes", len(body))
	return nil
}

func (p *natsPublisher) Close() error {
	return p.nc.Drain()
}
