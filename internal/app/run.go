package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"wordsim/internal/embeddings"
	"wordsim/internal/queue"
	"wordsim/internal/report"
	"wordsim/internal/similarity"
	"wordsim/internal/vectordb"
)

const (
	publishAttempts = 3
	publishBackoff  = 500 * time.Millisecond
)

type runOptions struct {
	store vectordb.Store
}

// RunOption configures Run.
type RunOption func(*runOptions)

// WithNeighbours adds a top-K search against store for every resolved word.
func WithNeighbours(store vectordb.Store) RunOption {
	return func(o *runOptions) { o.store = store }
}

// Run evaluates the configured words against p, writes the report to out and
// publishes it to the report sink. Publishing failures are logged, not returned.
func Run(ctx context.Context, d Deps, p embeddings.Provider, out io.Writer, opts ...RunOption) (*similarity.Report, error) {
	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}
	cfg := d.Config

	rep, err := similarity.Evaluate(ctx, p, cfg.Words, similarity.WithLogger(d.Log))
	if err != nil {
		return nil, err
	}

	var nbs []report.Neighbours
	if o.store != nil && cfg.TopK > 0 {
		nbs, err = neighbours(ctx, o.store, rep, cfg.TopK)
		if err != nil {
			return nil, err
		}
	}

	ropts := report.Options{PreviewDims: cfg.PreviewDims, Locale: cfg.Locale}
	switch cfg.ReportFormat {
	case "json":
		err = report.WriteJSON(out, rep, nbs)
	default:
		if err = report.WriteText(out, rep, ropts); err == nil {
			err = report.WriteNeighbours(out, nbs, ropts)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	if d.Publisher != nil {
		if err := queue.PublishWithRetry(ctx, d.Publisher, rep, publishAttempts, publishBackoff); err != nil {
			d.Log.Warn("failed to publish report", "id", rep.ID, "err", err)
		}
	}
	return rep, nil
}

func neighbours(ctx context.Context, store vectordb.Store, rep *similarity.Report, k int) ([]report.Neighbours, error) {
	var out []report.Neighbours
	for _, w := range rep.Words {
		if !w.Found {
			continue
		}
		matches, err := store.Search(ctx, w.Vector, k)
		if err != nil {
			return nil, fmt.Errorf("search neighbours of %q: %w", w.Word, err)
		}
		out = append(out, report.Neighbours{Word: w.Word, Matches: matches})
	}
	return out, nil
}
