package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"wordsim/internal/app"
	"wordsim/internal/vectordb"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	err = run(ctx, deps, os.Stdout)
	_ = deps.Close()
	if err != nil {
		deps.Log.Error("vector database evaluation failed", "err", err)
		os.Exit(1)
	}
}

// run writes the GloVe vectors for the candidate words into the store, then
// evaluates and searches using only what the store gives back.
func run(ctx context.Context, deps app.Deps, out io.Writer) error {
	g, err := app.BuildGlove(deps.Config, deps.Log)
	if err != nil {
		return err
	}
	store, err := app.BuildStore(deps.Config, deps.Log)
	if err != nil {
		return err
	}
	defer store.Close()

	res, err := vectordb.Ingest(ctx, store, g, deps.Config.Words)
	if err != nil {
		return err
	}
	deps.Log.Info("vectors stored", "table", deps.Config.TableName, "inserted", len(res.Inserted), "missing", res.Missing)

	// Reads always go to the store; the vector cache is not consulted here.
	_, err = app.Run(ctx, deps, vectordb.NewProvider(store, "vectordb"), out, app.WithNeighbours(store))
	return err
}
