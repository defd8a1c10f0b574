package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"wordsim/internal/app"
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
		deps.Log.Error("glove evaluation failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, deps app.Deps, out io.Writer) error {
	g, err := app.BuildGlove(deps.Config, deps.Log)
	if err != nil {
		return err
	}
	p, err := deps.Cached(g)
	if err != nil {
		return err
	}
	_, err = app.Run(ctx, deps, p, out)
	return err
}
