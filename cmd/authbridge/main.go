package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	slogctx "github.com/veqryn/slog-context"

	"authbridge/internal/config"
	"authbridge/internal/server"
	"authbridge/internal/web/handler"
)

func main() {
	ctx := context.Background()

	if err := Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func Run(ctx context.Context) error {
	// Graceful shutdown on interruptions
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := slog.LevelInfo
	if !cfg.IsProduction() {
		level = slog.LevelDebug
	}

	logger := slog.New(slogctx.NewHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}),
		nil,
	))
	slog.SetDefault(logger)

	slogctx.Info(ctx, "Starting access bridge",
		"environment", string(cfg.Environment),
		"institution", cfg.Institution.Name,
		"upstream", cfg.Upstream.APIBaseURL,
	)

	return server.Start(ctx, cfg, handler.New(cfg, logger))
}
