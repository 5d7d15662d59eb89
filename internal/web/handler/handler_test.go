package handler_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"authbridge/internal/config"
	"authbridge/internal/web/handler"
)

// newTestHandler builds the full handler stack the way main does, with
// a fixed test configuration.
func newTestHandler(t *testing.T, upstreamURL string) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Environment: config.EnvTesting,
		Institution: config.Institution{Name: "Test College"},
		Upstream:    config.Upstream{APIBaseURL: upstreamURL},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return handler.New(cfg, logger)
}
