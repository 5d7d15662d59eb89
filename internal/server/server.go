// Package server owns the HTTP listener lifecycle: bind, serve,
// graceful shutdown on context cancellation.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/samber/oops"
	slogctx "github.com/veqryn/slog-context"

	"authbridge/internal/config"
)

// Start serves handler on the configured address until ctx is
// cancelled, then shuts down gracefully within the shutdown timeout.
func Start(ctx context.Context, cfg *config.Config, handler http.Handler) error {
	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	listener, err := new(net.ListenConfig).Listen(ctx, "tcp", server.Addr)
	if err != nil {
		return oops.In("HTTP Server").
			WithContext(ctx).
			Wrapf(err, "Failed to create a listener")
	}

	slogctx.Info(ctx, "Serving HTTP", "address", listener.Addr().String())

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.Serve(listener)
	}()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return oops.In("HTTP Server").
				WithContext(ctx).
				Wrapf(err, "Failed to serve")
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownRelease()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return oops.In("HTTP Server").
			WithContext(ctx).
			Wrapf(err, "Failed shutting down HTTP server")
	}

	slogctx.Info(ctx, "Completed graceful shutdown of HTTP server")

	return nil
}
