package handler

import (
	"log/slog"
	"net/http"

	"authbridge/internal/config"
	"authbridge/internal/web/middleware"
)

// New assembles the full request handler: all routes on one mux,
// wrapped in the shared middleware chain. The CORS middleware sits on
// the outside so preflight OPTIONS requests on any path are answered
// before routing.
func New(cfg *config.Config, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	uiHandler := NewUIHandler(cfg, logger)
	uiHandler.RegisterRoutes(mux)

	oauthHandler := NewOAuthHandler(cfg, logger)
	oauthHandler.RegisterRoutes(mux)

	proxyHandler := NewProxyHandler(cfg, logger)
	proxyHandler.RegisterRoutes(mux)

	mux.HandleFunc(routeHealth, HandleHealth)

	chain := middleware.Chain(
		middleware.Recover(logger),
		middleware.RequestID,
		middleware.RequestLogger,
		middleware.CORS(),
	)

	return chain(mux)
}
