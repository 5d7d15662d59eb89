package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"authbridge/internal/config"
	"authbridge/internal/errors"
	"authbridge/internal/web/response"
)

const routeAPIPrefix = "/api/v1/"

// ProxyHandler forwards /api/v1/* requests to the configured upstream
// API host. The bridge adds nothing: method, path, query and body pass
// through unchanged, and only the Authorization and Content-Type
// request headers are carried over.
type ProxyHandler struct {
	Config *config.Config
	Logger *slog.Logger
	Client *http.Client
}

func NewProxyHandler(cfg *config.Config, logger *slog.Logger) ProxyHandler {
	return ProxyHandler{
		Config: cfg,
		Logger: logger,
		// No timeout: long upstream calls are the caller's problem.
		Client: &http.Client{},
	}
}

func (h *ProxyHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc(routeAPIPrefix, h.HandleProxy)
}

func (h *ProxyHandler) HandleProxy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	authorization := r.Header.Get("Authorization")
	if authorization == "" {
		response.ErrorResponse(w, errors.UnauthorizedError("Missing Authorization header", nil), h.Logger)
		return
	}

	upstreamURL := strings.TrimSuffix(h.Config.Upstream.APIBaseURL, "/") + r.URL.Path
	if r.URL.RawQuery != "" {
		upstreamURL += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, upstreamURL, r.Body)
	if err != nil {
		response.ErrorResponse(w, errors.InternalError("Failed to build upstream request", err), h.Logger)
		return
	}

	req.Header.Set("Authorization", authorization)
	if contentType := r.Header.Get("Content-Type"); contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		h.Logger.ErrorContext(ctx, "Upstream request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		response.ErrorResponse(w, errors.UpstreamError("Upstream request failed", err), h.Logger)
		return
	}
	defer resp.Body.Close()

	if contentType := resp.Header.Get("Content-Type"); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		h.Logger.WarnContext(ctx, "Failed to relay upstream response body", "error", err)
	}
}
