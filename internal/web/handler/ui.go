package handler

import (
	"html/template"
	"log/slog"
	"net/http"

	"authbridge/internal/config"
	"authbridge/web"
)

const (
	routeHome      = "/"
	routeAuthorize = "/authorize"
)

// UIHandler serves the HTML surface: the landing page and the login
// form that collects the pasted credential.
type UIHandler struct {
	Config *config.Config
	Logger *slog.Logger

	homeTmpl      *template.Template
	authorizeTmpl *template.Template
}

func NewUIHandler(cfg *config.Config, logger *slog.Logger) UIHandler {
	return UIHandler{
		Config:        cfg,
		Logger:        logger,
		homeTmpl:      template.Must(template.ParseFS(web.TemplateAssets, "templates/base.html", "templates/home.html")),
		authorizeTmpl: template.Must(template.ParseFS(web.TemplateAssets, "templates/base.html", "templates/authorize.html")),
	}
}

func (h *UIHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc(routeHome, h.HandleHome)
	mux.HandleFunc(routeAuthorize, h.HandleAuthorize)
}

// HandleHome renders the landing page. Because "/" matches every path
// the mux has no other pattern for, it is also the 404 fallback.
func (h *UIHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != routeHome || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	if err := h.homeTmpl.ExecuteTemplate(w, "base", map[string]any{
		"Institution": h.Config.Institution.Name,
	}); err != nil {
		h.Logger.ErrorContext(r.Context(), "Failed to render home template", "error", err)
	}
}

// HandleAuthorize renders the login form. The redirect_uri and state
// query values are carried through as hidden fields so the posted form
// can complete the round trip; html/template escapes them on the way
// into the page and the browser unescapes them on submit.
func (h *UIHandler) HandleAuthorize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	redirectURI := r.URL.Query().Get("redirect_uri")
	if redirectURI == "" {
		h.Logger.WarnContext(r.Context(), "Authorize request without redirect_uri")
		http.Error(w, "Missing redirect_uri", http.StatusBadRequest)
		return
	}

	if err := h.authorizeTmpl.ExecuteTemplate(w, "base", map[string]any{
		"Institution": h.Config.Institution.Name,
		"RedirectURI": redirectURI,
		"State":       r.URL.Query().Get("state"),
	}); err != nil {
		h.Logger.ErrorContext(r.Context(), "Failed to render authorize template", "error", err)
	}
}
