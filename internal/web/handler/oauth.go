package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"authbridge/internal/config"
	"authbridge/internal/web/response"
)

const (
	routeCallback = "/callback"
	routeToken    = "/token"

	tokenType  = "Bearer"
	tokenScope = "read write"
)

// TokenResponse is the token endpoint's success body. The access token
// is the submitted code, returned byte for byte.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
}

type tokenRequest struct {
	Code string `json:"code"`
}

// OAuthHandler implements the authorization-code-shaped exchange. No
// code is ever generated or stored; the pasted credential travels
// through the redirect as the code and comes back out of /token as the
// access token.
type OAuthHandler struct {
	Config *config.Config
	Logger *slog.Logger
}

func NewOAuthHandler(cfg *config.Config, logger *slog.Logger) OAuthHandler {
	return OAuthHandler{
		Config: cfg,
		Logger: logger,
	}
}

func (h *OAuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc(routeCallback, h.HandleCallback)
	mux.HandleFunc(routeToken, h.HandleToken)
}

// HandleCallback receives the login form post and sends the browser
// back to the requesting application with the credential as the
// authorization code.
func (h *OAuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.Logger.WarnContext(r.Context(), "Failed to parse callback form", "error", err)
		http.Error(w, "Missing token", http.StatusBadRequest)
		return
	}

	token := r.FormValue("token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusBadRequest)
		return
	}

	redirectURI := r.FormValue("redirect_uri")
	if redirectURI == "" {
		http.Error(w, "Missing redirect_uri", http.StatusBadRequest)
		return
	}

	// The token itself never goes into a log line.
	h.Logger.InfoContext(r.Context(), "Issuing authorization code redirect")

	location := redirectURI + "?code=" + url.QueryEscape(token) + "&state=" + url.QueryEscape(r.FormValue("state"))
	response.Redirect(w, http.StatusFound, location)
}

// HandleToken exchanges a code for a token response. The code is
// accepted from a form body, a JSON body, or, for any other content
// type, a best-effort form parse of the raw body.
func (h *OAuthHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	code, ok := h.extractCode(w, r)
	if !ok {
		return
	}

	if code == "" {
		response.JSONError(w, http.StatusBadRequest, "Missing code")
		return
	}

	response.JSONResponse(w, http.StatusOK, TokenResponse{
		AccessToken: code,
		TokenType:   tokenType,
		Scope:       tokenScope,
	})
}

// extractCode pulls the code out of the request body. When it writes an
// error response itself, it returns ok=false.
func (h *OAuthHandler) extractCode(w http.ResponseWriter, r *http.Request) (string, bool) {
	contentType := r.Header.Get("Content-Type")

	switch {
	case strings.Contains(contentType, "application/json"):
		var req tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.Logger.WarnContext(r.Context(), "Failed to decode token request body", "error", err)
			response.JSONError(w, http.StatusBadRequest, "Invalid request format")
			return "", false
		}
		return req.Code, true

	case strings.Contains(contentType, "application/x-www-form-urlencoded"):
		if err := r.ParseForm(); err != nil {
			h.Logger.WarnContext(r.Context(), "Failed to parse token request form", "error", err)
			response.JSONError(w, http.StatusBadRequest, "Invalid request format")
			return "", false
		}
		return r.FormValue("code"), true

	default:
		// Unknown content type: try to read the body as a form anyway.
		body, err := io.ReadAll(r.Body)
		if err != nil {
			response.JSONError(w, http.StatusBadRequest, "Invalid request format")
			return "", false
		}
		values, err := url.ParseQuery(string(body))
		if err != nil {
			h.Logger.WarnContext(r.Context(), "Unparseable token request body", "content_type", contentType)
			response.JSONError(w, http.StatusBadRequest, "Invalid request format")
			return "", false
		}
		return values.Get("code"), true
	}
}
