package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"authbridge/internal/web/handler"
)

func postForm(h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestCallbackRedirectsWithCodeAndState(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "https://api.example.com")

	w := postForm(h, "/callback", url.Values{
		"token":        {"abc123"},
		"redirect_uri": {"https://chat.example/cb"},
		"state":        {"xyz"},
	})

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	want := "https://chat.example/cb?code=abc123&state=xyz"
	if got := w.Header().Get("Location"); got != want {
		t.Errorf("expected Location %q, got %q", want, got)
	}
}

func TestCallbackEncodesSpecialCharacters(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "https://api.example.com")

	w := postForm(h, "/callback", url.Values{
		"token":        {"a b&c=d/e+f"},
		"redirect_uri": {"https://chat.example/cb"},
		"state":        {"s&t"},
	})

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}

	location, err := url.Parse(w.Header().Get("Location"))
	if err != nil {
		t.Fatal(err)
	}
	if got := location.Query().Get("code"); got != "a b&c=d/e+f" {
		t.Errorf("code did not survive URL encoding: %q", got)
	}
	if got := location.Query().Get("state"); got != "s&t" {
		t.Errorf("state did not survive URL encoding: %q", got)
	}
}

func TestCallbackMissingFields(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "https://api.example.com")

	tests := []struct {
		name    string
		form    url.Values
		message string
	}{
		{"missing token", url.Values{"redirect_uri": {"https://chat.example/cb"}}, "Missing token"},
		{"missing redirect_uri", url.Values{"token": {"abc123"}}, "Missing redirect_uri"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postForm(h, "/callback", tt.form)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.message) {
				t.Errorf("expected message %q, got %q", tt.message, w.Body.String())
			}
		})
	}
}

func decodeTokenResponse(t *testing.T, w *httptest.ResponseRecorder) handler.TokenResponse {
	t.Helper()

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	var resp handler.TokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode token response %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestTokenFromFormBody(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "https://api.example.com")

	w := postForm(h, "/token", url.Values{"code": {"abc123"}})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	want := handler.TokenResponse{
		AccessToken: "abc123",
		TokenType:   "Bearer",
		Scope:       "read write",
	}
	if diff := cmp.Diff(want, decodeTokenResponse(t, w)); diff != "" {
		t.Errorf("token response mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenFromJSONBody(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "https://api.example.com")

	r := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(`{"code":"json-code"}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := decodeTokenResponse(t, w).AccessToken; got != "json-code" {
		t.Errorf("expected access token json-code, got %q", got)
	}
}

func TestTokenFromUnknownContentType(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "https://api.example.com")

	r := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader("code=fallback-code"))
	r.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := decodeTokenResponse(t, w).AccessToken; got != "fallback-code" {
		t.Errorf("expected access token fallback-code, got %q", got)
	}
}

func TestTokenReturnsCodeVerbatim(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "https://api.example.com")

	// Opaque credentials pass through byte for byte.
	code := "sk-live-αβγ/==?&"
	w := postForm(h, "/token", url.Values{"code": {code}})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := decodeTokenResponse(t, w).AccessToken; got != code {
		t.Errorf("access token altered: got %q, want %q", got, code)
	}
}

func TestTokenMissingCode(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "https://api.example.com")

	w := postForm(h, "/token", url.Values{})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected JSON error body, got %q", w.Body.String())
	}
	if body["error"] != "Missing code" {
		t.Errorf(`expected {"error":"Missing code"}, got %v`, body)
	}
}

func TestTokenInvalidBodies(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "https://api.example.com")

	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"broken JSON", "application/json", `{"code":`},
		{"unparseable fallback body", "application/octet-stream", "a=%zz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(tt.body))
			r.Header.Set("Content-Type", tt.contentType)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}

			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("expected JSON error body, got %q", w.Body.String())
			}
			if body["error"] != "Invalid request format" {
				t.Errorf(`expected {"error":"Invalid request format"}, got %v`, body)
			}
		})
	}
}
