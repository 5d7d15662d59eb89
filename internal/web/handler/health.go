package handler

import (
	"net/http"

	"authbridge/internal/web/response"
)

const routeHealth = "/healthz"

// HandleHealth reports liveness. The bridge holds no state and no
// connections, so being able to answer is the whole check.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	response.JSONResponse(w, http.StatusOK, map[string]any{
		"status": "ok",
	})
}
