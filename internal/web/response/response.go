package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "authbridge/internal/errors"
)

// ErrorBody is the JSON error shape every JSON-producing endpoint uses.
type ErrorBody struct {
	Error string `json:"error"`
}

func Redirect(w http.ResponseWriter, status int, url string) {
	w.Header().Set("Location", url)
	w.WriteHeader(status)
}

func JSONResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// JSONError writes the standard error body with the given status.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSONResponse(w, status, ErrorBody{Error: message})
}

// ErrorResponse maps an application error onto the standard error body.
func ErrorResponse(w http.ResponseWriter, err error, logger *slog.Logger) {
	var appErr *apperrors.AppError

	if apperrors.IsType(err, apperrors.CodeInternalError) || !errors.As(err, &appErr) {
		// Log internal errors for debugging but don't expose details
		if logger != nil {
			logger.Error("Internal server error", slog.String("error", err.Error()))
		}

		appErr = apperrors.InternalError("An internal error occurred", err)
	} else if logger != nil {
		logger.Warn("Application error occurred",
			slog.String("code", appErr.Code),
			slog.String("message", appErr.Message),
			slog.String("cause", appErr.Error()))
	}

	JSONError(w, appErr.HTTPCode, appErr.Message)
}
