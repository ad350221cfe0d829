package handler

import (
	"net/http"

	"storefront-analytics/internal/model"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the status line is already sent; nothing left to report to the client
	json.NewEncoder(w).Encode(data)
}

// WriteMessage writes a {"message": ...} body with the given status code.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.ErrorResponse{Message: message})
}

// Health handles GET /health. It never touches the database.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// writeServerError logs err and writes a 500 response. The error text is
// included only when detail is true.
func writeServerError(w http.ResponseWriter, err error, detail bool, logger zerolog.Logger) {
	logger.Error().Err(err).Int("status", http.StatusInternalServerError).Msg("handler error")

	resp := model.ErrorResponse{Message: model.MessageServerError}
	if detail {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, resp)
}
