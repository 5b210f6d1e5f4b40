package endpoints

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"social-distance/models"
	"social-distance/services"
)

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("[API] Error encoding JSON", "error", err)
	}
}

// writeError writes an error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}

// upstreamErrorBody keeps a JSON upstream body as-is and falls back to its text otherwise
func upstreamErrorBody(err *services.HTTPError) any {
	if json.Valid(err.Body) {
		return json.RawMessage(err.Body)
	}
	if len(err.Body) == 0 {
		return http.StatusText(err.StatusCode)
	}
	return string(err.Body)
}
