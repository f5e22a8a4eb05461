package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorResponse is the error envelope of every endpoint.
type errorResponse struct {
	Error  string `json:"error"`
	Detail any    `json:"detail,omitempty"`
}

// writeJSON writes v as JSON with the given status code.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.WarnContext(r.Context(), "failed to write response", "error", err)
	}
}

// writeError writes an error envelope. code is a stable machine-readable tag.
func writeError(w http.ResponseWriter, r *http.Request, status int, code string) {
	writeJSON(w, r, status, errorResponse{Error: code})
}
