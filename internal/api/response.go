package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/spacesedan/trendcast/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("[API] Failed to write response", slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message, ErrorKind: kind})
}
