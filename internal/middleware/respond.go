package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Rahik-516/Noor-Web/internal/model"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(model.ErrorResponse{Code: code, Message: message})
	if err != nil {
		slog.Error("failed to write error response", "error", err)
	}
}
