package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/Rahik-516/Noor-Web/internal/model"
	"github.com/Rahik-516/Noor-Web/internal/service"
)

type WebhookHandler struct {
	streakService *service.StreakService
}

func NewWebhookHandler(streakService *service.StreakService) *WebhookHandler {
	return &WebhookHandler{
		streakService: streakService,
	}
}

func (h *WebhookHandler) Streak(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		slog.Error("failed to read webhook payload", "error", err)
		writeError(w, http.StatusBadRequest, model.ErrorCodeBadRequest, "failed to read payload")
		return
	}
	defer func() {
		closeErr := r.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close request body", "error", closeErr)
		}
	}()

	_, err = h.streakService.HandleWebhook(payload, r.Header)
	if err != nil {
		writeServiceError(w, r, err, "process webhook")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
