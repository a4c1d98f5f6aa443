package handler

import (
	"net/http"
	"testing"

	"github.com/Rahik-516/Noor-Web/internal/model"
	"github.com/Rahik-516/Noor-Web/internal/repository"
)

func TestStreakWebhookUnsigned(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv.webhook.Streak, http.MethodPost, "/webhooks/streak", "", `{"userId":"u1","streakCount":7}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	count, err := repository.NewStreakRepository(srv.db).StreakCount("u1")
	if err != nil || count != 7 {
		t.Fatalf("expected streak 7, got %d (%v)", count, err)
	}

	w = do(t, srv.webhook.Streak, http.MethodPost, "/webhooks/streak", "", `{"streakCount":7}`)
	expectError(t, w, http.StatusBadRequest, model.ErrorCodeBadRequest)
}
