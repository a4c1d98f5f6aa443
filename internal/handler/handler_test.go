package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Rahik-516/Noor-Web/internal/clock"
	"github.com/Rahik-516/Noor-Web/internal/content"
	"github.com/Rahik-516/Noor-Web/internal/ctxkeys"
	"github.com/Rahik-516/Noor-Web/internal/db"
	"github.com/Rahik-516/Noor-Web/internal/markdown"
	"github.com/Rahik-516/Noor-Web/internal/model"
	"github.com/Rahik-516/Noor-Web/internal/repository"
	"github.com/Rahik-516/Noor-Web/internal/service"
	"github.com/jmoiron/sqlx"
)

var testStart = time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)

type testServer struct {
	db           *sqlx.DB
	clock        *clock.Fake
	goals        *GoalHandler
	achievements *AchievementHandler
	quran        *QuranHandler
	webhook      *WebhookHandler
	goalService  *service.GoalService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "noor.db")+"?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() { db.Close(database) })

	err = db.RunMigrations(database.DB, "sqlite", db.ServerMigrations)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	clk := clock.NewFake(testStart)
	settings := repository.NewGoalSettingRepository(database)
	progress := repository.NewGoalProgressRepository(database)
	streaks := repository.NewStreakRepository(database)
	quran := repository.NewQuranRepository(database)

	catalog, err := service.LoadAchievementCatalog(content.AchievementsFS, markdown.NewParser())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	stats := service.NewStatsService(settings, progress, streaks, quran, clk, time.UTC)
	achievements, err := service.NewAchievementService(catalog, repository.NewAchievementRepository(database), stats, clk)
	if err != nil {
		t.Fatalf("achievements: %v", err)
	}
	goals := service.NewGoalService(settings, progress, achievements, clk)

	return &testServer{
		db:           database,
		clock:        clk,
		goals:        NewGoalHandler(goals, stats),
		achievements: NewAchievementHandler(achievements, stats),
		quran:        NewQuranHandler(service.NewQuranService(quran, clk)),
		webhook:      NewWebhookHandler(service.NewStreakService(streaks, "", clk)),
		goalService:  goals,
	}
}

// do runs h as userID and returns the recorder
func do(t *testing.T, h http.HandlerFunc, method, target, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch v := body.(type) {
		case string:
			buf.WriteString(v)
		default:
			err := json.NewEncoder(&buf).Encode(v)
			if err != nil {
				t.Fatalf("encode body: %v", err)
			}
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	if userID != "" {
		req = req.WithContext(ctxkeys.WithUserID(req.Context(), userID))
	}

	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	err := json.NewDecoder(w.Body).Decode(&v)
	if err != nil {
		t.Fatalf("decode response: %v (body %q)", err, w.Body.String())
	}
	return v
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()

	if w.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, w.Code, w.Body.String())
	}
	resp := decode[model.ErrorResponse](t, w)
	if resp.Code != code {
		t.Fatalf("expected code %s, got %s", code, resp.Code)
	}
}
