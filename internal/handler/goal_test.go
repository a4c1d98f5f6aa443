package handler

import (
	"net/http"
	"testing"

	"github.com/Rahik-516/Noor-Web/internal/model"
	"github.com/Rahik-516/Noor-Web/internal/service"
)

func TestGoalDayDefaultsToToday(t *testing.T) {
	srv := newTestServer(t)
	_, err := srv.goalService.SeedDefaults("u1")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := do(t, srv.goals.Day, http.MethodGet, "/api/goals", "u1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	day := decode[service.DayView](t, w)
	if day.Date != "2026-03-07" || len(day.Settings) != 7 || len(day.Progress) != 0 {
		t.Fatalf("unexpected day %+v", day)
	}
}

func TestGoalDayRejectsBadDate(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv.goals.Day, http.MethodGet, "/api/goals?date=07-03-2026", "u1", nil)
	expectError(t, w, http.StatusBadRequest, model.ErrorCodeBadRequest)
}

func TestGoalUpsertAndProgress(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv.goals.UpsertSetting, http.MethodPut, "/api/goals", "u1", map[string]any{
		"title":       "কুরআন তিলাওয়াত",
		"goalType":    "quran",
		"targetValue": 5,
		"unit":        "পৃষ্ঠা",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("upsert: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	setting := decode[settingResponse](t, w).Setting

	w = do(t, srv.goals.RecordProgress, http.MethodPost, "/api/goals", "u1", map[string]any{
		"goalId":         setting.ID,
		"completedValue": 9,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("progress: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	result := decode[service.ProgressResult](t, w)
	if !result.Success || result.Progress.CompletedValue != 5 || !result.Progress.Completed {
		t.Fatalf("expected clamped completed progress, got %+v", result.Progress)
	}
	if result.Progress.ProgressDate != "2026-03-07" {
		t.Fatalf("expected today's date, got %s", result.Progress.ProgressDate)
	}
	if len(result.UnlockedAchievements) != 1 || result.UnlockedAchievements[0] != "first_goal" {
		t.Fatalf("expected first_goal, got %v", result.UnlockedAchievements)
	}
}

func TestGoalProgressErrors(t *testing.T) {
	srv := newTestServer(t)
	settings, _ := srv.goalService.SeedDefaults("u1")

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"empty body", "", http.StatusBadRequest, model.ErrorCodeBadRequest},
		{"malformed json", "{", http.StatusBadRequest, model.ErrorCodeBadRequest},
		{"missing goal", map[string]any{"completed": true}, http.StatusBadRequest, model.ErrorCodeBadRequest},
		{"negative value", map[string]any{"goalId": settings[0].ID, "completedValue": -1}, http.StatusBadRequest, model.ErrorCodeBadRequest},
		{"unknown goal", map[string]any{"goalId": "nope", "completed": true}, http.StatusNotFound, model.ErrorCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv.goals.RecordProgress, http.MethodPost, "/api/goals", "u1", tt.body)
			expectError(t, w, tt.status, tt.code)
		})
	}

	// Another user's goal is not found
	w := do(t, srv.goals.RecordProgress, http.MethodPost, "/api/goals", "u2", map[string]any{"goalId": settings[0].ID, "completed": true})
	expectError(t, w, http.StatusNotFound, model.ErrorCodeNotFound)
}

func TestGoalRenameConflict(t *testing.T) {
	srv := newTestServer(t)
	settings, _ := srv.goalService.SeedDefaults("u1")

	w := do(t, srv.goals.UpsertSetting, http.MethodPut, "/api/goals", "u1", map[string]any{
		"id":       settings[0].ID,
		"title":    settings[1].Title,
		"goalType": "prayer",
		"unit":     "ওয়াক্ত",
	})
	expectError(t, w, http.StatusConflict, model.ErrorCodeConflict)
}

func TestGoalUpsertValidation(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv.goals.UpsertSetting, http.MethodPut, "/api/goals", "u1", map[string]any{
		"title":       "A",
		"goalType":    "sleep",
		"targetValue": 1,
		"unit":        "x",
	})
	expectError(t, w, http.StatusBadRequest, model.ErrorCodeBadRequest)
}

func TestGoalDelete(t *testing.T) {
	srv := newTestServer(t)
	settings, _ := srv.goalService.SeedDefaults("u1")

	w := do(t, srv.goals.DeleteSetting, http.MethodDelete, "/api/goals", "u1", nil)
	expectError(t, w, http.StatusBadRequest, model.ErrorCodeBadRequest)

	w = do(t, srv.goals.DeleteSetting, http.MethodDelete, "/api/goals?id="+settings[0].ID, "u2", nil)
	expectError(t, w, http.StatusNotFound, model.ErrorCodeNotFound)

	w = do(t, srv.goals.DeleteSetting, http.MethodDelete, "/api/goals?id="+settings[0].ID, "u1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
