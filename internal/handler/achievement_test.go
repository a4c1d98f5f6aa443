package handler

import (
	"net/http"
	"testing"

	"github.com/Rahik-516/Noor-Web/internal/model"
)

func TestAchievementCheckAndList(t *testing.T) {
	srv := newTestServer(t)
	settings, _ := srv.goalService.SeedDefaults("u1")

	w := do(t, srv.goals.RecordProgress, http.MethodPost, "/api/goals", "u1", map[string]any{"goalId": settings[6].ID, "completed": true})
	if w.Code != http.StatusOK {
		t.Fatalf("progress: %d %s", w.Code, w.Body.String())
	}

	w = do(t, srv.achievements.Check, http.MethodPost, "/api/achievements/check", "u1", nil)
	check := decode[checkResponse](t, w)
	if !check.Success || len(check.UnlockedAchievements) != 0 {
		t.Fatalf("second check should unlock nothing, got %+v", check)
	}

	w = do(t, srv.achievements.List, http.MethodGet, "/api/achievements", "u1", nil)
	list := decode[achievementsResponse](t, w)
	if len(list.Achievements) != 10 {
		t.Fatalf("expected 10 achievements, got %d", len(list.Achievements))
	}
	first := list.Achievements[0]
	if first.Key != "first_goal" || !first.Unlocked || first.UnlockedAt == nil || first.CategoryLabel != "Daily Goals" {
		t.Fatalf("unexpected first achievement %+v", first)
	}
	if first.DescriptionHTML != "<p>Complete your first daily goal.</p>" {
		t.Errorf("description html = %q", first.DescriptionHTML)
	}
	if list.Achievements[1].Unlocked {
		t.Fatal("seven_day_streak should be locked")
	}
}

func TestStats(t *testing.T) {
	srv := newTestServer(t)
	settings, _ := srv.goalService.SeedDefaults("u1")
	do(t, srv.goals.RecordProgress, http.MethodPost, "/api/goals", "u1", map[string]any{"goalId": settings[0].ID, "completed": true})

	w := do(t, srv.achievements.Stats, http.MethodGet, "/api/stats", "u1", nil)
	snap := decode[model.StatsSnapshot](t, w)
	if snap.TotalGoalsCompleted != 1 || snap.TotalPrayersCompleted != 1 || snap.GoalCompletionPercentageToday != 14 {
		t.Fatalf("unexpected stats %+v", snap)
	}
}
