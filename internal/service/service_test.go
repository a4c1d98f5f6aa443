package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Rahik-516/Noor-Web/internal/clock"
	"github.com/Rahik-516/Noor-Web/internal/content"
	"github.com/Rahik-516/Noor-Web/internal/db"
	"github.com/Rahik-516/Noor-Web/internal/markdown"
	"github.com/Rahik-516/Noor-Web/internal/model"
	"github.com/Rahik-516/Noor-Web/internal/repository"
)

var testStart = time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	clock        *clock.Fake
	settings     repository.GoalSettingRepository
	progress     repository.GoalProgressRepository
	streaks      repository.StreakRepository
	quranRepo    repository.QuranRepository
	stats        *StatsService
	achievements *AchievementService
	goals        *GoalService
	quran        *QuranService
}

func newTestEnv(t *testing.T) *testEnv {
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

	env := &testEnv{
		clock:     clock.NewFake(testStart),
		settings:  repository.NewGoalSettingRepository(database),
		progress:  repository.NewGoalProgressRepository(database),
		streaks:   repository.NewStreakRepository(database),
		quranRepo: repository.NewQuranRepository(database),
	}

	catalog := loadCatalog(t)
	env.stats = NewStatsService(env.settings, env.progress, env.streaks, env.quranRepo, env.clock, time.UTC)
	env.achievements, err = NewAchievementService(catalog, repository.NewAchievementRepository(database), env.stats, env.clock)
	if err != nil {
		t.Fatalf("achievement service: %v", err)
	}
	env.goals = NewGoalService(env.settings, env.progress, env.achievements, env.clock)
	env.quran = NewQuranService(env.quranRepo, env.clock)

	return env
}

func loadCatalog(t *testing.T) []model.AchievementDefinition {
	t.Helper()

	catalog, err := LoadAchievementCatalog(content.AchievementsFS, markdown.NewParser())
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return catalog
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func today(c *clock.Fake) string {
	return c.Now().Format(model.DateLayout)
}
