package service

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/Rahik-516/Noor-Web/internal/clock"
	"github.com/Rahik-516/Noor-Web/internal/markdown"
	"github.com/Rahik-516/Noor-Web/internal/model"
	"github.com/Rahik-516/Noor-Web/internal/repository"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	errStatsUnavailable = errors.New("stats snapshot unavailable")
)

type achievementCondition struct {
	key string
	met func(userID string, snap *model.StatsSnapshot) (bool, error)
}

type AchievementService struct {
	catalog    []model.AchievementDefinition
	conditions []achievementCondition
	repo       repository.AchievementRepository
	stats      *StatsService
	clock      clock.Clock
}

func NewAchievementService(
	catalog []model.AchievementDefinition,
	repo repository.AchievementRepository,
	stats *StatsService,
	clk clock.Clock,
) (*AchievementService, error) {
	s := &AchievementService{
		catalog: catalog,
		repo:    repo,
		stats:   stats,
		clock:   clk,
	}
	s.conditions = s.buildConditions()

	known := make(map[string]bool, len(catalog))
	for _, def := range catalog {
		known[def.Key] = true
	}
	for _, c := range s.conditions {
		if !known[c.key] {
			return nil, fmt.Errorf("achievement %s missing from catalog", c.key)
		}
	}

	return s, nil
}

// buildConditions returns the unlock rules in evaluation order
func (s *AchievementService) buildConditions() []achievementCondition {
	return []achievementCondition{
		{key: "first_goal", met: snapshotAtLeast(func(st *model.StatsSnapshot) int { return st.TotalGoalsCompleted }, 1)},
		{key: "seven_day_streak", met: snapshotAtLeast(func(st *model.StatsSnapshot) int { return st.CurrentStreak }, 7)},
		{key: "thirty_day_streak", met: snapshotAtLeast(func(st *model.StatsSnapshot) int { return st.CurrentStreak }, 30)},
		{key: "quran_buddy", met: snapshotAtLeast(func(st *model.StatsSnapshot) int { return st.QuranPagesCompleted }, 5)},
		{key: "quran_companion", met: snapshotAtLeast(func(st *model.StatsSnapshot) int { return st.QuranPagesCompleted }, 50)},
		{key: "quran_master", met: snapshotAtLeast(func(st *model.StatsSnapshot) int { return st.QuranPagesCompleted }, 30)},
		{key: "prayer_seeker", met: s.prayerWindow(7)},
		{key: "prayer_regular", met: s.prayerWindow(30)},
		{key: "milestone_ten_goals", met: snapshotAtLeast(func(st *model.StatsSnapshot) int { return st.TotalGoalsCompleted }, 10)},
		{key: "milestone_fifty_goals", met: snapshotAtLeast(func(st *model.StatsSnapshot) int { return st.TotalGoalsCompleted }, 50)},
	}
}

func snapshotAtLeast(value func(*model.StatsSnapshot) int, threshold int) func(string, *model.StatsSnapshot) (bool, error) {
	return func(_ string, snap *model.StatsSnapshot) (bool, error) {
		if snap == nil {
			return false, errStatsUnavailable
		}
		return value(snap) >= threshold, nil
	}
}

func (s *AchievementService) prayerWindow(days int) func(string, *model.StatsSnapshot) (bool, error) {
	return func(userID string, _ *model.StatsSnapshot) (bool, error) {
		return s.stats.PrayerWindowComplete(userID, days)
	}
}

// CheckAndUnlock evaluates every condition and returns the keys unlocked by
// this call. A failing condition is logged and skipped; the call itself never fails.
func (s *AchievementService) CheckAndUnlock(userID string) []string {
	unlocked := []string{}

	snap, err := s.stats.Snapshot(userID)
	if err != nil {
		slog.Error("failed to compute stats for achievements", "error", err, "user_id", userID)
		snap = nil
	}

	for _, c := range s.conditions {
		met, err := c.met(userID, snap)
		if err != nil {
			slog.Error("failed to evaluate achievement condition", "error", err, "user_id", userID, "achievement", c.key)
			continue
		}
		if !met {
			continue
		}

		created, err := s.repo.Unlock(userID, c.key, s.clock.Now().UTC())
		if err != nil {
			slog.Error("failed to unlock achievement", "error", err, "user_id", userID, "achievement", c.key)
			continue
		}

		if created {
			slog.Info("achievement unlocked", "user_id", userID, "achievement", c.key)
			unlocked = append(unlocked, c.key)
		}
	}

	return unlocked
}

// Statuses returns the full catalog with the user's unlock state
func (s *AchievementService) Statuses(userID string) ([]model.AchievementStatus, error) {
	unlocks, err := s.repo.Unlocks(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unlocks: %w", err)
	}

	unlockedAt := make(map[string]*model.AchievementUnlock, len(unlocks))
	for _, u := range unlocks {
		unlockedAt[u.AchievementKey] = u
	}

	statuses := make([]model.AchievementStatus, 0, len(s.catalog))
	for _, def := range s.catalog {
		status := model.AchievementStatus{
			AchievementDefinition: def,
			CategoryLabel:         s.CategoryLabel(def.Category),
		}
		if u, ok := unlockedAt[def.Key]; ok {
			at := u.UnlockedAt
			status.Unlocked = true
			status.UnlockedAt = &at
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}

// CategoryLabel turns "daily_goals" into "Daily Goals"
func (s *AchievementService) CategoryLabel(category string) string {
	// Casers are stateful, so one per call
	return cases.Title(language.English).String(strings.ReplaceAll(category, "_", " "))
}

// LoadAchievementCatalog reads achievements/*.md from fsys. Frontmatter carries
// key, title, emoji, category and order; the body is the description.
func LoadAchievementCatalog(fsys fs.FS, parser *markdown.Parser) ([]model.AchievementDefinition, error) {
	files, err := fs.Glob(fsys, "achievements/*.md")
	if err != nil {
		return nil, err
	}

	catalog := make([]model.AchievementDefinition, 0, len(files))
	seen := make(map[string]bool, len(files))
	for _, file := range files {
		source, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}

		doc, err := parser.Parse(source)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}

		def := model.AchievementDefinition{
			Key:             metaString(doc.Meta, "key"),
			Title:           metaString(doc.Meta, "title"),
			Emoji:           metaString(doc.Meta, "emoji"),
			Category:        metaString(doc.Meta, "category"),
			Order:           metaInt(doc.Meta, "order"),
			Description:     doc.Text,
			DescriptionHTML: doc.HTML,
		}
		if def.Key == "" {
			def.Key = strings.TrimSuffix(path.Base(file), ".md")
		}
		if seen[def.Key] {
			return nil, fmt.Errorf("duplicate achievement key %s", def.Key)
		}
		seen[def.Key] = true

		catalog = append(catalog, def)
	}

	sort.SliceStable(catalog, func(i, j int) bool {
		return catalog[i].Order < catalog[j].Order
	})

	return catalog, nil
}

func metaString(meta map[string]any, key string) string {
	value, ok := meta[key].(string)
	if ok {
		return value
	}
	return ""
}

func metaInt(meta map[string]any, key string) int {
	switch v := meta[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
