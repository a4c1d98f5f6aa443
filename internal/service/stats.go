package service

import (
	"fmt"
	"math"
	"time"

	"github.com/Rahik-516/Noor-Web/internal/clock"
	"github.com/Rahik-516/Noor-Web/internal/model"
	"github.com/Rahik-516/Noor-Web/internal/repository"
	"golang.org/x/sync/errgroup"
)

// prayersPerDay is the number of prayer goals a window needs per day.
const prayersPerDay = 5

type StatsService struct {
	settings repository.GoalSettingRepository
	progress repository.GoalProgressRepository
	streaks  repository.StreakRepository
	quran    repository.QuranRepository
	clock    clock.Clock
	loc      *time.Location
}

func NewStatsService(
	settings repository.GoalSettingRepository,
	progress repository.GoalProgressRepository,
	streaks repository.StreakRepository,
	quran repository.QuranRepository,
	clk clock.Clock,
	loc *time.Location,
) *StatsService {
	if loc == nil {
		loc = time.UTC
	}
	return &StatsService{
		settings: settings,
		progress: progress,
		streaks:  streaks,
		quran:    quran,
		clock:    clk,
		loc:      loc,
	}
}

// Today is the current calendar day in the configured timezone
func (s *StatsService) Today() string {
	return s.clock.Now().In(s.loc).Format(model.DateLayout)
}

// Snapshot recomputes every aggregate for the user. Nothing is cached.
func (s *StatsService) Snapshot(userID string) (*model.StatsSnapshot, error) {
	today := s.Today()
	snap := &model.StatsSnapshot{}
	var completedToday, enabled int

	var g errgroup.Group

	g.Go(func() error {
		n, err := s.progress.CountCompleted(userID)
		snap.TotalGoalsCompleted = n
		return wrapStat("total completed", err)
	})
	g.Go(func() error {
		n, err := s.progress.CountCompletedByType(userID, model.GoalTypeQuran)
		snap.QuranPagesCompleted = n
		return wrapStat("quran completed", err)
	})
	g.Go(func() error {
		n, err := s.progress.CountCompletedByType(userID, model.GoalTypePrayer)
		snap.TotalPrayersCompleted = n
		return wrapStat("prayers completed", err)
	})
	g.Go(func() error {
		n, err := s.quran.CountCompletedJuz(userID)
		snap.QuranJuzCompleted = n
		return wrapStat("juz completed", err)
	})
	g.Go(func() error {
		n, err := s.streaks.StreakCount(userID)
		snap.CurrentStreak = n
		return wrapStat("streak", err)
	})
	g.Go(func() error {
		n, err := s.progress.CountCompletedEnabledOn(userID, today)
		completedToday = n
		return wrapStat("completed today", err)
	})
	g.Go(func() error {
		n, err := s.settings.CountEnabled(userID)
		enabled = n
		return wrapStat("enabled goals", err)
	})

	err := g.Wait()
	if err != nil {
		return nil, err
	}

	snap.GoalCompletionPercentageToday = CompletionPercentage(completedToday, enabled)
	return snap, nil
}

// PrayerWindowComplete reports whether every one of at least five enabled prayer
// goals was completed on each of the last days days, today included.
func (s *StatsService) PrayerWindowComplete(userID string, days int) (bool, error) {
	prayerGoals, err := s.settings.CountEnabledByType(userID, model.GoalTypePrayer)
	if err != nil {
		return false, fmt.Errorf("failed to count prayer goals: %w", err)
	}
	if prayerGoals < prayersPerDay {
		return false, nil
	}

	now := s.clock.Now().In(s.loc)
	to := now.Format(model.DateLayout)
	from := now.AddDate(0, 0, -(days - 1)).Format(model.DateLayout)

	count, err := s.progress.CountCompletedEnabledByTypeBetween(userID, model.GoalTypePrayer, from, to)
	if err != nil {
		return false, fmt.Errorf("failed to count prayer window: %w", err)
	}

	return count >= prayersPerDay*days, nil
}

// CompletionPercentage is round(100 * completed / max(1, enabled))
func CompletionPercentage(completed, enabled int) int {
	return int(math.Round(100 * float64(completed) / float64(max(1, enabled))))
}

func wrapStat(name string, err error) error {
	if err != nil {
		return fmt.Errorf("failed to count %s: %w", name, err)
	}
	return nil
}
