package model

import (
	"time"
)

// StatsSnapshot is derived on demand and never persisted.
type StatsSnapshot struct {
	TotalGoalsCompleted           int `json:"totalGoalsCompleted"`
	QuranPagesCompleted           int `json:"quranPagesCompleted"`
	QuranJuzCompleted             int `json:"quranJuzCompleted"`
	CurrentStreak                 int `json:"currentStreak"`
	TotalPrayersCompleted         int `json:"totalPrayersCompleted"`
	GoalCompletionPercentageToday int `json:"goalCompletionPercentageToday"`
}

type Streak struct {
	UserID      string    `db:"user_id" json:"userId"`
	StreakCount int       `db:"streak_count" json:"streakCount"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
