package model

import (
	"time"
)

const (
	AchievementCategoryDailyGoals  = "daily_goals"
	AchievementCategoryPrayer      = "prayer"
	AchievementCategoryQuran       = "quran"
	AchievementCategoryConsistency = "consistency"
	AchievementCategoryMilestones  = "milestones"
)

// AchievementDefinition is an entry of the static achievement catalog.
type AchievementDefinition struct {
	Key             string `json:"key"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DescriptionHTML string `json:"descriptionHtml"`
	Emoji           string `json:"emoji"`
	Category        string `json:"category"`
	Order           int    `json:"-"`
}

type AchievementUnlock struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"-"`
	AchievementKey string    `db:"achievement_key" json:"achievementKey"`
	UnlockedAt     time.Time `db:"unlocked_at" json:"unlockedAt"`
}

// AchievementStatus is a catalog entry joined with one user's unlock state.
type AchievementStatus struct {
	AchievementDefinition
	CategoryLabel string     `json:"categoryLabel"`
	Unlocked      bool       `json:"unlocked"`
	UnlockedAt    *time.Time `json:"unlockedAt,omitempty"`
}
