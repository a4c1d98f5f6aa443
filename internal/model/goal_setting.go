package model

import (
	"time"
)

const (
	GoalTypePrayer = "prayer"
	GoalTypeQuran  = "quran"
	GoalTypeDhikr  = "dhikr"
	GoalTypeCustom = "custom"
)

type GoalSetting struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"-"`
	Title       string    `db:"title" json:"title"`
	GoalType    string    `db:"goal_type" json:"goalType"`
	TargetValue int       `db:"target_value" json:"targetValue"`
	Unit        string    `db:"unit" json:"unit"`
	Enabled     bool      `db:"enabled" json:"enabled"`
	IsCustom    bool      `db:"is_custom" json:"isCustom"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// DefaultGoals returns the built-in goals seeded for a user with no settings.
// IDs are left empty; the store assigns them.
func DefaultGoals() []GoalSetting {
	return []GoalSetting{
		{Title: "ফজর সালাত", GoalType: GoalTypePrayer, TargetValue: 1, Unit: "ওয়াক্ত", Enabled: true},
		{Title: "যোহর সালাত", GoalType: GoalTypePrayer, TargetValue: 1, Unit: "ওয়াক্ত", Enabled: true},
		{Title: "আসর সালাত", GoalType: GoalTypePrayer, TargetValue: 1, Unit: "ওয়াক্ত", Enabled: true},
		{Title: "মাগরিব সালাত", GoalType: GoalTypePrayer, TargetValue: 1, Unit: "ওয়াক্ত", Enabled: true},
		{Title: "ইশা সালাত", GoalType: GoalTypePrayer, TargetValue: 1, Unit: "ওয়াক্ত", Enabled: true},
		{Title: "কুরআন তিলাওয়াত", GoalType: GoalTypeQuran, TargetValue: 5, Unit: "পৃষ্ঠা", Enabled: true},
		{Title: "যিকির", GoalType: GoalTypeDhikr, TargetValue: 15, Unit: "মিনিট", Enabled: true},
	}
}
