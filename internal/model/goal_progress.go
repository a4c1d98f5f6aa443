package model

import (
	"time"
)

// DateLayout is the wire and storage format of a progress day.
const DateLayout = "2006-01-02"

type GoalProgress struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"-"`
	GoalID         string    `db:"goal_id" json:"goalId"`
	ProgressDate   string    `db:"progress_date" json:"date"`
	CompletedValue int       `db:"completed_value" json:"completedValue"`
	Completed      bool      `db:"completed" json:"completed"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// ResolveProgress clamps value into [0, target] and derives the completed flag
// from the clamped value. A completed mark without a value counts as the full target.
func ResolveProgress(value int, completed bool, target int) (int, bool) {
	if target < 1 {
		target = 1
	}
	if completed && value == 0 {
		value = target
	}
	if value < 0 {
		value = 0
	}
	if value > target {
		value = target
	}
	return value, value >= target
}
