package repository

import (
	"github.com/Rahik-516/Noor-Web/internal/model"
	"github.com/jmoiron/sqlx"
)

type GoalProgressRepository interface {
	ByDate(userID, date string) ([]*model.GoalProgress, error)
	Upsert(progress *model.GoalProgress) (*model.GoalProgress, error)
	CountCompleted(userID string) (int, error)
	CountCompletedByType(userID, goalType string) (int, error)
	CountCompletedEnabledByTypeBetween(userID, goalType, from, to string) (int, error)
	CountCompletedEnabledOn(userID, date string) (int, error)
}

type goalProgressRepository struct {
	db *sqlx.DB
}

func NewGoalProgressRepository(db *sqlx.DB) GoalProgressRepository {
	return &goalProgressRepository{db: db}
}

func (r *goalProgressRepository) ByDate(userID, date string) ([]*model.GoalProgress, error) {
	progress := []*model.GoalProgress{}
	query := `SELECT * FROM goal_progress WHERE user_id = $1 AND progress_date = $2 ORDER BY updated_at ASC`

	err := r.db.Select(&progress, query, userID, date)
	if err != nil {
		return nil, err
	}

	return progress, nil
}

// Upsert writes the row keyed by (user_id, goal_id, progress_date). Replaying
// the same write leaves the stored value unchanged.
func (r *goalProgressRepository) Upsert(progress *model.GoalProgress) (*model.GoalProgress, error) {
	query := `INSERT INTO goal_progress (id, user_id, goal_id, progress_date, completed_value, completed, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (user_id, goal_id, progress_date) DO UPDATE
	          SET completed_value = excluded.completed_value,
	              completed = excluded.completed,
	              updated_at = excluded.updated_at`

	_, err := r.db.Exec(query,
		progress.ID,
		progress.UserID,
		progress.GoalID,
		progress.ProgressDate,
		progress.CompletedValue,
		progress.Completed,
		progress.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	stored := &model.GoalProgress{}
	query = `SELECT * FROM goal_progress WHERE user_id = $1 AND goal_id = $2 AND progress_date = $3`
	err = r.db.Get(stored, query, progress.UserID, progress.GoalID, progress.ProgressDate)
	if err != nil {
		return nil, err
	}

	return stored, nil
}

func (r *goalProgressRepository) CountCompleted(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goal_progress WHERE user_id = $1 AND completed = $2`
	err := r.db.QueryRow(query, userID, true).Scan(&count)
	return count, err
}

func (r *goalProgressRepository) CountCompletedByType(userID, goalType string) (int, error) {
	var count int
	query := `SELECT COUNT(*)
	          FROM goal_progress p
	          JOIN goal_settings s ON s.id = p.goal_id AND s.user_id = p.user_id
	          WHERE p.user_id = $1 AND s.goal_type = $2 AND p.completed = $3`
	err := r.db.QueryRow(query, userID, goalType, true).Scan(&count)
	return count, err
}

// CountCompletedEnabledByTypeBetween counts completed rows of enabled goalType
// goals with from <= date <= to
func (r *goalProgressRepository) CountCompletedEnabledByTypeBetween(userID, goalType, from, to string) (int, error) {
	var count int
	query := `SELECT COUNT(*)
	          FROM goal_progress p
	          JOIN goal_settings s ON s.id = p.goal_id AND s.user_id = p.user_id
	          WHERE p.user_id = $1 AND s.goal_type = $2 AND p.completed = $3 AND s.enabled = $4
	            AND p.progress_date >= $5 AND p.progress_date <= $6`
	err := r.db.QueryRow(query, userID, goalType, true, true, from, to).Scan(&count)
	return count, err
}

// CountCompletedEnabledOn counts completed rows on date that belong to enabled goals
func (r *goalProgressRepository) CountCompletedEnabledOn(userID, date string) (int, error) {
	var count int
	query := `SELECT COUNT(*)
	          FROM goal_progress p
	          JOIN goal_settings s ON s.id = p.goal_id AND s.user_id = p.user_id
	          WHERE p.user_id = $1 AND p.progress_date = $2 AND p.completed = $3 AND s.enabled = $4`
	err := r.db.QueryRow(query, userID, date, true, true).Scan(&count)
	return count, err
}
