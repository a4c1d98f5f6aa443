package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/Rahik-516/Noor-Web/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrGoalSettingNotFound = errors.New("goal setting not found")
	ErrDuplicateGoalTitle  = errors.New("goal title already exists")
)

type GoalSettingRepository interface {
	Settings(userID string) ([]*model.GoalSetting, error)
	ByID(userID, id string) (*model.GoalSetting, error)
	Upsert(setting *model.GoalSetting) (*model.GoalSetting, error)
	Update(setting *model.GoalSetting) error
	Delete(userID, id string) error
	CountEnabled(userID string) (int, error)
	CountEnabledByType(userID, goalType string) (int, error)
}

type goalSettingRepository struct {
	db *sqlx.DB
}

func NewGoalSettingRepository(db *sqlx.DB) GoalSettingRepository {
	return &goalSettingRepository{db: db}
}

func (r *goalSettingRepository) Settings(userID string) ([]*model.GoalSetting, error) {
	settings := []*model.GoalSetting{}
	query := `SELECT * FROM goal_settings WHERE user_id = $1 ORDER BY created_at ASC, title ASC`

	err := r.db.Select(&settings, query, userID)
	if err != nil {
		return nil, err
	}

	return settings, nil
}

func (r *goalSettingRepository) ByID(userID, id string) (*model.GoalSetting, error) {
	setting := &model.GoalSetting{}
	query := `SELECT * FROM goal_settings WHERE id = $1 AND user_id = $2`

	err := r.db.Get(setting, query, id, userID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalSettingNotFound
	}
	if err != nil {
		return nil, err
	}

	return setting, nil
}

// Upsert inserts the setting or, when (user_id, title) already exists, overwrites
// that row in place. The stored row is returned; its ID wins over setting.ID on conflict.
func (r *goalSettingRepository) Upsert(setting *model.GoalSetting) (*model.GoalSetting, error) {
	query := `INSERT INTO goal_settings (id, user_id, title, goal_type, target_value, unit, enabled, is_custom, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          ON CONFLICT (user_id, title) DO UPDATE
	          SET goal_type = excluded.goal_type,
	              target_value = excluded.target_value,
	              unit = excluded.unit,
	              enabled = excluded.enabled,
	              is_custom = excluded.is_custom,
	              updated_at = excluded.updated_at`

	_, err := r.db.Exec(query,
		setting.ID,
		setting.UserID,
		setting.Title,
		setting.GoalType,
		setting.TargetValue,
		setting.Unit,
		setting.Enabled,
		setting.IsCustom,
		setting.CreatedAt,
		setting.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	stored := &model.GoalSetting{}
	err = r.db.Get(stored, `SELECT * FROM goal_settings WHERE user_id = $1 AND title = $2`, setting.UserID, setting.Title)
	if err != nil {
		return nil, err
	}

	return stored, nil
}

func (r *goalSettingRepository) Update(setting *model.GoalSetting) error {
	query := `UPDATE goal_settings
	          SET title = $1, goal_type = $2, target_value = $3, unit = $4, enabled = $5, is_custom = $6, updated_at = $7
	          WHERE id = $8 AND user_id = $9`

	result, err := r.db.Exec(query,
		setting.Title,
		setting.GoalType,
		setting.TargetValue,
		setting.Unit,
		setting.Enabled,
		setting.IsCustom,
		setting.UpdatedAt,
		setting.ID,
		setting.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateGoalTitle
		}
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalSettingNotFound
	}

	return nil
}

// Delete removes the setting and its progress rows
func (r *goalSettingRepository) Delete(userID, id string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE FROM goal_progress WHERE goal_id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	result, err := tx.Exec(`DELETE FROM goal_settings WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalSettingNotFound
	}

	return tx.Commit()
}

func (r *goalSettingRepository) CountEnabled(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goal_settings WHERE user_id = $1 AND enabled = $2`
	err := r.db.QueryRow(query, userID, true).Scan(&count)
	return count, err
}

func (r *goalSettingRepository) CountEnabledByType(userID, goalType string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goal_settings WHERE user_id = $1 AND goal_type = $2 AND enabled = $3`
	err := r.db.QueryRow(query, userID, goalType, true).Scan(&count)
	return count, err
}

// isUniqueViolation works for both SQLite and PostgreSQL
func isUniqueViolation(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value")
}
