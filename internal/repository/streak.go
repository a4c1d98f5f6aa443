package repository

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

type StreakRepository interface {
	StreakCount(userID string) (int, error)
	Upsert(userID string, count int, at time.Time) error
}

type streakRepository struct {
	db *sqlx.DB
}

func NewStreakRepository(db *sqlx.DB) StreakRepository {
	return &streakRepository{db: db}
}

// StreakCount returns 0 for users without a streak row
func (r *streakRepository) StreakCount(userID string) (int, error) {
	var count int
	query := `SELECT streak_count FROM user_streaks WHERE user_id = $1`

	err := r.db.QueryRow(query, userID).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}

	return count, err
}

func (r *streakRepository) Upsert(userID string, count int, at time.Time) error {
	query := `INSERT INTO user_streaks (user_id, streak_count, updated_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (user_id) DO UPDATE
	          SET streak_count = excluded.streak_count, updated_at = excluded.updated_at`

	_, err := r.db.Exec(query, userID, count, at)
	return err
}
