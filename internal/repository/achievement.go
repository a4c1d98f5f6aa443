package repository

import (
	"time"

	"github.com/Rahik-516/Noor-Web/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type AchievementRepository interface {
	Unlocks(userID string) ([]*model.AchievementUnlock, error)
	Unlock(userID, key string, at time.Time) (bool, error)
}

type achievementRepository struct {
	db *sqlx.DB
}

func NewAchievementRepository(db *sqlx.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) Unlocks(userID string) ([]*model.AchievementUnlock, error) {
	unlocks := []*model.AchievementUnlock{}
	query := `SELECT * FROM user_achievements WHERE user_id = $1 ORDER BY unlocked_at ASC`

	err := r.db.Select(&unlocks, query, userID)
	if err != nil {
		return nil, err
	}

	return unlocks, nil
}

// Unlock inserts the (user, achievement) row if it does not exist yet.
// It reports true only for the call that created the row.
func (r *achievementRepository) Unlock(userID, key string, at time.Time) (bool, error) {
	query := `INSERT INTO user_achievements (id, user_id, achievement_key, unlocked_at)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (user_id, achievement_key) DO NOTHING`

	result, err := r.db.Exec(query, uuid.New().String(), userID, key, at)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows == 1, nil
}
