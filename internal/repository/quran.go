package repository

import (
	"database/sql"
	"errors"

	"github.com/Rahik-516/Noor-Web/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrQuranTrackingNotFound = errors.New("quran tracking not found")
)

type QuranRepository interface {
	Tracking(userID string) (*model.QuranTrackingRecord, error)
	SaveTracking(record *model.QuranTrackingRecord) error
	JuzProgress(userID string) ([]*model.QuranJuzProgress, error)
	UpsertJuz(progress *model.QuranJuzProgress) (*model.QuranJuzProgress, error)
	CountCompletedJuz(userID string) (int, error)
}

type quranRepository struct {
	db *sqlx.DB
}

func NewQuranRepository(db *sqlx.DB) QuranRepository {
	return &quranRepository{db: db}
}

func (r *quranRepository) Tracking(userID string) (*model.QuranTrackingRecord, error) {
	record := &model.QuranTrackingRecord{}
	query := `SELECT * FROM quran_tracking WHERE user_id = $1`

	err := r.db.Get(record, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrQuranTrackingNotFound
	}
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (r *quranRepository) SaveTracking(record *model.QuranTrackingRecord) error {
	query := `INSERT INTO quran_tracking (user_id, mode, payload, updated_at)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (user_id) DO UPDATE
	          SET mode = excluded.mode, payload = excluded.payload, updated_at = excluded.updated_at`

	_, err := r.db.Exec(query, record.UserID, record.Mode, record.Payload, record.UpdatedAt)
	return err
}

func (r *quranRepository) JuzProgress(userID string) ([]*model.QuranJuzProgress, error) {
	progress := []*model.QuranJuzProgress{}
	query := `SELECT * FROM quran_progress WHERE user_id = $1 ORDER BY juz_number ASC`

	err := r.db.Select(&progress, query, userID)
	if err != nil {
		return nil, err
	}

	return progress, nil
}

func (r *quranRepository) UpsertJuz(progress *model.QuranJuzProgress) (*model.QuranJuzProgress, error) {
	query := `INSERT INTO quran_progress (id, user_id, juz_number, completed, date_completed, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (user_id, juz_number) DO UPDATE
	          SET completed = excluded.completed,
	              date_completed = excluded.date_completed,
	              updated_at = excluded.updated_at`

	_, err := r.db.Exec(query,
		progress.ID,
		progress.UserID,
		progress.JuzNumber,
		progress.Completed,
		progress.DateCompleted,
		progress.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	stored := &model.QuranJuzProgress{}
	query = `SELECT * FROM quran_progress WHERE user_id = $1 AND juz_number = $2`
	err = r.db.Get(stored, query, progress.UserID, progress.JuzNumber)
	if err != nil {
		return nil, err
	}

	return stored, nil
}

func (r *quranRepository) CountCompletedJuz(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM quran_progress WHERE user_id = $1 AND completed = $2`
	err := r.db.QueryRow(query, userID, true).Scan(&count)
	return count, err
}
