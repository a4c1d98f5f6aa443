package syncclient

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Rahik-516/Noor-Web/internal/clock"
	"github.com/Rahik-516/Noor-Web/internal/db"
	"github.com/jmoiron/sqlx"
)

// Local cache keys
const (
	KeySelectedCity  = "selected-city"
	KeyGoals         = "daily-goals"
	KeyGoalsProgress = "daily-goals-progress"
	KeyNotifyPrefs   = "goal-notification-prefs"
	KeyNotifyState   = "goal-notify-state"
	KeyQuranTracking = "quran-tracking"
	KeyPrayer        = "prayer-schedule"
)

var (
	ErrCacheMiss = errors.New("cache entry not found")
)

// Cache is a versioned JSON key/value store. Every Put bumps the key's version.
type Cache interface {
	Get(key string, v any) (int64, error)
	Put(key string, v any) (int64, error)
}

type SQLCache struct {
	db    *sqlx.DB
	clock clock.Clock
}

// OpenCache opens (creating if needed) the sqlite cache at path and applies
// the client migrations.
func OpenCache(path string, clk clock.Clock) (*SQLCache, error) {
	database, err := db.Init(db.DriverSQLite, path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	err = db.RunMigrations(database.DB, db.DriverSQLite, db.ClientMigrations)
	if err != nil {
		database.Close()
		return nil, err
	}

	return &SQLCache{db: database, clock: clk}, nil
}

func (c *SQLCache) Close() error {
	return db.Close(c.db)
}

// Get decodes the value stored under key into v and returns its version
func (c *SQLCache) Get(key string, v any) (int64, error) {
	var entry struct {
		Value   string `db:"value"`
		Version int64  `db:"version"`
	}
	query := `SELECT value, version FROM cache_entries WHERE cache_key = $1`

	err := c.db.Get(&entry, query, key)
	if err == sql.ErrNoRows {
		return 0, ErrCacheMiss
	}
	if err != nil {
		return 0, err
	}

	err = json.Unmarshal([]byte(entry.Value), v)
	if err != nil {
		return 0, fmt.Errorf("failed to decode cache entry %s: %w", key, err)
	}

	return entry.Version, nil
}

func (c *SQLCache) Put(key string, v any) (int64, error) {
	value, err := json.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("failed to encode cache entry %s: %w", key, err)
	}

	query := `INSERT INTO cache_entries (cache_key, value, version, updated_at)
	          VALUES ($1, $2, 1, $3)
	          ON CONFLICT (cache_key) DO UPDATE
	          SET value = excluded.value,
	              version = cache_entries.version + 1,
	              updated_at = excluded.updated_at`

	_, err = c.db.Exec(query, key, string(value), c.clock.Now().UTC())
	if err != nil {
		return 0, err
	}

	var version int64
	err = c.db.Get(&version, `SELECT version FROM cache_entries WHERE cache_key = $1`, key)
	if err != nil {
		return 0, err
	}

	return version, nil
}
