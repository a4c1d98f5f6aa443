package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppEnv   string
	Port     string
	Timezone string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret           string
	JWTExpiry           time.Duration
	StreakWebhookSecret string

	// Prayer times upstream
	PrayerAPIURL     string
	PrayerAPICountry string
	PrayerAPIMethod  string
	PrayerCacheTTL   time.Duration
	PrayerAPITimeout time.Duration

	// Achievement checks allowed per user per minute
	AchievementCheckLimit int

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	loadDotEnv()

	cfg := &Config{
		// Application
		AppEnv:   envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:     envString("PORT", "8090"),
		Timezone: envString("APP_TIMEZONE", "Asia/Dhaka"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/noor.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret:           envRequired("JWT_SECRET"),
		JWTExpiry:           envDuration("JWT_EXPIRY", 720*time.Hour), // 30 days
		StreakWebhookSecret: envString("STREAK_WEBHOOK_SECRET", ""),

		// Prayer times
		PrayerAPIURL:     envString("PRAYER_API_URL", "https://api.aladhan.com/v1/timingsByCity"),
		PrayerAPICountry: envString("PRAYER_API_COUNTRY", "Bangladesh"),
		PrayerAPIMethod:  envString("PRAYER_API_METHOD", "1"),
		PrayerCacheTTL:   envDuration("PRAYER_CACHE_TTL", 15*time.Minute),
		PrayerAPITimeout: envDuration("PRAYER_API_TIMEOUT", 5*time.Second),

		AchievementCheckLimit: envInt("ACHIEVEMENT_CHECK_LIMIT", 30),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures the integrations a production deployment depends on are configured.
func validateProduction(cfg *Config) {
	if cfg.StreakWebhookSecret == "" {
		slog.Error("production deployment requires STREAK_WEBHOOK_SECRET",
			"hint", "set APP_ENV=development to accept unsigned streak webhooks locally")
		os.Exit(1)
	}
}

// ClientConfig configures the noor companion CLI.
type ClientConfig struct {
	AppEnv string

	// Remote store
	APIURL string
	Token  string

	// Local cache
	CachePath    string
	SyncDebounce time.Duration

	// Reminders
	ReminderInterval time.Duration
	PrayerLead       time.Duration
	EveningReminder  string
	QuranReminder    string
	Timezone         string

	// Email reminders (optional)
	ResendAPIKey  string
	EmailFrom     string
	ReminderEmail string

	// Observability (optional)
	SentryDSN string
}

func LoadClient() *ClientConfig {
	loadDotEnv()

	return &ClientConfig{
		AppEnv: envString("APP_ENV", "development"),

		APIURL: envString("NOOR_API_URL", "http://localhost:8090"),
		Token:  envString("NOOR_TOKEN", ""),

		CachePath:    envString("NOOR_CACHE_PATH", defaultCachePath()),
		SyncDebounce: envDuration("NOOR_SYNC_DEBOUNCE", 600*time.Millisecond),

		ReminderInterval: envDuration("NOOR_REMINDER_INTERVAL", 60*time.Second),
		PrayerLead:       envDuration("NOOR_PRAYER_LEAD", 10*time.Minute),
		EveningReminder:  envString("NOOR_EVENING_REMINDER", "20:00"),
		QuranReminder:    envString("NOOR_QURAN_REMINDER", "16:00"),
		Timezone:         envString("NOOR_TIMEZONE", "Asia/Dhaka"),

		ResendAPIKey:  envString("RESEND_API_KEY", ""),
		EmailFrom:     envString("EMAIL_FROM", "noreply@example.com"),
		ReminderEmail: envString("NOOR_REMINDER_EMAIL", ""),

		SentryDSN: envString("SENTRY_DSN", ""),
	}
}

func (c *ClientConfig) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "noor-cache.db"
	}
	return filepath.Join(home, ".noor", "cache.db")
}

func loadDotEnv() {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public/safe fields.
// Secrets and connection strings are excluded.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppEnv:   c.AppEnv,
		Port:     c.Port,
		Timezone: c.Timezone,
		DBDriver: c.DBDriver,

		PrayerAPICountry: c.PrayerAPICountry,
		PrayerCacheTTL:   c.PrayerCacheTTL,
	}
}
