package app

import (
	"fmt"
	"time"

	"github.com/Rahik-516/Noor-Web/internal/clock"
	"github.com/Rahik-516/Noor-Web/internal/config"
	"github.com/Rahik-516/Noor-Web/internal/content"
	"github.com/Rahik-516/Noor-Web/internal/db"
	"github.com/Rahik-516/Noor-Web/internal/markdown"
	"github.com/Rahik-516/Noor-Web/internal/repository"
	"github.com/Rahik-516/Noor-Web/internal/service"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Cfg                *config.Config
	DB                 *sqlx.DB
	Clock              clock.Clock
	AuthService        *service.AuthService
	GoalService        *service.GoalService
	StatsService       *service.StatsService
	AchievementService *service.AchievementService
	PrayerService      *service.PrayerService
	QuranService       *service.QuranService
	StreakService      *service.StreakService
}

func New(cfg *config.Config) (*App, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %v", cfg.Timezone, err)
	}

	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver, db.ServerMigrations)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	clk := clock.SystemClock{}

	// Repositories
	goalSettingRepository := repository.NewGoalSettingRepository(database)
	goalProgressRepository := repository.NewGoalProgressRepository(database)
	achievementRepository := repository.NewAchievementRepository(database)
	streakRepository := repository.NewStreakRepository(database)
	quranRepository := repository.NewQuranRepository(database)

	// Achievement catalog
	catalog, err := service.LoadAchievementCatalog(content.AchievementsFS, markdown.NewParser())
	if err != nil {
		return nil, fmt.Errorf("failed to load achievement catalog: %v", err)
	}

	// Services
	authService := service.NewAuthService(cfg.JWTSecret, cfg.JWTExpiry, clk)
	statsService := service.NewStatsService(goalSettingRepository, goalProgressRepository, streakRepository, quranRepository, clk, loc)
	achievementService, err := service.NewAchievementService(catalog, achievementRepository, statsService, clk)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize achievements: %v", err)
	}
	goalService := service.NewGoalService(goalSettingRepository, goalProgressRepository, achievementService, clk)
	prayerService := service.NewPrayerService(service.PrayerConfig{
		APIURL:   cfg.PrayerAPIURL,
		Country:  cfg.PrayerAPICountry,
		Method:   cfg.PrayerAPIMethod,
		CacheTTL: cfg.PrayerCacheTTL,
		Timeout:  cfg.PrayerAPITimeout,
		Location: loc,
	}, clk)
	quranService := service.NewQuranService(quranRepository, clk)
	streakService := service.NewStreakService(streakRepository, cfg.StreakWebhookSecret, clk)

	return &App{
		Cfg:                cfg,
		DB:                 database,
		Clock:              clk,
		AuthService:        authService,
		GoalService:        goalService,
		StatsService:       statsService,
		AchievementService: achievementService,
		PrayerService:      prayerService,
		QuranService:       quranService,
		StreakService:      streakService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
