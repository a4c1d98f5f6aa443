package routes

import (
	"net/http"

	"github.com/Rahik-516/Noor-Web/internal/app"
	"github.com/Rahik-516/Noor-Web/internal/handler"
	"github.com/Rahik-516/Noor-Web/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB, app.Clock)
	goal := handler.NewGoalHandler(app.GoalService, app.StatsService)
	prayer := handler.NewPrayerHandler(app.PrayerService)
	achievement := handler.NewAchievementHandler(app.AchievementService, app.StatsService)
	quran := handler.NewQuranHandler(app.QuranService)
	webhook := handler.NewWebhookHandler(app.StreakService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /api/health", health.Health)
	mux.HandleFunc("GET /api/prayer-times", prayer.Times)

	// ============================================================================
	// PROTECTED ROUTES (/api/*)
	// ============================================================================

	// Goals
	mux.HandleFunc("GET /api/goals", middleware.RequireAuth(goal.Day))
	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(goal.RecordProgress))
	mux.HandleFunc("PUT /api/goals", middleware.RequireAuth(goal.UpsertSetting))
	mux.HandleFunc("DELETE /api/goals", middleware.RequireAuth(goal.DeleteSetting))

	// Achievements (checks are rate limited per user)
	checkLimiter := middleware.RateLimitPerUser(app.Cfg.AchievementCheckLimit, app.Clock)
	mux.HandleFunc("GET /api/achievements", middleware.RequireAuth(achievement.List))
	mux.HandleFunc("POST /api/achievements/check", middleware.RequireAuth(checkLimiter(achievement.Check)))
	mux.HandleFunc("GET /api/stats", middleware.RequireAuth(achievement.Stats))

	// Quran
	mux.HandleFunc("GET /api/quran/tracking", middleware.RequireAuth(quran.Tracking))
	mux.HandleFunc("POST /api/quran/tracking", middleware.RequireAuth(quran.SaveTracking))
	mux.HandleFunc("GET /api/quran/progress", middleware.RequireAuth(quran.JuzProgress))
	mux.HandleFunc("POST /api/quran/progress", middleware.RequireAuth(quran.SetJuz))

	// ============================================================================
	// WEBHOOKS
	// ============================================================================

	// Streak counter maintained by an external system
	mux.HandleFunc("POST /webhooks/streak", webhook.Streak)

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", handler.NotFound)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.AuthMiddleware(app.AuthService), // Before logging so requests carry user_id
		middleware.RequestLogging,
	)

	return handler
}
