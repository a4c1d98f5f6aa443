package handler

import (
	"net/http"

	"github.com/Rahik-516/Noor-Web/internal/ctxkeys"
	"github.com/Rahik-516/Noor-Web/internal/model"
	"github.com/Rahik-516/Noor-Web/internal/service"
)

type AchievementHandler struct {
	achievementService *service.AchievementService
	statsService       *service.StatsService
}

func NewAchievementHandler(achievementService *service.AchievementService, statsService *service.StatsService) *AchievementHandler {
	return &AchievementHandler{
		achievementService: achievementService,
		statsService:       statsService,
	}
}

type achievementsResponse struct {
	Achievements []model.AchievementStatus `json:"achievements"`
}

type checkResponse struct {
	Success              bool     `json:"success"`
	UnlockedAchievements []string `json:"unlockedAchievements"`
}

func (h *AchievementHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	statuses, err := h.achievementService.Statuses(userID)
	if err != nil {
		writeServiceError(w, r, err, "load achievements")
		return
	}

	writeJSON(w, http.StatusOK, achievementsResponse{Achievements: statuses})
}

// Check re-evaluates every unlock rule. It never fails.
func (h *AchievementHandler) Check(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	unlocked := h.achievementService.CheckAndUnlock(userID)
	writeJSON(w, http.StatusOK, checkResponse{Success: true, UnlockedAchievements: unlocked})
}

func (h *AchievementHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	snap, err := h.statsService.Snapshot(userID)
	if err != nil {
		writeServiceError(w, r, err, "compute stats")
		return
	}

	writeJSON(w, http.StatusOK, snap)
}
