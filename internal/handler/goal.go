package handler

import (
	"net/http"

	"github.com/Rahik-516/Noor-Web/internal/ctxkeys"
	"github.com/Rahik-516/Noor-Web/internal/model"
	"github.com/Rahik-516/Noor-Web/internal/service"
)

type GoalHandler struct {
	goalService  *service.GoalService
	statsService *service.StatsService
}

func NewGoalHandler(goalService *service.GoalService, statsService *service.StatsService) *GoalHandler {
	return &GoalHandler{
		goalService:  goalService,
		statsService: statsService,
	}
}

// Day returns the user's goal settings with the progress of ?date (default today)
func (h *GoalHandler) Day(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.statsService.Today()
	}

	day, err := h.goalService.Day(userID, date)
	if err != nil {
		writeServiceError(w, r, err, "load goals")
		return
	}

	writeJSON(w, http.StatusOK, day)
}

func (h *GoalHandler) RecordProgress(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var input service.ProgressInput
	err := decodeJSON(w, r, &input)
	if err != nil {
		writeServiceError(w, r, err, "record progress")
		return
	}
	if input.Date == "" {
		input.Date = h.statsService.Today()
	}

	result, err := h.goalService.RecordProgress(userID, input)
	if err != nil {
		writeServiceError(w, r, err, "record progress")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type settingResponse struct {
	Success bool               `json:"success"`
	Setting *model.GoalSetting `json:"setting"`
}

func (h *GoalHandler) UpsertSetting(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var input service.GoalSettingInput
	err := decodeJSON(w, r, &input)
	if err != nil {
		writeServiceError(w, r, err, "save goal")
		return
	}

	setting, err := h.goalService.UpsertSetting(userID, input)
	if err != nil {
		writeServiceError(w, r, err, "save goal")
		return
	}

	writeJSON(w, http.StatusOK, settingResponse{Success: true, Setting: setting})
}

// DeleteSetting removes the goal named by ?id together with its progress
func (h *GoalHandler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	err := h.goalService.DeleteSetting(userID, r.URL.Query().Get("id"))
	if err != nil {
		writeServiceError(w, r, err, "delete goal")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
