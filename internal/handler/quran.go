package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Rahik-516/Noor-Web/internal/ctxkeys"
	"github.com/Rahik-516/Noor-Web/internal/model"
	"github.com/Rahik-516/Noor-Web/internal/service"
)

type QuranHandler struct {
	quranService *service.QuranService
}

func NewQuranHandler(quranService *service.QuranService) *QuranHandler {
	return &QuranHandler{
		quranService: quranService,
	}
}

type trackingRequest struct {
	Mode    string          `json:"mode"`
	Payload json.RawMessage `json:"payload"`
}

type juzResponse struct {
	Progress     []*model.QuranJuzProgress `json:"progress"`
	CompletedJuz []int                     `json:"completedJuz"`
}

func (h *QuranHandler) Tracking(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	tracking, err := h.quranService.Tracking(userID)
	if err != nil {
		writeServiceError(w, r, err, "load quran tracking")
		return
	}

	writeJSON(w, http.StatusOK, tracking)
}

func (h *QuranHandler) SaveTracking(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req trackingRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeServiceError(w, r, err, "save quran tracking")
		return
	}

	tracking, err := model.DecodeTracking(req.Mode, req.Payload)
	if err != nil {
		writeServiceError(w, r, err, "save quran tracking")
		return
	}

	saved, err := h.quranService.SaveTracking(userID, tracking)
	if err != nil {
		writeServiceError(w, r, err, "save quran tracking")
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

func (h *QuranHandler) JuzProgress(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	progress, err := h.quranService.JuzProgress(userID)
	if err != nil {
		writeServiceError(w, r, err, "load juz progress")
		return
	}

	completed := []int{}
	for _, p := range progress {
		if p.Completed {
			completed = append(completed, p.JuzNumber)
		}
	}

	writeJSON(w, http.StatusOK, juzResponse{Progress: progress, CompletedJuz: completed})
}

func (h *QuranHandler) SetJuz(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var input service.JuzInput
	err := decodeJSON(w, r, &input)
	if err != nil {
		writeServiceError(w, r, err, "save juz progress")
		return
	}

	progress, err := h.quranService.SetJuz(userID, input)
	if err != nil {
		writeServiceError(w, r, err, "save juz progress")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "progress": progress})
}
