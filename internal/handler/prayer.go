package handler

import (
	"net/http"

	"github.com/Rahik-516/Noor-Web/internal/prayer"
	"github.com/Rahik-516/Noor-Web/internal/service"
)

type PrayerHandler struct {
	prayerService *service.PrayerService
}

func NewPrayerHandler(prayerService *service.PrayerService) *PrayerHandler {
	return &PrayerHandler{
		prayerService: prayerService,
	}
}

type scheduleResponse struct {
	prayer.Schedule
	ActiveIndex  int    `json:"activeIndex"`
	ActivePrayer string `json:"activePrayer"`
}

// Times resolves today's schedule for ?city. It never fails; an unreachable
// upstream is reported through source=fallback.
func (h *PrayerHandler) Times(w http.ResponseWriter, r *http.Request) {
	now := h.prayerService.Now()
	schedule := h.prayerService.Schedule(r.Context(), r.URL.Query().Get("city"), now)
	active := prayer.ActiveIndex(schedule.Timings, now)

	w.Header().Set("Cache-Control", "public, s-maxage=900, stale-while-revalidate=300")
	writeJSON(w, http.StatusOK, scheduleResponse{
		Schedule:     schedule,
		ActiveIndex:  active,
		ActivePrayer: prayer.Names[active],
	})
}
