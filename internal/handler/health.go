package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Rahik-516/Noor-Web/internal/clock"
	"github.com/Rahik-516/Noor-Web/internal/ctxkeys"
	"github.com/Rahik-516/Noor-Web/internal/model"
)

// Pinger is satisfied by *sqlx.DB and *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	clock clock.Clock
}

func NewHealthHandler(db Pinger, clk clock.Clock) *HealthHandler {
	return &HealthHandler{
		db:    db,
		clock: clk,
	}
}

type healthResponse struct {
	Status string    `json:"status"`
	App    string    `json:"app"`
	Env    string    `json:"env,omitempty"`
	Time   time.Time `json:"time"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	err := h.db.PingContext(ctx)
	if err != nil {
		slog.Error("health check database ping failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, model.ErrorCodeInternal, "database unavailable")
		return
	}

	resp := healthResponse{Status: "ok", App: "নূর", Time: h.clock.Now().UTC()}
	if cfg := ctxkeys.Config(r.Context()); cfg != nil {
		resp.Env = cfg.AppEnv
	}

	w.Header().Set("Cache-Control", "public, s-maxage=60, stale-while-revalidate=30")
	writeJSON(w, http.StatusOK, resp)
}

// NotFound is the JSON 404 for unmatched routes
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, model.ErrorCodeNotFound, "route not found")
}
