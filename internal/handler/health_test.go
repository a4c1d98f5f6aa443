package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rahik-516/Noor-Web/internal/clock"
	"github.com/Rahik-516/Noor-Web/internal/model"
)

type fakePinger struct {
	err error
}

func (f fakePinger) PingContext(ctx context.Context) error { return f.err }

func TestHealth(t *testing.T) {
	h := NewHealthHandler(fakePinger{}, clock.NewFake(testStart))

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	resp := decode[healthResponse](t, w)
	if resp.Status != "ok" || !resp.Time.Equal(testStart) {
		t.Fatalf("unexpected health %+v", resp)
	}
}

func TestHealthDatabaseDown(t *testing.T) {
	h := NewHealthHandler(fakePinger{err: errors.New("closed")}, clock.NewFake(testStart))

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	expectError(t, w, http.StatusServiceUnavailable, model.ErrorCodeInternal)
}
