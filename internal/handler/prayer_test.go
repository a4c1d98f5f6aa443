package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rahik-516/Noor-Web/internal/clock"
	"github.com/Rahik-516/Noor-Web/internal/prayer"
	"github.com/Rahik-516/Noor-Web/internal/service"
)

func TestPrayerTimes(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"timings":{"Imsak":"04:40","Fajr":"05:00","Dhuhr":"12:00","Asr":"15:30","Maghrib":"18:00","Isha":"19:30"}}}`)
	}))
	defer upstream.Close()

	clk := clock.NewFake(time.Date(2026, 3, 7, 16, 0, 0, 0, time.UTC))
	svc := service.NewPrayerService(service.PrayerConfig{
		APIURL:   upstream.URL,
		Country:  "Bangladesh",
		Method:   "1",
		CacheTTL: 15 * time.Minute,
		Timeout:  time.Second,
		Location: time.UTC,
	}, clk)
	h := NewPrayerHandler(svc)

	w := httptest.NewRecorder()
	h.Times(w, httptest.NewRequest(http.MethodGet, "/api/prayer-times?city=Sylhet", nil))

	if got := w.Header().Get("Cache-Control"); got != "public, s-maxage=900, stale-while-revalidate=300" {
		t.Fatalf("unexpected cache header %q", got)
	}

	resp := decode[scheduleResponse](t, w)
	if resp.City != "Sylhet" || resp.Source != prayer.SourceUpstream {
		t.Fatalf("unexpected schedule %+v", resp.Schedule)
	}
	if resp.ActiveIndex != 2 || resp.ActivePrayer != prayer.Names[2] {
		t.Fatalf("expected Asr active, got %d %s", resp.ActiveIndex, resp.ActivePrayer)
	}
}
