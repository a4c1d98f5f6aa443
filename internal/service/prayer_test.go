package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Rahik-516/Noor-Web/internal/clock"
	"github.com/Rahik-516/Noor-Web/internal/prayer"
)

const upstreamBody = `{"code":200,"data":{"timings":{"Imsak":"04:42 (+06)","Fajr":"04:52 (+06)","Dhuhr":"12:10","Asr":"15:31","Maghrib":"18:05","Isha":"19:18"}}}`

func newUpstream(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newPrayerService(url string, clk clock.Clock) *PrayerService {
	return NewPrayerService(PrayerConfig{
		APIURL:   url,
		Country:  "Bangladesh",
		Method:   "1",
		CacheTTL: 15 * time.Minute,
		Timeout:  time.Second,
		Location: time.UTC,
	}, clk)
}

func TestPrayerScheduleUpstream(t *testing.T) {
	var gotPath, gotCity string
	srv, _ := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCity = r.URL.Query().Get("city")
		fmt.Fprint(w, upstreamBody)
	})

	svc := newPrayerService(srv.URL, clock.NewFake(testStart))
	schedule := svc.Schedule(context.Background(), "Chattogram", testStart)

	if gotPath != "/07-03-2026" {
		t.Fatalf("unexpected path %s", gotPath)
	}
	if gotCity != "Chittagong" {
		t.Fatalf("expected upstream city Chittagong, got %s", gotCity)
	}
	if schedule.Source != prayer.SourceUpstream || schedule.City != "Chattogram" {
		t.Fatalf("unexpected schedule %+v", schedule)
	}
	if schedule.Timings.Fajr != "04:52" || schedule.Sehri != "04:42" || schedule.Iftar != "18:05" {
		t.Fatalf("times not normalized: %+v", schedule)
	}
}

func TestPrayerScheduleCache(t *testing.T) {
	srv, calls := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, upstreamBody)
	})

	clk := clock.NewFake(testStart)
	svc := newPrayerService(srv.URL, clk)

	svc.Schedule(context.Background(), "Dhaka", testStart)
	svc.Schedule(context.Background(), "dhaka", testStart)
	if calls.Load() != 1 {
		t.Fatalf("expected 1 upstream call, got %d", calls.Load())
	}

	svc.Schedule(context.Background(), "Sylhet", testStart)
	if calls.Load() != 2 {
		t.Fatalf("expected a second call for another city, got %d", calls.Load())
	}

	clk.Advance(16 * time.Minute)
	svc.Schedule(context.Background(), "Dhaka", testStart)
	if calls.Load() != 3 {
		t.Fatalf("expected refetch after ttl, got %d", calls.Load())
	}
}

func TestPrayerScheduleFallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"data":`)
		}},
		{"missing timings", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"data":{}}`)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := newUpstream(t, tt.handler)
			svc := newPrayerService(srv.URL, clock.NewFake(testStart))

			schedule := svc.Schedule(context.Background(), "Khulna", testStart)
			want := prayer.Fallback("Khulna", "2026-03-07")
			if schedule != want {
				t.Fatalf("expected fallback %+v, got %+v", want, schedule)
			}

			// Fallbacks are not cached
			svc.Schedule(context.Background(), "Khulna", testStart)
			if calls.Load() != 2 {
				t.Fatalf("expected 2 calls, got %d", calls.Load())
			}
		})
	}
}

func TestPrayerScheduleUnknownCity(t *testing.T) {
	var gotCity string
	srv, _ := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotCity = r.URL.Query().Get("city")
		fmt.Fprint(w, upstreamBody)
	})

	svc := newPrayerService(srv.URL, clock.NewFake(testStart))
	schedule := svc.Schedule(context.Background(), "Atlantis", testStart)

	if !strings.EqualFold(gotCity, prayer.DefaultCity) || schedule.City != prayer.DefaultCity {
		t.Fatalf("expected default city, got query %q schedule %q", gotCity, schedule.City)
	}
}
