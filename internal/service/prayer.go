package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/Rahik-516/Noor-Web/internal/clock"
	"github.com/Rahik-516/Noor-Web/internal/prayer"
)

type PrayerConfig struct {
	APIURL   string
	Country  string
	Method   string
	CacheTTL time.Duration
	Timeout  time.Duration
	Location *time.Location
}

type cachedSchedule struct {
	schedule  prayer.Schedule
	fetchedAt time.Time
}

// PrayerService resolves a city-day schedule from the upstream API through a
// read-through cache, falling back to the static table on any failure.
type PrayerService struct {
	cfg    PrayerConfig
	client *http.Client
	clock  clock.Clock

	mu    sync.Mutex
	cache map[string]cachedSchedule
}

func NewPrayerService(cfg PrayerConfig, clk clock.Clock) *PrayerService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &PrayerService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		clock:  clk,
		cache:  make(map[string]cachedSchedule),
	}
}

// Now is the service clock in the configured timezone
func (s *PrayerService) Now() time.Time {
	return s.clock.Now().In(s.cfg.Location)
}

// Schedule never fails; an unreachable or malformed upstream yields the fallback.
func (s *PrayerService) Schedule(ctx context.Context, city string, date time.Time) prayer.Schedule {
	city = prayer.NormalizeCity(city)
	day := date.In(s.cfg.Location).Format("2006-01-02")
	key := city + "|" + day

	s.mu.Lock()
	cached, ok := s.cache[key]
	s.mu.Unlock()
	if ok && s.clock.Now().Sub(cached.fetchedAt) < s.cfg.CacheTTL {
		return cached.schedule
	}

	schedule, err := s.fetch(ctx, city, date.In(s.cfg.Location))
	if err != nil {
		slog.Warn("prayer times upstream unavailable, using fallback", "error", err, "city", city, "date", day)
		return prayer.Fallback(city, day)
	}

	now := s.clock.Now()
	s.mu.Lock()
	for k, entry := range s.cache {
		if now.Sub(entry.fetchedAt) >= s.cfg.CacheTTL {
			delete(s.cache, k)
		}
	}
	s.cache[key] = cachedSchedule{schedule: schedule, fetchedAt: now}
	s.mu.Unlock()

	return schedule
}

type upstreamResponse struct {
	Data *struct {
		Timings *struct {
			Imsak   string `json:"Imsak"`
			Fajr    string `json:"Fajr"`
			Dhuhr   string `json:"Dhuhr"`
			Asr     string `json:"Asr"`
			Maghrib string `json:"Maghrib"`
			Isha    string `json:"Isha"`
		} `json:"timings"`
	} `json:"data"`
}

func (s *PrayerService) fetch(ctx context.Context, city string, date time.Time) (prayer.Schedule, error) {
	if s.cfg.APIURL == "" {
		return prayer.Schedule{}, fmt.Errorf("prayer api url not configured")
	}

	query := url.Values{}
	query.Set("city", prayer.UpstreamName(city))
	query.Set("country", s.cfg.Country)
	query.Set("method", s.cfg.Method)

	endpoint := s.cfg.APIURL + "/" + date.Format("02-01-2006") + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return prayer.Schedule{}, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return prayer.Schedule{}, fmt.Errorf("failed to call prayer api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return prayer.Schedule{}, fmt.Errorf("prayer api returned status %d", resp.StatusCode)
	}

	var body upstreamResponse
	err = json.NewDecoder(resp.Body).Decode(&body)
	if err != nil {
		return prayer.Schedule{}, fmt.Errorf("failed to decode prayer api response: %w", err)
	}
	if body.Data == nil || body.Data.Timings == nil {
		return prayer.Schedule{}, fmt.Errorf("prayer api response missing timings")
	}

	t := body.Data.Timings
	timings := prayer.Timings{
		Fajr:    t.Fajr,
		Dhuhr:   t.Dhuhr,
		Asr:     t.Asr,
		Maghrib: t.Maghrib,
		Isha:    t.Isha,
	}.Normalized()

	sehri := t.Imsak
	if sehri == "" {
		sehri = t.Fajr
	}

	return prayer.Schedule{
		City:    city,
		Date:    date.Format("2006-01-02"),
		Sehri:   prayer.NormalizeTime(sehri),
		Iftar:   prayer.NormalizeTime(t.Maghrib),
		Source:  prayer.SourceUpstream,
		Timings: timings,
	}, nil
}
