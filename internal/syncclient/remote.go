package syncclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Rahik-516/Noor-Web/internal/model"
	"github.com/Rahik-516/Noor-Web/internal/prayer"
)

// Remote is the server API as seen by the offline-first store.
type Remote interface {
	Day(ctx context.Context, date string) (*Snapshot, error)
	RecordProgress(ctx context.Context, write ProgressWrite) (*ProgressReply, error)
	UpsertSetting(ctx context.Context, write SettingWrite) (*model.GoalSetting, error)
	DeleteSetting(ctx context.Context, id string) error
	PrayerTimes(ctx context.Context, city string) (*PrayerTimes, error)
	SaveQuranTracking(ctx context.Context, tracking model.TrackingMode) error
}

type ProgressWrite struct {
	GoalID         string `json:"goalId"`
	Date           string `json:"date"`
	CompletedValue int    `json:"completedValue"`
	Completed      bool   `json:"completed"`
}

type ProgressReply struct {
	Success              bool               `json:"success"`
	Progress             model.GoalProgress `json:"progress"`
	UnlockedAchievements []string           `json:"unlockedAchievements"`
}

type SettingWrite struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	GoalType    string `json:"goalType"`
	TargetValue int    `json:"targetValue"`
	Unit        string `json:"unit"`
	Enabled     bool   `json:"enabled"`
	IsCustom    bool   `json:"isCustom"`
}

// PrayerTimes is a resolved schedule plus the server's view of the active prayer
type PrayerTimes struct {
	prayer.Schedule
	ActiveIndex  int    `json:"activeIndex"`
	ActivePrayer string `json:"activePrayer"`
}

type JuzReply struct {
	Progress     []model.QuranJuzProgress `json:"progress"`
	CompletedJuz []int                    `json:"completedJuz"`
}

// APIError is a non-2xx reply decoded from the server's error envelope
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api %d %s: %s", e.Status, e.Code, e.Message)
}

// IsNotFound reports whether err is a 404 from the server
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client talks JSON to the noor server with a bearer token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Day(ctx context.Context, date string) (*Snapshot, error) {
	var day Snapshot
	err := c.do(ctx, http.MethodGet, "/api/goals", url.Values{"date": {date}}, nil, &day)
	if err != nil {
		return nil, err
	}
	if day.Settings == nil {
		day.Settings = []model.GoalSetting{}
	}
	if day.Progress == nil {
		day.Progress = []model.GoalProgress{}
	}
	return &day, nil
}

func (c *Client) RecordProgress(ctx context.Context, write ProgressWrite) (*ProgressReply, error) {
	var reply ProgressReply
	err := c.do(ctx, http.MethodPost, "/api/goals", nil, write, &reply)
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *Client) UpsertSetting(ctx context.Context, write SettingWrite) (*model.GoalSetting, error) {
	var reply struct {
		Setting *model.GoalSetting `json:"setting"`
	}
	err := c.do(ctx, http.MethodPut, "/api/goals", nil, write, &reply)
	if err != nil {
		return nil, err
	}
	if reply.Setting == nil {
		return nil, errors.New("server returned no setting")
	}
	return reply.Setting, nil
}

func (c *Client) DeleteSetting(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/goals", url.Values{"id": {id}}, nil, nil)
}

func (c *Client) PrayerTimes(ctx context.Context, city string) (*PrayerTimes, error) {
	var times PrayerTimes
	err := c.do(ctx, http.MethodGet, "/api/prayer-times", url.Values{"city": {city}}, nil, &times)
	if err != nil {
		return nil, err
	}
	return &times, nil
}

func (c *Client) Achievements(ctx context.Context) ([]model.AchievementStatus, error) {
	var reply struct {
		Achievements []model.AchievementStatus `json:"achievements"`
	}
	err := c.do(ctx, http.MethodGet, "/api/achievements", nil, nil, &reply)
	if err != nil {
		return nil, err
	}
	return reply.Achievements, nil
}

func (c *Client) CheckAchievements(ctx context.Context) ([]string, error) {
	var reply struct {
		UnlockedAchievements []string `json:"unlockedAchievements"`
	}
	err := c.do(ctx, http.MethodPost, "/api/achievements/check", nil, nil, &reply)
	if err != nil {
		return nil, err
	}
	return reply.UnlockedAchievements, nil
}

func (c *Client) Stats(ctx context.Context) (*model.StatsSnapshot, error) {
	var snap model.StatsSnapshot
	err := c.do(ctx, http.MethodGet, "/api/stats", nil, nil, &snap)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) QuranTracking(ctx context.Context) (*model.QuranTracking, error) {
	var tracking model.QuranTracking
	err := c.do(ctx, http.MethodGet, "/api/quran/tracking", nil, nil, &tracking)
	if err != nil {
		return nil, err
	}
	return &tracking, nil
}

func (c *Client) SaveQuranTracking(ctx context.Context, tracking model.TrackingMode) error {
	return c.do(ctx, http.MethodPost, "/api/quran/tracking", nil, model.QuranTracking{Tracking: tracking}, nil)
}

func (c *Client) JuzProgress(ctx context.Context) (*JuzReply, error) {
	var reply JuzReply
	err := c.do(ctx, http.MethodGet, "/api/quran/progress", nil, nil, &reply)
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *Client) SetJuz(ctx context.Context, juz int, completed bool) error {
	body := map[string]any{"juzNumber": juz, "completed": completed}
	return c.do(ctx, http.MethodPost, "/api/quran/progress", nil, body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			slog.Debug("failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Code: model.ErrorCodeInternal, Message: resp.Status}
		var envelope model.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&envelope) == nil && envelope.Code != "" {
			apiErr.Code = envelope.Code
			apiErr.Message = envelope.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
