package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Rahik-516/Noor-Web/internal/validation"
)

const (
	TrackingModePages = "pages"
	TrackingModeSurah = "surah"
	TrackingModeDaily = "daily"
	TrackingModeJuz   = "juz"
)

// QuranTotalPages is the page count of the standard mushaf.
const QuranTotalPages = 604

// TrackingMode is one of PagesMode, SurahMode, DailyMode or JuzMode.
type TrackingMode interface {
	Mode() string
	Validate() error
}

type PagesMode struct {
	CurrentPage int    `json:"currentPage" validate:"min=1,max=604"`
	DailyGoal   int    `json:"dailyGoal" validate:"min=1,max=604"`
	TodayPages  int    `json:"todayPages" validate:"min=0,max=604"`
	LastDate    string `json:"lastDate" validate:"omitempty,datetime=2006-01-02"`
}

func (PagesMode) Mode() string { return TrackingModePages }

func (m PagesMode) Validate() error { return validation.Struct(m) }

// Remaining returns the pages left after CurrentPage.
func (m PagesMode) Remaining() int {
	return QuranTotalPages - m.CurrentPage
}

type SurahMode struct {
	Surah    int    `json:"surah" validate:"min=1,max=114"`
	FromAyah int    `json:"fromAyah" validate:"min=1"`
	ToAyah   int    `json:"toAyah" validate:"gtefield=FromAyah"`
	LastRead string `json:"lastRead" validate:"omitempty,datetime=2006-01-02"`
}

func (SurahMode) Mode() string { return TrackingModeSurah }

func (m SurahMode) Validate() error { return validation.Struct(m) }

type DailyMode struct {
	DailyGoalPages int    `json:"dailyGoalPages" validate:"min=1,max=604"`
	DailyPages     int    `json:"dailyPages" validate:"min=0,max=604"`
	DailyLastDate  string `json:"dailyLastDate" validate:"omitempty,datetime=2006-01-02"`
}

func (DailyMode) Mode() string { return TrackingModeDaily }

func (m DailyMode) Validate() error { return validation.Struct(m) }

// JuzMode carries no payload; per-juz state lives in QuranJuzProgress.
type JuzMode struct{}

func (JuzMode) Mode() string { return TrackingModeJuz }

func (JuzMode) Validate() error { return nil }

// DefaultTracking is returned for users who never saved a tracking mode.
func DefaultTracking() TrackingMode {
	return PagesMode{CurrentPage: 1, DailyGoal: 5}
}

// DecodeTracking parses and validates a payload for the given mode.
func DecodeTracking(mode string, payload []byte) (TrackingMode, error) {
	var m TrackingMode
	switch mode {
	case "", TrackingModePages:
		var p PagesMode
		m = &p
	case TrackingModeSurah:
		var s SurahMode
		m = &s
	case TrackingModeDaily:
		var d DailyMode
		m = &d
	case TrackingModeJuz:
		return JuzMode{}, nil
	default:
		return nil, validation.Invalid("mode", "must be one of: pages surah daily juz")
	}

	if len(payload) == 0 || string(payload) == "null" {
		payload = []byte("{}")
	}
	err := json.Unmarshal(payload, m)
	if err != nil {
		return nil, validation.Invalid("payload", "is not valid for mode %s", m.Mode())
	}

	// Return the value type so callers can switch on PagesMode, SurahMode...
	switch v := m.(type) {
	case *PagesMode:
		m = *v
	case *SurahMode:
		m = *v
	case *DailyMode:
		m = *v
	}

	err = m.Validate()
	if err != nil {
		return nil, err
	}
	return m, nil
}

// QuranTracking is the wire envelope {mode, payload}.
type QuranTracking struct {
	Tracking  TrackingMode
	UpdatedAt time.Time
}

type trackingWire struct {
	Mode      string          `json:"mode"`
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
}

func (q QuranTracking) MarshalJSON() ([]byte, error) {
	tracking := q.Tracking
	if tracking == nil {
		tracking = DefaultTracking()
	}
	payload, err := json.Marshal(tracking)
	if err != nil {
		return nil, err
	}
	wire := trackingWire{Mode: tracking.Mode(), Payload: payload}
	if !q.UpdatedAt.IsZero() {
		wire.UpdatedAt = &q.UpdatedAt
	}
	return json.Marshal(wire)
}

func (q *QuranTracking) UnmarshalJSON(data []byte) error {
	var wire trackingWire
	err := json.Unmarshal(data, &wire)
	if err != nil {
		return fmt.Errorf("invalid tracking envelope: %w", err)
	}
	tracking, err := DecodeTracking(wire.Mode, wire.Payload)
	if err != nil {
		return err
	}
	q.Tracking = tracking
	if wire.UpdatedAt != nil {
		q.UpdatedAt = *wire.UpdatedAt
	}
	return nil
}

// QuranTrackingRecord is the stored row behind QuranTracking.
type QuranTrackingRecord struct {
	UserID    string    `db:"user_id"`
	Mode      string    `db:"mode"`
	Payload   string    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}

type QuranJuzProgress struct {
	ID            string     `db:"id" json:"id"`
	UserID        string     `db:"user_id" json:"-"`
	JuzNumber     int        `db:"juz_number" json:"juzNumber"`
	Completed     bool       `db:"completed" json:"completed"`
	DateCompleted *time.Time `db:"date_completed" json:"dateCompleted,omitempty"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
}
