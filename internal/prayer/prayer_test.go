package prayer

import (
	"testing"
	"time"

	"github.com/Rahik-516/Noor-Web/internal/model"
)

var testTimings = Timings{Fajr: "05:00", Dhuhr: "12:00", Asr: "15:30", Maghrib: "18:00", Isha: "19:30"}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 1, hour, minute, 0, 0, time.UTC)
}

func TestActiveIndex(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{name: "afternoon is asr", now: at(16, 0), want: 2},
		{name: "pre fajr is previous isha", now: at(4, 0), want: 4},
		{name: "midnight is previous isha", now: at(0, 0), want: 4},
		{name: "exactly fajr", now: at(5, 0), want: 0},
		{name: "minute before dhuhr", now: at(11, 59), want: 0},
		{name: "late night is isha", now: at(23, 30), want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ActiveIndex(testTimings, tt.now)
			if got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	goal := func(title, goalType string) model.GoalSetting {
		return model.GoalSetting{Title: title, GoalType: goalType, TargetValue: 1}
	}

	active := 2 // Asr
	tests := []struct {
		goal model.GoalSetting
		want State
	}{
		{goal: goal("ফজর সালাত", model.GoalTypePrayer), want: StateOpen},
		{goal: goal("আসর সালাত", model.GoalTypePrayer), want: StateActive},
		{goal: goal("মাগরিব সালাত", model.GoalTypePrayer), want: StateFuture},
		{goal: goal("ইশা সালাত", model.GoalTypePrayer), want: StateFuture},
		{goal: goal("ইশা সালাত", model.GoalTypeCustom), want: StateOpen},
		{goal: goal("কুরআন তিলাওয়াত", model.GoalTypeQuran), want: StateOpen},
		{goal: goal("তাহাজ্জুদ", model.GoalTypePrayer), want: StateOpen},
	}

	for _, tt := range tests {
		got := Classify(tt.goal, active)
		if got != tt.want {
			t.Fatalf("%s (%s): expected %s, got %s", tt.goal.Title, tt.goal.GoalType, tt.want, got)
		}
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := map[string]string{
		"05:02":       "05:02",
		"05:02 (+06)": "05:02",
		"5:02":        "05:02",
		"":            "00:00",
		"abc":         "00:00",
		"25:00":       "00:00",
		"12:7":        "00:00",
		"12-30":       "00:00",
	}

	for in, want := range tests {
		if got := NormalizeTime(in); got != want {
			t.Fatalf("NormalizeTime(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestMinutes(t *testing.T) {
	if got := Minutes("15:30"); got != 930 {
		t.Fatalf("expected 930, got %d", got)
	}
	if got := Minutes("bad"); got != 0 {
		t.Fatalf("expected 0 for malformed input, got %d", got)
	}
}

func TestMinutesUntil(t *testing.T) {
	if got := MinutesUntil("05:00", at(4, 50)); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if got := MinutesUntil("00:05", at(23, 55)); got != 10 {
		t.Fatalf("expected wrap to 10, got %d", got)
	}
	if got := MinutesUntil("05:00", at(5, 0)); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestNormalizeCity(t *testing.T) {
	tests := map[string]string{
		"dhaka":      "Dhaka",
		"Chittagong": "Chattogram",
		"chattogram": "Chattogram",
		" Sylhet ":   "Sylhet",
		"Barishal":   DefaultCity,
		"":           DefaultCity,
	}

	for in, want := range tests {
		if got := NormalizeCity(in); got != want {
			t.Fatalf("NormalizeCity(%q): expected %q, got %q", in, want, got)
		}
	}

	if UpstreamName("Chattogram") != "Chittagong" || UpstreamName("Khulna") != "Khulna" {
		t.Fatal("unexpected upstream name mapping")
	}
}

func TestFallbackCoversEveryCity(t *testing.T) {
	for _, city := range Cities {
		s := Fallback(city, "2026-03-01")
		if s.Source != SourceFallback || s.City != city {
			t.Fatalf("unexpected fallback %+v", s)
		}
		ordered := s.Timings.Ordered()
		for i := 1; i < len(ordered); i++ {
			if Minutes(ordered[i]) <= Minutes(ordered[i-1]) {
				t.Fatalf("%s timings out of order: %v", city, ordered)
			}
		}
		if s.Iftar != s.Timings.Maghrib {
			t.Fatalf("%s iftar %s should match maghrib %s", city, s.Iftar, s.Timings.Maghrib)
		}
	}

	if Fallback("Unknown", "2026-03-01").City != DefaultCity {
		t.Fatal("expected unknown city to fall back to default")
	}
}
