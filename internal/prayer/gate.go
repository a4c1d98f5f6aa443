package prayer

import (
	"strings"
	"time"

	"github.com/Rahik-516/Noor-Web/internal/model"
)

// State is the availability of a goal under the prayer-window gate.
type State string

const (
	StateOpen   State = "open"
	StateActive State = "active"
	StateFuture State = "future"
)

// ActiveIndex returns the greatest prayer index whose time is at or before now.
// Before Fajr the night still belongs to the previous Isha, so the result is
// always in 0..4.
func ActiveIndex(t Timings, now time.Time) int {
	current := now.Hour()*60 + now.Minute()

	active := -1
	for i, clock := range t.Ordered() {
		if Minutes(clock) <= current {
			active = i
		}
	}

	if active < 0 {
		return len(Names) - 1
	}
	return active
}

// Ordinal returns the prayer position named in a goal title.
func Ordinal(title string) (int, bool) {
	for i, name := range Names {
		if strings.Contains(title, name) {
			return i, true
		}
	}
	return 0, false
}

// Classify gates a goal against the active prayer index. Only prayer goals
// whose title names a prayer are ever active or future.
func Classify(goal model.GoalSetting, activeIndex int) State {
	if goal.GoalType != model.GoalTypePrayer {
		return StateOpen
	}

	ordinal, ok := Ordinal(goal.Title)
	if !ok {
		return StateOpen
	}

	switch {
	case ordinal > activeIndex:
		return StateFuture
	case ordinal == activeIndex:
		return StateActive
	}
	return StateOpen
}

// MinutesUntil returns minutes from now until the next occurrence of hhmm,
// wrapping past midnight. A time equal to now yields 0.
func MinutesUntil(hhmm string, now time.Time) int {
	current := now.Hour()*60 + now.Minute()
	diff := (Minutes(hhmm) - current) % 1440
	if diff < 0 {
		diff += 1440
	}
	return diff
}
