package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Rahik-516/Noor-Web/internal/clock"
	"github.com/Rahik-516/Noor-Web/internal/notify"
	"github.com/Rahik-516/Noor-Web/internal/prayer"
	"github.com/Rahik-516/Noor-Web/internal/syncclient"
)

const (
	KeyGoalsEvening   = "goals-evening"
	KeyQuranAfternoon = "quran-afternoon"

	stateRetention = 7 * 24 * time.Hour
)

// prayerKeys name the prayer reminders, Fajr..Isha
var prayerKeys = [5]string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}

// Source is the client state reminders are evaluated against.
type Source interface {
	Prefs() syncclient.NotificationPrefs
	PrayerTimes(ctx context.Context) syncclient.PrayerTimes
	IncompleteGoals(ctx context.Context) (int, error)
}

type Config struct {
	Interval   time.Duration
	PrayerLead time.Duration
	// Evening and Quran are "HH:MM" wall-clock instants
	Evening string
	Quran   string
}

type Scheduler struct {
	source   Source
	state    syncclient.Cache
	notifier notify.Notifier
	clock    clock.Clock
	loc      *time.Location
	cfg      Config
}

func NewScheduler(source Source, state syncclient.Cache, notifier notify.Notifier, clk clock.Clock, loc *time.Location, cfg Config) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	cfg.Evening = prayer.NormalizeTime(cfg.Evening)
	cfg.Quran = prayer.NormalizeTime(cfg.Quran)

	return &Scheduler{
		source:   source,
		state:    state,
		notifier: notifier,
		clock:    clk,
		loc:      loc,
		cfg:      cfg,
	}
}

// Run evaluates reminders once immediately and then on every tick until ctx
// is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := s.clock.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	slog.Info("reminder scheduler started", "interval", s.cfg.Interval, "prayer_lead", s.cfg.PrayerLead)
	s.Tick(ctx, s.clock.Now())

	for {
		select {
		case <-ctx.Done():
			slog.Info("reminder scheduler stopped")
			return nil
		case now := <-ticker.C():
			s.Tick(ctx, now)
		}
	}
}

// Tick evaluates every enabled category at now and dispatches the reminders
// whose bucket has not fired yet. It returns what was dispatched.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) []notify.Notification {
	now = now.In(s.loc)
	bucket := now.Format(BucketLayout)

	state := s.loadState()
	state.Prune(now, stateRetention)

	var fired []notify.Notification
	for _, n := range s.due(ctx, now) {
		if !state.Fire(n.Key, bucket) {
			continue
		}

		// Persist first so a crash or race under-notifies rather than repeats
		_, err := s.state.Put(syncclient.KeyNotifyState, state)
		if err != nil {
			slog.Warn("failed to persist reminder state, skipping reminder", "error", err, "reminder", n.Key)
			continue
		}

		err = s.notifier.Notify(ctx, n)
		if err != nil {
			slog.Warn("failed to deliver reminder", "error", err, "reminder", n.Key)
		}
		fired = append(fired, n)
	}

	return fired
}

// due lists the reminders whose condition holds at now
func (s *Scheduler) due(ctx context.Context, now time.Time) []notify.Notification {
	prefs := s.source.Prefs()
	hhmm := now.Format("15:04")

	var due []notify.Notification

	if prefs.Prayer {
		lead := int(s.cfg.PrayerLead/time.Minute) % (24 * 60)
		times := s.source.PrayerTimes(ctx)
		for i, at := range times.Timings.Ordered() {
			if prayer.MinutesUntil(at, now) != lead {
				continue
			}
			due = append(due, notify.Notification{
				Key:   "prayer-" + prayerKeys[i],
				Title: "নামাজের সময়",
				Body:  fmt.Sprintf("%s নামাজ %s মিনিট পর।", prayer.Names[i], bengaliDigits(lead)),
			})
		}
	}

	if prefs.Goals && hhmm == s.cfg.Evening {
		incomplete, err := s.source.IncompleteGoals(ctx)
		if err != nil {
			slog.Warn("failed to count incomplete goals", "error", err)
		}
		if err == nil && incomplete > 0 {
			due = append(due, notify.Notification{
				Key:   KeyGoalsEvening,
				Title: "আজকের লক্ষ্য",
				Body:  "কিছু লক্ষ্য এখনও অসম্পূর্ণ আছে।",
			})
		}
	}

	if prefs.Quran && hhmm == s.cfg.Quran {
		due = append(due, notify.Notification{
			Key:   KeyQuranAfternoon,
			Title: "কুরআন রিমাইন্ডার",
			Body:  "আজকের কুরআন তিলাওয়াত সম্পন্ন করেছেন?",
		})
	}

	return due
}

func (s *Scheduler) loadState() DedupState {
	state := DedupState{}
	_, err := s.state.Get(syncclient.KeyNotifyState, &state)
	if err != nil && !errors.Is(err, syncclient.ErrCacheMiss) {
		slog.Warn("failed to load reminder state, starting fresh", "error", err)
		return DedupState{}
	}
	return state
}

func bengaliDigits(n int) string {
	digits := []rune(fmt.Sprint(n))
	for i, r := range digits {
		if r >= '0' && r <= '9' {
			digits[i] = '০' + (r - '0')
		}
	}
	return string(digits)
}
