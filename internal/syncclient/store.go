package syncclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Rahik-516/Noor-Web/internal/clock"
	"github.com/Rahik-516/Noor-Web/internal/model"
	"github.com/Rahik-516/Noor-Web/internal/prayer"
	"github.com/Rahik-516/Noor-Web/internal/validation"
)

var (
	ErrGoalLocked     = errors.New("goal is locked until its prayer window opens")
	ErrUnknownGoal    = errors.New("goal not found")
	ErrDuplicateTitle = errors.New("goal title already exists")
	ErrSuperseded     = errors.New("read superseded by a newer request")
)

const (
	// prayerFreshness is how long a cached schedule is served without refetching
	prayerFreshness = 15 * time.Minute
	remoteTimeout   = 10 * time.Second
	defaultUnit     = "বার"

	// progressRetentionDays bounds the synced history kept in the cache
	progressRetentionDays = 30
)

// NotificationPrefs toggles each reminder category.
type NotificationPrefs struct {
	Prayer bool `json:"prayer"`
	Goals  bool `json:"goals"`
	Quran  bool `json:"quran"`
}

func DefaultPrefs() NotificationPrefs {
	return NotificationPrefs{Prayer: true, Goals: true, Quran: true}
}

// cachedProgress holds each cached day's rows keyed by YYYY-MM-DD
type cachedProgress struct {
	Days map[string][]model.GoalProgress `json:"days"`
}

type cachedSchedule struct {
	Times     PrayerTimes `json:"times"`
	FetchedAt time.Time   `json:"fetchedAt"`
}

// Store is the offline-first goal store. Local writes apply to the cache at
// once and reach the server through the debouncer; reads prefer the server
// and fall back to the cache.
type Store struct {
	cache    Cache
	remote   Remote
	clock    clock.Clock
	loc      *time.Location
	debounce *Debouncer

	mu         sync.Mutex
	generation uint64
	writes     *writeLog
	aliases    map[string]string
	unlocked   []string
}

func NewStore(cache Cache, remote Remote, clk clock.Clock, loc *time.Location, debounce time.Duration) *Store {
	if loc == nil {
		loc = time.UTC
	}
	return &Store{
		cache:    cache,
		remote:   remote,
		clock:    clk,
		loc:      loc,
		debounce: NewDebouncer(clk, debounce),
		writes:   newWriteLog(),
		aliases:  make(map[string]string),
	}
}

// Today is the current calendar day in the store's timezone
func (s *Store) Today() string {
	return s.clock.Now().In(s.loc).Format(model.DateLayout)
}

// Read returns the goals and progress for date. A failed remote read serves
// the cache instead and sets Offline; only a newer Read makes it fail.
func (s *Store) Read(ctx context.Context, date string) (*Snapshot, error) {
	err := validation.ValidateDate("date", date)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	issued := s.writes.seq
	s.mu.Unlock()

	remote, remoteErr := s.remote.Day(ctx, date)
	if remoteErr == nil && len(remote.Settings) == 0 {
		remote.Settings = s.seedDefaults(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return nil, ErrSuperseded
	}

	local := s.loadLocal(date)

	if remoteErr != nil {
		slog.Warn("failed to read goals from server, serving local cache", "error", remoteErr, "date", date)
		merged := Merge(local, nil, date, LocalWrites{})
		if len(local.Settings) == 0 {
			s.saveSettings(merged.Settings)
		}
		return &merged, nil
	}

	merged := Merge(local, remote, date, s.writes.newerThan(issued, date))
	s.saveSettings(merged.Settings)
	s.saveProgress(merged.Date, merged.Progress)

	return &merged, nil
}

// seedDefaults stores the built-in goals remotely for a user with none. A
// goal the server rejects is kept locally under a seed- ID.
func (s *Store) seedDefaults(ctx context.Context) []model.GoalSetting {
	defaults := model.DefaultGoals()
	seeded := make([]model.GoalSetting, 0, len(defaults))

	for _, def := range defaults {
		stored, err := s.remote.UpsertSetting(ctx, settingWrite(def))
		if err != nil {
			slog.Warn("failed to seed default goal", "error", err, "title", def.Title)
			def.ID = "seed-" + def.Title
			seeded = append(seeded, def)
			continue
		}
		seeded = append(seeded, *stored)
	}

	slog.Info("default goals seeded", "count", len(seeded))
	return seeded
}

// Write records a progress value for one goal on date. The value is clamped
// to [0, target] and completed recomputed before the optimistic local write.
func (s *Store) Write(ctx context.Context, date, goalID string, value int, completed bool) (model.GoalProgress, error) {
	err := validation.ValidateDate("date", date)
	if err != nil {
		return model.GoalProgress{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	local := s.loadLocal(date)
	goal, ok := findSetting(local.Settings, goalID)
	if !ok {
		return model.GoalProgress{}, ErrUnknownGoal
	}

	if date == s.Today() {
		times := s.gateTimes()
		if prayer.Classify(goal, prayer.ActiveIndex(times, s.clock.Now().In(s.loc))) == prayer.StateFuture {
			return model.GoalProgress{}, ErrGoalLocked
		}
	}

	resolved, done := model.ResolveProgress(value, completed, goal.TargetValue)
	row := model.GoalProgress{
		GoalID:         goalID,
		ProgressDate:   date,
		CompletedValue: resolved,
		Completed:      done,
		UpdatedAt:      s.clock.Now().UTC(),
	}

	key := progressKey(date, goalID)
	seq := s.writes.record(key)
	s.saveProgress(date, upsertProgress(local.Progress, row))

	write := ProgressWrite{GoalID: goalID, Date: date, CompletedValue: resolved, Completed: done}
	s.debounce.Schedule(key, func() { s.pushProgress(key, seq, write) })

	return row, nil
}

func (s *Store) pushProgress(key string, seq uint64, write ProgressWrite) {
	s.mu.Lock()
	if id, ok := s.aliases[write.GoalID]; ok {
		write.GoalID = id
	}
	s.mu.Unlock()

	if isLocalID(write.GoalID) {
		// The goal itself has not reached the server yet
		slog.Debug("skipping progress sync for unsynced goal", "goal_id", write.GoalID)
		s.settleWrites(map[string]uint64{key: seq})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()

	reply, err := s.remote.RecordProgress(ctx, write)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes.settle(key, seq)

	if err != nil {
		slog.Warn("failed to sync goal progress, keeping local state", "error", err, "goal_id", write.GoalID, "date", write.Date)
		return
	}

	if len(reply.UnlockedAchievements) > 0 {
		slog.Info("achievements unlocked", "achievements", reply.UnlockedAchievements)
		s.unlocked = append(s.unlocked, reply.UnlockedAchievements...)
	}
}

// Toggle flips a goal's enabled flag
func (s *Store) Toggle(ctx context.Context, goalID string) (model.GoalSetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.loadSettings()
	goal, ok := findSetting(settings, goalID)
	if !ok {
		return model.GoalSetting{}, ErrUnknownGoal
	}

	goal.Enabled = !goal.Enabled
	goal.UpdatedAt = s.clock.Now().UTC()
	s.saveSettings(replaceSetting(settings, goal))
	s.scheduleSetting(goal)

	return goal, nil
}

// AddGoal creates a custom goal locally; the server assigns its ID on sync.
func (s *Store) AddGoal(ctx context.Context, title string, target int, unit string) (model.GoalSetting, error) {
	title, err := validation.ValidateGoalTitle(title)
	if err != nil {
		return model.GoalSetting{}, err
	}

	unit = strings.TrimSpace(unit)
	if unit == "" {
		unit = defaultUnit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.loadSettings()
	for _, existing := range settings {
		if existing.Title == title {
			return model.GoalSetting{}, ErrDuplicateTitle
		}
	}

	now := s.clock.Now().UTC()
	goal := model.GoalSetting{
		ID:          "local-" + title,
		Title:       title,
		GoalType:    model.GoalTypeCustom,
		TargetValue: max(1, target),
		Unit:        unit,
		Enabled:     true,
		IsCustom:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.saveSettings(append(settings, goal))
	s.scheduleSetting(goal)

	return goal, nil
}

// RemoveGoal deletes a goal and its progress on every cached day
func (s *Store) RemoveGoal(ctx context.Context, goalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.loadSettings()
	if _, ok := findSetting(current, goalID); !ok {
		return ErrUnknownGoal
	}

	settings := make([]model.GoalSetting, 0, len(current))
	for _, g := range current {
		if g.ID != goalID {
			settings = append(settings, g)
		}
	}
	s.saveSettings(settings)

	key := settingKey(goalID)
	settled := map[string]uint64{key: s.writes.record(key)}

	days := s.loadDays()
	for date, rows := range days {
		kept := make([]model.GoalProgress, 0, len(rows))
		for _, p := range rows {
			if p.GoalID != goalID {
				kept = append(kept, p)
			}
		}
		if len(kept) != len(rows) {
			pk := progressKey(date, goalID)
			settled[pk] = s.writes.record(pk)
			days[date] = kept
		}
	}
	s.saveDays(days, "")
	s.debounce.Schedule(key, func() {
		if isLocalID(goalID) {
			s.settleWrites(settled)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()

		err := s.remote.DeleteSetting(ctx, goalID)
		if err != nil && !IsNotFound(err) {
			slog.Warn("failed to sync goal removal", "error", err, "goal_id", goalID)
		}
		s.settleWrites(settled)
	})

	return nil
}

// scheduleSetting must be called with s.mu held
func (s *Store) scheduleSetting(goal model.GoalSetting) {
	key := settingKey(goal.ID)
	seq := s.writes.record(key)
	s.debounce.Schedule(key, func() { s.pushSetting(key, seq, goal) })
}

func (s *Store) pushSetting(key string, seq uint64, goal model.GoalSetting) {
	ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()

	write := settingWrite(goal)
	if !isLocalID(goal.ID) {
		write.ID = goal.ID
	}

	stored, err := s.remote.UpsertSetting(ctx, write)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes.settle(key, seq)

	if err != nil {
		slog.Warn("failed to sync goal setting, keeping local state", "error", err, "goal_id", goal.ID)
		return
	}

	if stored.ID != goal.ID {
		s.replaceID(goal.ID, stored.ID)
	}
}

// replaceID swaps a client-side goal ID for the server's. Must be called with s.mu held.
func (s *Store) replaceID(oldID, newID string) {
	s.aliases[oldID] = newID

	settings := s.loadSettings()
	for i := range settings {
		if settings[i].ID == oldID {
			settings[i].ID = newID
		}
	}
	s.saveSettings(settings)

	days := s.loadDays()
	for _, rows := range days {
		for i := range rows {
			if rows[i].GoalID == oldID {
				rows[i].GoalID = newID
			}
		}
	}
	s.saveDays(days, "")
}

func (s *Store) settleWrites(seqs map[string]uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, seq := range seqs {
		s.writes.settle(key, seq)
	}
}

// Gates classifies every cached goal under today's prayer window
func (s *Store) Gates() map[string]prayer.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.loadSettings()
	active := prayer.ActiveIndex(s.gateTimes(), s.clock.Now().In(s.loc))

	gates := make(map[string]prayer.State, len(settings))
	for _, goal := range settings {
		gates[goal.ID] = prayer.Classify(goal, active)
	}
	return gates
}

// IncompleteGoals counts today's enabled goals that are not completed
func (s *Store) IncompleteGoals(ctx context.Context) (int, error) {
	snap, err := s.Read(ctx, s.Today())
	if err != nil {
		return 0, err
	}

	done := make(map[string]bool, len(snap.Progress))
	for _, p := range snap.Progress {
		if p.Completed {
			done[p.GoalID] = true
		}
	}

	incomplete := 0
	for _, goal := range snap.Settings {
		if goal.Enabled && !done[goal.ID] {
			incomplete++
		}
	}
	return incomplete, nil
}

// PrayerTimes resolves today's schedule for the selected city. It never
// fails: a fresh cache entry is served first, then the server, then any
// cached entry for today, then the static table.
func (s *Store) PrayerTimes(ctx context.Context) PrayerTimes {
	city := s.City()
	today := s.Today()
	now := s.clock.Now()

	var cached cachedSchedule
	_, err := s.cache.Get(KeyPrayer, &cached)
	hit := err == nil && cached.Times.Date == today && cached.Times.City == city
	if hit && now.Sub(cached.FetchedAt) < prayerFreshness {
		return s.withActive(cached.Times)
	}

	times, err := s.remote.PrayerTimes(ctx, city)
	if err != nil {
		slog.Warn("failed to fetch prayer times, using cached schedule", "error", err, "city", city)
		if hit {
			return s.withActive(cached.Times)
		}
		return s.withActive(PrayerTimes{Schedule: prayer.Fallback(city, today)})
	}

	_, err = s.cache.Put(KeyPrayer, cachedSchedule{Times: *times, FetchedAt: now})
	if err != nil {
		slog.Warn("failed to cache prayer times", "error", err)
	}
	return s.withActive(*times)
}

// withActive recomputes the active prayer with the local clock
func (s *Store) withActive(times PrayerTimes) PrayerTimes {
	times.ActiveIndex = prayer.ActiveIndex(times.Timings, s.clock.Now().In(s.loc))
	times.ActivePrayer = prayer.Names[times.ActiveIndex]
	return times
}

// gateTimes returns today's cached timings, or the static table for the
// selected city. It never touches the network.
func (s *Store) gateTimes() prayer.Timings {
	var cached cachedSchedule
	_, err := s.cache.Get(KeyPrayer, &cached)
	if err == nil && cached.Times.Date == s.Today() {
		return cached.Times.Timings
	}
	return prayer.Fallback(s.City(), s.Today()).Timings
}

func (s *Store) City() string {
	var city string
	_, err := s.cache.Get(KeySelectedCity, &city)
	if err != nil {
		return prayer.DefaultCity
	}
	return prayer.NormalizeCity(city)
}

// SetCity stores the selected city and returns its canonical name
func (s *Store) SetCity(name string) (string, error) {
	city := prayer.NormalizeCity(name)
	_, err := s.cache.Put(KeySelectedCity, city)
	if err != nil {
		return "", fmt.Errorf("failed to save city: %w", err)
	}
	return city, nil
}

func (s *Store) Prefs() NotificationPrefs {
	prefs := DefaultPrefs()
	_, err := s.cache.Get(KeyNotifyPrefs, &prefs)
	if err != nil && !errors.Is(err, ErrCacheMiss) {
		slog.Warn("failed to load notification preferences, using defaults", "error", err)
		return DefaultPrefs()
	}
	return prefs
}

func (s *Store) SetPrefs(prefs NotificationPrefs) error {
	_, err := s.cache.Put(KeyNotifyPrefs, prefs)
	if err != nil {
		return fmt.Errorf("failed to save notification preferences: %w", err)
	}
	return nil
}

// Tracking returns the locally cached Quran tracking mode
func (s *Store) Tracking() model.QuranTracking {
	var tracking model.QuranTracking
	_, err := s.cache.Get(KeyQuranTracking, &tracking)
	if err != nil {
		return model.QuranTracking{Tracking: model.DefaultTracking()}
	}
	return tracking
}

// SaveTracking validates and caches a tracking mode at once. The server
// write is debounced so rapid edits coalesce into one upsert.
func (s *Store) SaveTracking(tracking model.TrackingMode) error {
	if tracking == nil {
		return validation.Invalid("mode", "is required")
	}

	err := tracking.Validate()
	if err != nil {
		return err
	}

	_, err = s.cache.Put(KeyQuranTracking, model.QuranTracking{Tracking: tracking, UpdatedAt: s.clock.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to cache quran tracking: %w", err)
	}

	s.debounce.Schedule(KeyQuranTracking, func() {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()

		err := s.remote.SaveQuranTracking(ctx, tracking)
		if err != nil {
			slog.Warn("failed to sync quran tracking, keeping local state", "error", err, "mode", tracking.Mode())
		}
	})

	return nil
}

// Unlocked drains the achievement keys reported by synced writes
func (s *Store) Unlocked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlocked := s.unlocked
	s.unlocked = nil
	return unlocked
}

// Flush pushes every pending write now and waits for it
func (s *Store) Flush() {
	s.debounce.Flush()
}

// loadLocal returns the cached catalog and, when cached, date's progress.
// Must be called with s.mu held. Cache failures read as empty.
func (s *Store) loadLocal(date string) *Snapshot {
	local := &Snapshot{Settings: s.loadSettings(), Progress: []model.GoalProgress{}}

	rows, ok := s.loadDays()[date]
	if ok {
		local.Date = date
		if rows != nil {
			local.Progress = rows
		}
	}
	return local
}

func (s *Store) loadSettings() []model.GoalSetting {
	settings := []model.GoalSetting{}
	_, err := s.cache.Get(KeyGoals, &settings)
	if err != nil && !errors.Is(err, ErrCacheMiss) {
		slog.Warn("failed to load cached goals", "error", err)
	}
	return settings
}

func (s *Store) loadDays() map[string][]model.GoalProgress {
	var cached cachedProgress
	_, err := s.cache.Get(KeyGoalsProgress, &cached)
	if err != nil && !errors.Is(err, ErrCacheMiss) {
		slog.Warn("failed to load cached progress", "error", err)
	}
	if cached.Days == nil {
		cached.Days = make(map[string][]model.GoalProgress)
	}
	return cached.Days
}

func (s *Store) saveSettings(settings []model.GoalSetting) {
	_, err := s.cache.Put(KeyGoals, settings)
	if err != nil {
		slog.Warn("failed to cache goals", "error", err)
	}
}

// saveProgress replaces one day's rows and leaves the other days alone
func (s *Store) saveProgress(date string, progress []model.GoalProgress) {
	days := s.loadDays()
	days[date] = progress
	s.saveDays(days, date)
}

// saveDays prunes days older than the retention window, except keep and
// days whose writes have not reached the server, then stores the rest.
func (s *Store) saveDays(days map[string][]model.GoalProgress, keep string) {
	cutoff := s.clock.Now().In(s.loc).AddDate(0, 0, -progressRetentionDays).Format(model.DateLayout)
	pending := s.writes.pendingDates()
	for date := range days {
		if date < cutoff && date != keep && !pending[date] {
			delete(days, date)
		}
	}

	_, err := s.cache.Put(KeyGoalsProgress, cachedProgress{Days: days})
	if err != nil {
		slog.Warn("failed to cache progress", "error", err)
	}
}

func settingWrite(goal model.GoalSetting) SettingWrite {
	return SettingWrite{
		Title:       goal.Title,
		GoalType:    goal.GoalType,
		TargetValue: goal.TargetValue,
		Unit:        goal.Unit,
		Enabled:     goal.Enabled,
		IsCustom:    goal.IsCustom,
	}
}

func isLocalID(id string) bool {
	return strings.HasPrefix(id, "local-") || strings.HasPrefix(id, "seed-")
}

func findSetting(settings []model.GoalSetting, id string) (model.GoalSetting, bool) {
	for _, s := range settings {
		if s.ID == id {
			return s, true
		}
	}
	return model.GoalSetting{}, false
}

func replaceSetting(settings []model.GoalSetting, goal model.GoalSetting) []model.GoalSetting {
	out := make([]model.GoalSetting, len(settings))
	for i, s := range settings {
		if s.ID == goal.ID {
			s = goal
		}
		out[i] = s
	}
	return out
}

func upsertProgress(progress []model.GoalProgress, row model.GoalProgress) []model.GoalProgress {
	out := make([]model.GoalProgress, 0, len(progress)+1)
	for _, p := range progress {
		if p.GoalID != row.GoalID {
			out = append(out, p)
		}
	}
	return append(out, row)
}
