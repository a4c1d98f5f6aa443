package syncclient

import (
	"github.com/Rahik-516/Noor-Web/internal/model"
)

// Snapshot is the catalog plus one day's progress as the client sees it.
type Snapshot struct {
	Settings []model.GoalSetting  `json:"settings"`
	Progress []model.GoalProgress `json:"progress"`
	Date     string               `json:"date"`

	// Offline is set when the remote read failed and the cache was served
	Offline bool `json:"-"`
}

// LocalWrites names the goals written locally after a read was issued.
// Their local state, present or absent, outranks that read's remote payload.
type LocalWrites struct {
	Settings map[string]bool
	Progress map[string]bool
}

func (w LocalWrites) empty() bool {
	return len(w.Settings) == 0 && len(w.Progress) == 0
}

// Merge resolves the effective state for requestedDate.
//
// With a remote payload, remote wins except for goals in newer. Without one
// (the read failed) the local cache is served, and its progress only when it
// is stamped with requestedDate.
func Merge(local, remote *Snapshot, requestedDate string, newer LocalWrites) Snapshot {
	if local == nil {
		local = &Snapshot{}
	}

	if remote == nil {
		out := Snapshot{
			Settings: cloneSettings(local.Settings),
			Progress: []model.GoalProgress{},
			Date:     requestedDate,
			Offline:  true,
		}
		if len(out.Settings) == 0 {
			out.Settings = localDefaults()
		}
		if local.Date == requestedDate {
			out.Progress = cloneProgress(local.Progress)
		}
		return out
	}

	out := Snapshot{
		Settings: cloneSettings(remote.Settings),
		Progress: cloneProgress(remote.Progress),
		Date:     requestedDate,
	}
	if newer.empty() {
		return out
	}

	out.Settings = overlay(out.Settings, local.Settings, newer.Settings, func(s model.GoalSetting) string { return s.ID })
	if local.Date == requestedDate {
		out.Progress = overlay(out.Progress, local.Progress, newer.Progress, func(p model.GoalProgress) string { return p.GoalID })
	}

	return out
}

// overlay replaces or drops the rows of base named in newer with their local
// state, then appends local rows in newer that base lacks, in local order.
func overlay[T any](base, localRows []T, newer map[string]bool, key func(T) string) []T {
	local := make(map[string]T, len(localRows))
	for _, row := range localRows {
		local[key(row)] = row
	}

	out := make([]T, 0, len(base))
	seen := make(map[string]bool, len(base))

	for _, row := range base {
		k := key(row)
		seen[k] = true
		if !newer[k] {
			out = append(out, row)
			continue
		}
		if l, ok := local[k]; ok {
			out = append(out, l)
		}
	}

	for _, row := range localRows {
		k := key(row)
		if newer[k] && !seen[k] {
			out = append(out, row)
		}
	}

	return out
}

// localDefaults are the built-in goals with client-side IDs, served when
// nothing was ever cached and the server is unreachable.
func localDefaults() []model.GoalSetting {
	defaults := model.DefaultGoals()
	for i := range defaults {
		defaults[i].ID = "local-" + defaults[i].Title
	}
	return defaults
}

func cloneSettings(in []model.GoalSetting) []model.GoalSetting {
	return append([]model.GoalSetting{}, in...)
}

func cloneProgress(in []model.GoalProgress) []model.GoalProgress {
	return append([]model.GoalProgress{}, in...)
}
