package syncclient

import "strings"

const (
	settingPrefix  = "setting:"
	progressPrefix = "progress:"
)

func settingKey(goalID string) string { return settingPrefix + goalID }

// progressKey scopes a progress write to one goal on one day
func progressKey(date, goalID string) string { return progressPrefix + date + "/" + goalID }

func parseProgressKey(key string) (date, goalID string, ok bool) {
	rest, ok := strings.CutPrefix(key, progressPrefix)
	if !ok {
		return "", "", false
	}
	return strings.Cut(rest, "/")
}

// writeLog numbers local writes so a read can tell which ones it predates.
// A write stays pending until its push to the server settles.
type writeLog struct {
	seq     uint64
	last    map[string]uint64
	pending map[string]uint64
}

func newWriteLog() *writeLog {
	return &writeLog{
		last:    make(map[string]uint64),
		pending: make(map[string]uint64),
	}
}

func (w *writeLog) record(key string) uint64 {
	w.seq++
	w.last[key] = w.seq
	w.pending[key] = w.seq
	return w.seq
}

// settle clears key's pending mark unless a newer write replaced it
func (w *writeLog) settle(key string, seq uint64) {
	if w.pending[key] == seq {
		delete(w.pending, key)
	}
}

// newerThan lists the goals written after issued or still awaiting their
// push. Progress writes count only when made for date.
func (w *writeLog) newerThan(issued uint64, date string) LocalWrites {
	out := LocalWrites{Settings: map[string]bool{}, Progress: map[string]bool{}}

	mark := func(key string) {
		if id, ok := strings.CutPrefix(key, settingPrefix); ok {
			out.Settings[id] = true
		}
		if day, id, ok := parseProgressKey(key); ok && day == date {
			out.Progress[id] = true
		}
	}

	for key, seq := range w.last {
		if seq > issued {
			mark(key)
		}
	}
	for key := range w.pending {
		mark(key)
	}

	return out
}

// pendingDates are the days with progress not yet pushed
func (w *writeLog) pendingDates() map[string]bool {
	dates := make(map[string]bool)
	for key := range w.pending {
		if day, _, ok := parseProgressKey(key); ok {
			dates[day] = true
		}
	}
	return dates
}
