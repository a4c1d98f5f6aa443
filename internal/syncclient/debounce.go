package syncclient

import (
	"sort"
	"sync"
	"time"

	"github.com/Rahik-516/Noor-Web/internal/clock"
)

// Debouncer defers a keyed action until delay has passed without another
// Schedule for the same key. Only the last scheduled action runs.
type Debouncer struct {
	clock clock.Clock
	delay time.Duration

	mu       sync.Mutex
	seq      uint64
	pending  map[string]*debounced
	inflight sync.WaitGroup
}

type debounced struct {
	seq   uint64
	timer clock.Timer
	fn    func()
}

func NewDebouncer(clk clock.Clock, delay time.Duration) *Debouncer {
	return &Debouncer{
		clock:   clk,
		delay:   delay,
		pending: make(map[string]*debounced),
	}
}

// Schedule replaces any pending action for key and restarts its quiet period
func (d *Debouncer) Schedule(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
	}

	d.seq++
	entry := &debounced{seq: d.seq, fn: fn}
	entry.timer = d.clock.AfterFunc(d.delay, func() { d.fire(key, entry) })
	d.pending[key] = entry
}

func (d *Debouncer) fire(key string, entry *debounced) {
	d.mu.Lock()
	if d.pending[key] != entry {
		// Superseded or already flushed
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.inflight.Add(1)
	d.mu.Unlock()

	defer d.inflight.Done()
	entry.fn()
}

// Flush runs every pending action now, oldest schedule first, and waits
// for in-flight ones
func (d *Debouncer) Flush() {
	d.mu.Lock()
	entries := make([]*debounced, 0, len(d.pending))
	for key, entry := range d.pending {
		entry.timer.Stop()
		entries = append(entries, entry)
		delete(d.pending, key)
	}
	d.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	for _, entry := range entries {
		entry.fn()
	}

	d.inflight.Wait()
}

// Pending returns the number of actions waiting for their quiet period
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
