package reminder

import "time"

// BucketLayout is the minute granularity reminders are deduplicated at
const BucketLayout = "2006-01-02T15:04"

// DedupState maps a reminder key to the last bucket it fired in.
type DedupState map[string]string

// Fire reports whether key may fire in bucket and records it if so
func (d DedupState) Fire(key, bucket string) bool {
	if d[key] == bucket {
		return false
	}
	d[key] = bucket
	return true
}

// Prune drops entries older than maxAge. Unparseable buckets go too.
func (d DedupState) Prune(now time.Time, maxAge time.Duration) {
	cutoff := now.Add(-maxAge)
	for key, bucket := range d {
		fired, err := time.ParseInLocation(BucketLayout, bucket, now.Location())
		if err != nil || fired.Before(cutoff) {
			delete(d, key)
		}
	}
}
