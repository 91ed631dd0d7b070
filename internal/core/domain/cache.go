package domain

import "time"

// CacheEntry is a cached solve result.
type CacheEntry struct {
	Words     []string  `json:"words"`
	Timestamp time.Time `json:"timestamp"`
}

// ValidAt reports whether the entry was created on the same calendar day as now in loc.
// Expiry happens at local midnight, not after a fixed duration.
func (e CacheEntry) ValidAt(now time.Time, loc *time.Location) bool {
	return SameCalendarDay(e.Timestamp, now, loc)
}

// SameCalendarDay reports whether a and b share year, month and day in loc.
func SameCalendarDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// CacheEntries is the persisted cache mapping.
type CacheEntries map[PuzzleKey]CacheEntry

// Purge removes every entry that is no longer valid at now and returns how many were removed.
func (c CacheEntries) Purge(now time.Time, loc *time.Location) int {
	removed := 0
	for key, entry := range c {
		if !entry.ValidAt(now, loc) {
			delete(c, key)
			removed++
		}
	}
	return removed
}
