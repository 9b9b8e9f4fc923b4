// SPDX-License-Identifier: MIT

package cache

import "time"

// TTL expires an artifact once the given duration has elapsed since its last
// write. A missing artifact (zero mtime) is always expired.
func TTL(d time.Duration) ExpiryFunc {
	return TTLClock(d, time.Now)
}

// TTLClock is TTL with an injectable clock.
func TTLClock(d time.Duration, now func() time.Time) ExpiryFunc {
	return func(lastModified time.Time, _ []byte) bool {
		return now().Sub(lastModified) >= d
	}
}

// CalendarDay expires an artifact once the local calendar date of its last
// write differs from today, regardless of hours elapsed. An artifact written
// at 23:59:59 expires at midnight; one written just after midnight holds all
// day.
func CalendarDay() ExpiryFunc {
	return CalendarDayClock(time.Now)
}

// CalendarDayClock is CalendarDay with an injectable clock.
func CalendarDayClock(now func() time.Time) ExpiryFunc {
	return func(lastModified time.Time, _ []byte) bool {
		ny, nm, nd := now().Local().Date()
		ly, lm, ld := lastModified.Local().Date()
		return ny != ly || nm != lm || nd != ld
	}
}

// Never keeps an artifact fresh forever; only absence triggers a refresh.
func Never() ExpiryFunc {
	return func(time.Time, []byte) bool { return false }
}

// Any combines predicates; the artifact is expired when any of them fires.
func Any(fns ...ExpiryFunc) ExpiryFunc {
	return func(lastModified time.Time, cached []byte) bool {
		for _, fn := range fns {
			if fn(lastModified, cached) {
				return true
			}
		}
		return false
	}
}

// ModifiedAfter expires an artifact once an upstream slot has been written
// more recently, propagating staleness from a raw fetch into its derived
// parse.
func ModifiedAfter(upstream *Store) ExpiryFunc {
	return func(lastModified time.Time, _ []byte) bool {
		return lastModified.Before(upstream.LastModified())
	}
}
