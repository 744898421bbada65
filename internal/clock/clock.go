// Package clock supplies the scheduler's time basis: epoch seconds once the
// wall clock is synchronized, uptime seconds before that.
package clock

import "time"

// Source yields the current time in seconds for scheduling comparisons.
type Source interface {
	// Now returns epoch seconds when Synced, uptime seconds otherwise.
	// The basis is consistent within any single scheduling comparison.
	Now() int64

	// Synced reports whether a wall-clock basis is usable.
	Synced() bool
}

// syncFloor is the epoch below which the wall clock is considered never set.
// Embedded boards boot with their RTC near zero until NTP completes.
const syncFloor = 100000

// SystemSource reads the OS clock, falling back to process uptime while the
// wall clock has not been set.
type SystemSource struct {
	start time.Time
	now   func() time.Time
}

// NewSystemSource creates a SystemSource anchored at the current instant.
func NewSystemSource() *SystemSource {
	return newSystemSource(time.Now)
}

func newSystemSource(now func() time.Time) *SystemSource {
	return &SystemSource{start: now(), now: now}
}

// Now returns epoch seconds, or seconds since process start if the wall
// clock has never been set.
func (s *SystemSource) Now() int64 {
	if t := s.now().Unix(); t >= syncFloor {
		return t
	}
	return int64(s.now().Sub(s.start).Seconds())
}

// Synced reports whether the wall clock has been set.
func (s *SystemSource) Synced() bool {
	return s.now().Unix() >= syncFloor
}
