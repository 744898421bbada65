// Package store persists the schedule across power cycles.
package store

import "github.com/cardoz/home-irrigator/internal/schedule"

// Store loads and saves the schedule record.
type Store interface {
	// Load returns the persisted schedule, read once at startup.
	// The second result is false when nothing has been persisted yet.
	Load() (schedule.State, bool, error)

	// Save writes all five schedule fields atomically as a group.
	// Called after every scheduler-driven mutation.
	Save(schedule.State) error

	// Close releases store resources.
	Close() error
}
