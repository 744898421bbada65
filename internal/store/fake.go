package store

import "github.com/cardoz/home-irrigator/internal/schedule"

// FakeStore is a test double that keeps the schedule in memory and records
// every save for assertions.
type FakeStore struct {
	// State is the value returned by Load.
	State schedule.State

	// Exists controls the second return value of Load.
	Exists bool

	// Saves contains every state passed to Save, in order.
	Saves []schedule.State

	// LoadError, if set, will be returned by Load.
	LoadError error

	// SaveError, if set, will be returned by Save.
	SaveError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

// Load returns the scripted state.
func (f *FakeStore) Load() (schedule.State, bool, error) {
	if f.LoadError != nil {
		return schedule.State{}, false, f.LoadError
	}
	return f.State, f.Exists, nil
}

// Save records the state.
func (f *FakeStore) Save(st schedule.State) error {
	if f.SaveError != nil {
		return f.SaveError
	}
	f.State = st
	f.Exists = true
	f.Saves = append(f.Saves, st)
	return nil
}

// Close marks the store as closed.
func (f *FakeStore) Close() error {
	f.Closed = true
	return nil
}
