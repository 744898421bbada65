package clock

// FakeSource is a test double with a scripted time basis.
type FakeSource struct {
	// Epoch is the value returned by Now.
	Epoch int64

	// IsSynced controls the return value of Synced.
	IsSynced bool
}

// NewFakeSource creates a synced FakeSource at the given epoch.
func NewFakeSource(epoch int64) *FakeSource {
	return &FakeSource{Epoch: epoch, IsSynced: true}
}

// Now returns the scripted time.
func (f *FakeSource) Now() int64 {
	return f.Epoch
}

// Synced returns the scripted sync state.
func (f *FakeSource) Synced() bool {
	return f.IsSynced
}

// Advance moves the scripted time forward by d seconds.
func (f *FakeSource) Advance(d int64) {
	f.Epoch += d
}
