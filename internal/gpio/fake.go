package gpio

// FakeOutput is a test double that records every level written.
type FakeOutput struct {
	// Current is the most recently written level.
	Current bool

	// Levels contains every level passed to Set, in order.
	Levels []bool

	// Closed tracks if Close was called.
	Closed bool

	// SetError, if set, will be returned by Set.
	SetError error
}

// NewFakeOutput creates a FakeOutput, initially low.
func NewFakeOutput() *FakeOutput {
	return &FakeOutput{}
}

// Set records the level.
func (f *FakeOutput) Set(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Current = on
	f.Levels = append(f.Levels, on)
	return nil
}

// Close marks the output as closed.
func (f *FakeOutput) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded levels.
func (f *FakeOutput) Reset() {
	f.Current = false
	f.Levels = nil
	f.Closed = false
	f.SetError = nil
}
