package gpio

import (
	"errors"
	"testing"
)

func TestFakeOutputRecordsLevels(t *testing.T) {
	f := NewFakeOutput()

	if f.Current {
		t.Error("new output should start low")
	}

	for _, on := range []bool{true, true, false, true} {
		if err := f.Set(on); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	want := []bool{true, true, false, true}
	if len(f.Levels) != len(want) {
		t.Fatalf("expected %d levels, got %d", len(want), len(f.Levels))
	}
	for i, level := range want {
		if f.Levels[i] != level {
			t.Errorf("level %d: got %v, want %v", i, f.Levels[i], level)
		}
	}
	if !f.Current {
		t.Error("Current should reflect the last write")
	}
}

func TestFakeOutputSetError(t *testing.T) {
	f := NewFakeOutput()
	f.SetError = errors.New("gpio fault")

	if err := f.Set(true); err == nil {
		t.Error("expected error from Set")
	}
	if len(f.Levels) != 0 {
		t.Errorf("failed Set should record nothing, got %d levels", len(f.Levels))
	}
}

func TestFakeOutputClose(t *testing.T) {
	f := NewFakeOutput()

	if err := f.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("Closed should be true after Close")
	}
}

func TestFakeOutputReset(t *testing.T) {
	f := NewFakeOutput()
	f.Set(true)
	f.Close()

	f.Reset()
	if f.Current || f.Closed || len(f.Levels) != 0 {
		t.Errorf("Reset should clear all state, got %+v", f)
	}
}
