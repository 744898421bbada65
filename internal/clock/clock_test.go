package clock

import (
	"testing"
	"time"
)

func TestSystemSourceUnsyncedUsesUptime(t *testing.T) {
	boot := time.Unix(40, 0)
	current := boot
	s := newSystemSource(func() time.Time { return current })

	if s.Synced() {
		t.Fatal("clock near epoch zero must not report synced")
	}
	if got := s.Now(); got != 0 {
		t.Errorf("Now at boot: got %d, want 0", got)
	}

	current = boot.Add(75 * time.Second)
	if got := s.Now(); got != 75 {
		t.Errorf("Now: got %d, want uptime 75", got)
	}
}

func TestSystemSourceSyncedUsesEpoch(t *testing.T) {
	current := time.Unix(40, 0)
	s := newSystemSource(func() time.Time { return current })

	// NTP completes: the wall clock jumps past the sync floor.
	current = time.Unix(1700000000, 0)
	if !s.Synced() {
		t.Fatal("clock past the sync floor must report synced")
	}
	if got := s.Now(); got != 1700000000 {
		t.Errorf("Now: got %d, want 1700000000", got)
	}
}

func TestSystemSourceSyncFloorBoundary(t *testing.T) {
	s := newSystemSource(func() time.Time { return time.Unix(syncFloor, 0) })

	if !s.Synced() {
		t.Fatal("epoch at the sync floor counts as synced")
	}
	if got := s.Now(); got != syncFloor {
		t.Errorf("Now: got %d, want %d", got, syncFloor)
	}
}
