package sqlite

import (
	"testing"

	"github.com/cardoz/home-irrigator/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewMemoryStore(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	assert.NotNil(t, store)
}

func TestNewFileStore(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewFileStore(tmpDir + "/schedule.db")
	require.NoError(t, err)
	defer store.Close()

	assert.NotNil(t, store)
}

func TestLoadEmpty(t *testing.T) {
	store := newTestStore(t)

	_, found, err := store.Load()
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSaveAndLoad(t *testing.T) {
	store := newTestStore(t)

	st := schedule.State{
		Interval:   3600,
		Duration:   30,
		NextOnTime: 4600,
		OffTime:    4630,
		IsOn:       true,
	}
	require.NoError(t, store.Save(st))

	loaded, found, err := store.Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, st, loaded)
}

func TestSaveAndLoadAllZero(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(schedule.State{}))

	loaded, found, err := store.Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, schedule.State{}, loaded)
}

func TestSaveOverwrites(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(schedule.State{Interval: 3600, Duration: 30, NextOnTime: 4600}))
	require.NoError(t, store.Save(schedule.State{Interval: 600, Duration: 10, NextOnTime: 9999, IsOn: true}))

	loaded, found, err := store.Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, schedule.State{Interval: 600, Duration: 10, NextOnTime: 9999, IsOn: true}, loaded)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	path := t.TempDir() + "/schedule.db"

	store, err := NewFileStore(path)
	require.NoError(t, err)

	st := schedule.State{Interval: 7200, Duration: 45, NextOnTime: 20000}
	require.NoError(t, store.Save(st))
	require.NoError(t, store.Close())

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, found, err := reopened.Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, st, loaded)
}
