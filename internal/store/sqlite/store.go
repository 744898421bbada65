// Package sqlite provides a SQLite implementation of the store.Store interface.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/cardoz/home-irrigator/internal/schedule"
	"github.com/cardoz/home-irrigator/internal/store"

	_ "modernc.org/sqlite"
)

// Store is a SQLite implementation of store.Store.
type Store struct {
	db *sql.DB
}

// NewMemoryStore creates an in-memory SQLite store.
func NewMemoryStore() (*Store, error) {
	return newStore(":memory:")
}

// NewFileStore creates a file-based SQLite store.
func NewFileStore(path string) (*Store, error) {
	return newStore(path)
}

func newStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps :memory: databases coherent and serializes
	// the synchronous writes from the tick path.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Keys match the NVS layout of the original device firmware, so a dump is
// directly comparable.
const (
	keyInterval = "interval"
	keyDuration = "duration"
	keyNextOn   = "next_on"
	keyOffTime  = "off_time"
	keyIsOn     = "is_on"
)

// Load reads the persisted schedule. The second result is false when no
// schedule has ever been saved.
func (s *Store) Load() (schedule.State, bool, error) {
	rows, err := s.db.Query("SELECT key, value FROM schedule")
	if err != nil {
		return schedule.State{}, false, err
	}
	defer rows.Close()

	var st schedule.State
	found := false
	for rows.Next() {
		var key string
		var value int64
		if err := rows.Scan(&key, &value); err != nil {
			return schedule.State{}, false, err
		}
		found = true
		switch key {
		case keyInterval:
			st.Interval = value
		case keyDuration:
			st.Duration = value
		case keyNextOn:
			st.NextOnTime = value
		case keyOffTime:
			st.OffTime = value
		case keyIsOn:
			st.IsOn = value != 0
		}
	}
	return st, found, rows.Err()
}

// Save writes all five fields in a single transaction.
func (s *Store) Save(st schedule.State) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO schedule (key, value) VALUES (?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	isOn := int64(0)
	if st.IsOn {
		isOn = 1
	}
	fields := []struct {
		key   string
		value int64
	}{
		{keyInterval, st.Interval},
		{keyDuration, st.Duration},
		{keyNextOn, st.NextOnTime},
		{keyOffTime, st.OffTime},
		{keyIsOn, isOn},
	}
	for _, f := range fields {
		if _, err := stmt.Exec(f.key, f.value); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Verify interface compliance
var _ store.Store = (*Store)(nil)
