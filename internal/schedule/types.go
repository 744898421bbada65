// Package schedule contains pure scheduling logic for the irrigation relay.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable as epoch/uptime seconds parameters.
package schedule

// State is the persisted schedule record. All timestamps are in seconds on
// whatever basis the clock source supplies (epoch once synchronized, uptime
// before that).
type State struct {
	// Interval is the gap in seconds between activations; 0 = no schedule.
	Interval int64
	// Duration is how long the relay stays on per activation, in seconds.
	Duration int64
	// NextOnTime is when the relay next turns on; 0 = not yet armed.
	NextOnTime int64
	// OffTime is when an active relay turns off; 0 = no auto-off pending.
	OffTime int64
	// IsOn is the relay state as last commanded by the scheduler.
	IsOn bool
}

// EventType identifies a relay transition.
type EventType string

const (
	EventOn  EventType = "ON"
	EventOff EventType = "OFF"
)

// Event represents a relay transition to be applied and acknowledged.
type Event struct {
	Time int64
	Type EventType
}

// Level returns the relay level the event drives.
func (e Event) Level() bool {
	return e.Type == EventOn
}
