// Package blink renders device/connection phase as a timing pattern on the
// status LED. The shared status word has exactly one writer (the bootstrap
// and run loop) and one reader (the blinker), so an atomic load/store is all
// the synchronization it needs.
package blink

import (
	"sync/atomic"
	"time"

	"github.com/cardoz/home-irrigator/internal/gpio"
)

// Status enumerates the connection phases the LED can show.
type Status int32

const (
	StatusNetConnecting Status = iota
	StatusNetConnected
	StatusBrokerConnecting
	StatusBrokerConnected
	StatusNetFailed
	StatusBrokerFailed
)

// String returns a log-friendly name for the status.
func (s Status) String() string {
	switch s {
	case StatusNetConnecting:
		return "net-connecting"
	case StatusNetConnected:
		return "net-connected"
	case StatusBrokerConnecting:
		return "broker-connecting"
	case StatusBrokerConnected:
		return "broker-connected"
	case StatusNetFailed:
		return "net-failed"
	case StatusBrokerFailed:
		return "broker-failed"
	}
	return "unknown"
}

// Flag is the shared status value.
type Flag struct {
	v atomic.Int32
}

// NewFlag creates a Flag holding the given initial status.
func NewFlag(initial Status) *Flag {
	f := &Flag{}
	f.v.Store(int32(initial))
	return f
}

// Set stores the status. Single writer at any phase.
func (f *Flag) Set(s Status) {
	f.v.Store(int32(s))
}

// Get loads the status.
func (f *Flag) Get() Status {
	return Status(f.v.Load())
}

// phase is one step of a blink pattern.
type phase struct {
	on   bool
	wait time.Duration
}

// patterns maps each status to one repetition of its LED pattern: symmetric
// blinks while connecting, a short pulse with a long rest once the broker is
// up, slow symmetric blinks on failure. Timings match the original device.
var patterns = map[Status][]phase{
	StatusNetConnecting:    {{true, 500 * time.Millisecond}, {false, 500 * time.Millisecond}},
	StatusNetConnected:     {{true, 100 * time.Millisecond}, {false, 100 * time.Millisecond}},
	StatusBrokerConnecting: {{true, 150 * time.Millisecond}, {false, 150 * time.Millisecond}},
	StatusBrokerConnected:  {{true, 50 * time.Millisecond}, {false, 1950 * time.Millisecond}},
	StatusNetFailed:        {{true, time.Second}, {false, time.Second}},
	StatusBrokerFailed:     {{true, 2 * time.Second}, {false, 2 * time.Second}},
}

// Blinker drives the status LED. It never touches scheduling state.
type Blinker struct {
	out   gpio.Output
	flag  *Flag
	sleep func(time.Duration)
}

// New creates a Blinker reading flag and driving out.
func New(out gpio.Output, flag *Flag) *Blinker {
	return &Blinker{
		out:   out,
		flag:  flag,
		sleep: time.Sleep,
	}
}

// Run renders patterns until stop is closed, then leaves the LED low.
// The status flag is re-read once per pattern repetition, so a status change
// takes effect within at most one full pattern period.
func (b *Blinker) Run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			b.out.Set(false)
			return
		default:
		}
		b.renderOnce(b.flag.Get())
	}
}

// renderOnce plays one repetition of the pattern for st.
func (b *Blinker) renderOnce(st Status) {
	for _, p := range patterns[st] {
		b.out.Set(p.on)
		b.sleep(p.wait)
	}
}
