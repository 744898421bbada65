// Package gpio provides GPIO output driving with hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Output drives a single GPIO output line.
type Output interface {
	// Set drives the line to the given logical level (true = high).
	Set(on bool) error

	// Close releases GPIO resources, leaving the line low.
	Close() error
}

// Pin definitions (BCM numbering)
const (
	DefaultPinRelay = 5 // irrigation valve relay
	DefaultPinLED   = 2 // status LED
)
