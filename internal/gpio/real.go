//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealOutput drives a GPIO line on actual hardware using the Linux GPIO
// character device.
type RealOutput struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewRealOutput requests the given pin as an output, driven low.
// The relay module is active-high, so low is the safe boot state.
func NewRealOutput(pin int) (*RealOutput, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request output pin %d: %w", pin, err)
	}

	return &RealOutput{
		chip: chip,
		line: line,
	}, nil
}

// Set drives the line high (true) or low (false).
func (o *RealOutput) Set(on bool) error {
	value := 0
	if on {
		value = 1
	}
	if err := o.line.SetValue(value); err != nil {
		return fmt.Errorf("set line value: %w", err)
	}
	return nil
}

// Close drives the line low and releases GPIO resources. Forcing low first
// ensures the relay cannot be left energized across a daemon restart.
func (o *RealOutput) Close() error {
	var errs []error

	if o.line != nil {
		if err := o.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("drive line low: %w", err))
		}
		if err := o.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line: %w", err))
		}
	}
	if o.chip != nil {
		if err := o.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
