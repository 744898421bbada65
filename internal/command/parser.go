// Package command parses inbound text payloads into structured commands.
// Parsing is pure: no I/O, no side effects. The grammar is a loose
// case-insensitive key search, not a strict format validator; the payloads
// come from hand-typed MQTT messages and JSON-ish strings alike.
package command

import (
	"fmt"
	"strconv"
	"strings"
)

// Config is a parsed reconfigure-schedule command.
type Config struct {
	// Interval is the gap in seconds between activations.
	Interval int64
	// Duration is how long the relay stays on, in seconds.
	Duration int64
	// TurnOnAt is an explicit epoch for the next activation; 0 = compute
	// from now+interval instead.
	TurnOnAt int64
}

// Output is a parsed set-output command.
type Output struct {
	On bool
}

// ParseConfig extracts interval and duration (both required, both positive)
// and an optional TURN_ON_AT epoch from the payload. A zero or unparsable
// required field invalidates the whole command.
func ParseConfig(payload string) (Config, error) {
	interval := scanNumber(payload, "interval")
	duration := scanNumber(payload, "duration")
	if interval <= 0 || duration <= 0 {
		return Config{}, fmt.Errorf("config: interval and duration must be positive integers: %q", payload)
	}

	return Config{
		Interval: interval,
		Duration: duration,
		TurnOnAt: scanNumber(payload, "turn_on_at"),
	}, nil
}

// ParseOutput extracts the requested relay level. The payload is either a
// bare ON/OFF token or carries an "output" field; anything else is rejected.
func ParseOutput(payload string) (Output, error) {
	value := payload
	if i := indexFold(payload, "output"); i >= 0 {
		rest := payload[i+len("output"):]
		j := strings.IndexByte(rest, ':')
		if j < 0 {
			return Output{}, fmt.Errorf("control: output field has no value: %q", payload)
		}
		value = rest[j+1:]
	}

	switch strings.ToUpper(scanToken(value)) {
	case "ON":
		return Output{On: true}, nil
	case "OFF":
		return Output{On: false}, nil
	}
	return Output{}, fmt.Errorf("control: unknown output value: %q", payload)
}

// scanNumber finds key (case-insensitive) in src and parses the unsigned
// integer following its ':' separator. Returns 0 if the key is absent or the
// value does not parse.
func scanNumber(src, key string) int64 {
	i := indexFold(src, key)
	if i < 0 {
		return 0
	}
	rest := src[i+len(key):]

	j := strings.IndexByte(rest, ':')
	if j < 0 {
		return 0
	}
	rest = strings.TrimLeft(rest[j+1:], " \t\r\n\"'")

	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}

	n, err := strconv.ParseInt(rest[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// scanToken returns the first bare token of s, stripped of leading
// whitespace and quotes and terminated by any delimiter.
func scanToken(s string) string {
	s = strings.TrimLeft(s, " \t\r\n\"'")
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"', '\'', ',', '}', ' ', '\t', '\r', '\n':
			return s[:i]
		}
	}
	return s
}

// indexFold is a case-insensitive strings.Index.
func indexFold(s, substr string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(substr))
}
