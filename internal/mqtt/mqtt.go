// Package mqtt provides the broker connection with abstraction for testing.
package mqtt

// Topic suffixes appended to the device topic prefix.
const (
	SuffixConfig    = "config"
	SuffixControl   = "control"
	SuffixAck       = "ack"
	SuffixHeartbeat = "heartbeat"
)

// HeartbeatPayload is the body of every heartbeat message.
const HeartbeatPayload = "alive"

// Message is an inbound command delivered to the run loop. The broker
// callback never acts on it directly; commands are handled in the tick
// path, where the scheduler state lives.
type Message struct {
	// Suffix is the topic suffix the message arrived on (config or control).
	Suffix string

	// Payload is the raw message body.
	Payload string
}

// Client publishes acknowledgements and heartbeats and delivers inbound
// command messages.
type Client interface {
	// PublishAck confirms the relay's resulting state ("ON" or "OFF").
	PublishAck(level string) error

	// PublishHeartbeat publishes a liveness message.
	PublishHeartbeat() error

	// Messages delivers inbound config/control payloads. The channel is
	// never closed; messages are dropped, not queued, when it is full.
	Messages() <-chan Message

	// IsConnected reports whether the broker connection is up.
	IsConnected() bool

	// Close disconnects from the broker.
	Close() error
}

// Topic joins the device prefix and a topic suffix.
func Topic(prefix, suffix string) string {
	return prefix + "/" + suffix
}
