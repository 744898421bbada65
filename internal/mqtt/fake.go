package mqtt

// FakeClient records published messages for test assertions and lets tests
// inject inbound commands.
type FakeClient struct {
	// Acks contains every level passed to PublishAck.
	Acks []string

	// Heartbeats counts PublishHeartbeat calls.
	Heartbeats int

	// In is the inbound channel returned by Messages. Tests send on it.
	In chan Message

	// Connected controls the return value of IsConnected.
	Connected bool

	// AckError, if set, will be returned by PublishAck.
	AckError error

	// HeartbeatError, if set, will be returned by PublishHeartbeat.
	HeartbeatError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeClient creates a connected FakeClient.
func NewFakeClient() *FakeClient {
	return &FakeClient{
		In:        make(chan Message, inboundBuffer),
		Connected: true,
	}
}

// PublishAck records the acknowledgement.
func (f *FakeClient) PublishAck(level string) error {
	if f.AckError != nil {
		return f.AckError
	}
	f.Acks = append(f.Acks, level)
	return nil
}

// PublishHeartbeat records the heartbeat.
func (f *FakeClient) PublishHeartbeat() error {
	if f.HeartbeatError != nil {
		return f.HeartbeatError
	}
	f.Heartbeats++
	return nil
}

// Messages delivers the injected inbound commands.
func (f *FakeClient) Messages() <-chan Message {
	return f.In
}

// IsConnected reports the scripted connection state.
func (f *FakeClient) IsConnected() bool {
	return f.Connected
}

// Close marks the client as closed.
func (f *FakeClient) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded messages.
func (f *FakeClient) Reset() {
	f.Acks = nil
	f.Heartbeats = 0
	f.Closed = false
	f.AckError = nil
	f.HeartbeatError = nil
	f.Connected = true
}
