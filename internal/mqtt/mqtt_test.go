package mqtt

import (
	"errors"
	"testing"
)

func TestTopic(t *testing.T) {
	cases := []struct {
		prefix string
		suffix string
		want   string
	}{
		{"irrigator", SuffixConfig, "irrigator/config"},
		{"irrigator", SuffixControl, "irrigator/control"},
		{"irrigator", SuffixAck, "irrigator/ack"},
		{"irrigator", SuffixHeartbeat, "irrigator/heartbeat"},
		{"garden/plot1", SuffixAck, "garden/plot1/ack"},
	}
	for _, c := range cases {
		if got := Topic(c.prefix, c.suffix); got != c.want {
			t.Errorf("Topic(%q, %q): got %q, want %q", c.prefix, c.suffix, got, c.want)
		}
	}
}

func TestFakeClientRecordsAcks(t *testing.T) {
	f := NewFakeClient()

	if err := f.PublishAck("ON"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.PublishAck("OFF"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.Acks) != 2 || f.Acks[0] != "ON" || f.Acks[1] != "OFF" {
		t.Errorf("Acks: got %v, want [ON OFF]", f.Acks)
	}
}

func TestFakeClientRecordsHeartbeats(t *testing.T) {
	f := NewFakeClient()

	f.PublishHeartbeat()
	f.PublishHeartbeat()

	if f.Heartbeats != 2 {
		t.Errorf("Heartbeats: got %d, want 2", f.Heartbeats)
	}
}

func TestFakeClientErrors(t *testing.T) {
	f := NewFakeClient()
	f.AckError = errors.New("not connected")
	f.HeartbeatError = errors.New("not connected")

	if err := f.PublishAck("ON"); err == nil {
		t.Error("expected error from PublishAck")
	}
	if len(f.Acks) != 0 {
		t.Errorf("failed publish should record nothing, got %v", f.Acks)
	}
	if err := f.PublishHeartbeat(); err == nil {
		t.Error("expected error from PublishHeartbeat")
	}
}

func TestFakeClientMessages(t *testing.T) {
	f := NewFakeClient()

	f.In <- Message{Suffix: SuffixControl, Payload: "ON"}

	select {
	case msg := <-f.Messages():
		if msg.Suffix != SuffixControl || msg.Payload != "ON" {
			t.Errorf("got %+v", msg)
		}
	default:
		t.Fatal("expected a buffered message")
	}
}
