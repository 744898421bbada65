package mqtt

import (
	"fmt"
	"log"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// inboundBuffer bounds how many unhandled commands may queue between ticks.
const inboundBuffer = 16

// RealClient talks to an actual MQTT broker.
type RealClient struct {
	client paho.Client
	prefix string
	in     chan Message
}

// NewRealClient starts a connection to the given broker. Connection failures
// are retried indefinitely in the background at the fixed backoff interval;
// the client is usable immediately and reports its state via IsConnected.
// Subscriptions to the config and control topics are re-established on every
// (re)connect.
func NewRealClient(broker, prefix, clientID string, backoff time.Duration) *RealClient {
	c := &RealClient{
		prefix: prefix,
		in:     make(chan Message, inboundBuffer),
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetMaxReconnectInterval(backoff).
		SetConnectRetry(true).
		SetConnectRetryInterval(backoff).
		SetOnConnectHandler(c.onConnect).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Printf("mqtt: connection lost: %v", err)
		})

	c.client = paho.NewClient(opts)
	c.client.Connect()
	return c
}

func (c *RealClient) onConnect(client paho.Client) {
	log.Printf("mqtt: connected, subscribing")
	c.subscribe(client, SuffixConfig)
	c.subscribe(client, SuffixControl)
}

func (c *RealClient) subscribe(client paho.Client, suffix string) {
	topic := Topic(c.prefix, suffix)
	token := client.Subscribe(topic, 0, func(_ paho.Client, m paho.Message) {
		// Hand off to the run loop; never block the paho callback.
		select {
		case c.in <- Message{Suffix: suffix, Payload: string(m.Payload())}:
		default:
			log.Printf("mqtt: inbound buffer full, dropping message on %s", topic)
		}
	})
	if !token.WaitTimeout(5 * time.Second) {
		log.Printf("mqtt: subscribe timeout on %s", topic)
		return
	}
	if err := token.Error(); err != nil {
		log.Printf("mqtt: subscribe %s: %v", topic, err)
	}
}

// PublishAck sends a relay acknowledgement to the broker.
func (c *RealClient) PublishAck(level string) error {
	return c.publish(SuffixAck, level)
}

// PublishHeartbeat sends a liveness message to the broker.
func (c *RealClient) PublishHeartbeat() error {
	return c.publish(SuffixHeartbeat, HeartbeatPayload)
}

func (c *RealClient) publish(suffix, payload string) error {
	// QoS 0 (at-most-once), not retained. Delivery is best-effort;
	// messages are never queued across a disconnection.
	token := c.client.Publish(Topic(c.prefix, suffix), 0, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", suffix, err)
	}
	return nil
}

// Messages delivers inbound command payloads.
func (c *RealClient) Messages() <-chan Message {
	return c.in
}

// IsConnected reports whether the broker connection is up. Paho's own
// IsConnected also reports true while a reconnect is pending, which would
// defeat the publish guard, so ask for the actual link state.
func (c *RealClient) IsConnected() bool {
	return c.client.IsConnectionOpen()
}

// Close disconnects from the broker.
func (c *RealClient) Close() error {
	c.client.Disconnect(1000) // 1 second timeout
	return nil
}
