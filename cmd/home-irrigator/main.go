// Command home-irrigator drives an irrigation valve relay on a periodic
// schedule and accepts remote reconfiguration over MQTT.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cardoz/home-irrigator/internal/blink"
	"github.com/cardoz/home-irrigator/internal/clock"
	"github.com/cardoz/home-irrigator/internal/command"
	"github.com/cardoz/home-irrigator/internal/gpio"
	"github.com/cardoz/home-irrigator/internal/mqtt"
	"github.com/cardoz/home-irrigator/internal/schedule"
	"github.com/cardoz/home-irrigator/internal/store"
	"github.com/cardoz/home-irrigator/internal/store/sqlite"
)

func main() {
	broker := flag.String("broker", "tcp://broker.emqx.io:1883", "MQTT broker address")
	prefix := flag.String("topic-prefix", "irrigator", "MQTT topic prefix")
	clientID := flag.String("client-id", "home-irrigator", "MQTT client ID")
	dbPath := flag.String("db", "/var/lib/home-irrigator/schedule.db", "Schedule database path")
	tick := flag.Duration("tick", time.Second, "Scheduler tick interval")
	heartbeat := flag.Duration("heartbeat", 30*time.Second, "Heartbeat interval (0 to disable)")
	backoff := flag.Duration("backoff", 5*time.Second, "MQTT reconnect backoff")
	pinRelay := flag.Int("pin-relay", gpio.DefaultPinRelay, "BCM pin number for the relay")
	pinLED := flag.Int("pin-led", gpio.DefaultPinLED, "BCM pin number for the status LED")
	printSchedule := flag.Bool("print-schedule", false, "Print the persisted schedule and exit")
	seedInterval := flag.Int64("seed-interval", 0, "Interval in seconds to seed an empty store with (0 to disable)")
	seedDuration := flag.Int64("seed-duration", 0, "Duration in seconds to seed an empty store with (0 to disable)")

	flag.Parse()

	if err := run(*broker, *prefix, *clientID, *dbPath, *tick, *heartbeat, *backoff, *pinRelay, *pinLED, *printSchedule, *seedInterval, *seedDuration); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(broker, prefix, clientID, dbPath string, tick, heartbeat, backoff time.Duration, pinRelay, pinLED int, printSchedule bool, seedInterval, seedDuration int64) error {
	db, err := sqlite.NewFileStore(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	// Print mode
	if printSchedule {
		st, found, err := db.Load()
		if err != nil {
			return fmt.Errorf("load schedule: %w", err)
		}
		if !found {
			fmt.Println("no schedule persisted")
			return nil
		}
		fmt.Println(formatSchedule(st))
		return nil
	}

	// Initialize GPIO
	relay, err := gpio.NewRealOutput(pinRelay)
	if err != nil {
		return fmt.Errorf("init relay gpio: %w", err)
	}
	defer relay.Close()

	led, err := gpio.NewRealOutput(pinLED)
	if err != nil {
		return fmt.Errorf("init led gpio: %w", err)
	}
	defer led.Close()

	// Start the status indicator before anything that can fail or block.
	status := blink.NewFlag(blink.StatusNetConnecting)
	stopBlink := make(chan struct{})
	go blink.New(led, status).Run(stopBlink)
	defer close(stopBlink)

	// Network provisioning happens out of band (pi-helper); reflect its
	// outcome on the LED.
	switch readNetworkStatus() {
	case "connected":
		status.Set(blink.StatusNetConnected)
	case "":
		// Unknown: leave the connecting pattern up.
	default:
		status.Set(blink.StatusNetFailed)
	}

	clk := clock.NewSystemSource()

	// Load the schedule before connecting so it runs even while offline.
	st, found, err := db.Load()
	if err != nil {
		return fmt.Errorf("load schedule: %w", err)
	}
	if !found && seedInterval > 0 && seedDuration > 0 {
		st = schedule.State{Interval: seedInterval, Duration: seedDuration}
		if err := db.Save(st); err != nil {
			return fmt.Errorf("seed schedule: %w", err)
		}
		log.Printf("seeded empty store: interval=%ds duration=%ds", seedInterval, seedDuration)
	}
	log.Printf("initial schedule: %s", formatSchedule(st))

	sched := schedule.New(st)
	relayOn, changed := sched.Restore(clk.Now())
	if err := relay.Set(relayOn); err != nil {
		return fmt.Errorf("assert relay: %w", err)
	}
	if changed {
		persist(db, sched)
	}
	if relayOn {
		log.Printf("restored relay ON until %d", sched.State().OffTime)
	}

	status.Set(blink.StatusBrokerConnecting)
	client := mqtt.NewRealClient(broker, prefix, clientID, backoff)
	defer client.Close()

	log.Printf("started: tick=%v heartbeat=%v backoff=%v broker=%s prefix=%s db=%s", tick, heartbeat, backoff, broker, prefix, dbPath)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var hb <-chan time.Time
	if heartbeat > 0 {
		hbTicker := time.NewTicker(heartbeat)
		defer hbTicker.Stop()
		hb = hbTicker.C
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(sched, relay, db, client, clk, status, ticker.C, hb, sigCh)
}

// runLoop is the scheduler's cooperative loop: non-reentrant, one tick at a
// time, commands handled between ticks, heartbeats on their own cadence.
func runLoop(sched *schedule.Scheduler, relay gpio.Output, db store.Store, client mqtt.Client, clk clock.Source, status *blink.Flag, tick, heartbeat <-chan time.Time, sig <-chan os.Signal) error {
	synced := clk.Synced()
	wasConnected := false

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			return nil

		case msg := <-client.Messages():
			handleMessage(sched, relay, db, client, msg, clk.Now(), clk.Synced())

		case <-heartbeat:
			if !client.IsConnected() {
				continue
			}
			if err := client.PublishHeartbeat(); err != nil {
				log.Printf("heartbeat publish error: %v", err)
			}

		case <-tick:
			if client.IsConnected() {
				wasConnected = true
				status.Set(blink.StatusBrokerConnected)
			} else if wasConnected {
				// A link that was up and dropped shows the failure
				// pattern until the auto-reconnect restores it.
				status.Set(blink.StatusBrokerFailed)
			} else {
				status.Set(blink.StatusBrokerConnecting)
			}

			if !synced && clk.Synced() {
				// The reconciliation inside Tick absorbs the jump.
				synced = true
				log.Printf("wall clock synchronized at epoch %d", clk.Now())
			}

			events, changed := sched.Tick(clk.Now())
			applyEvents(sched, relay, db, client, events, changed)
		}
	}
}

// handleMessage dispatches an inbound command by topic suffix. Malformed
// payloads are discarded with a log line and no state change.
func handleMessage(sched *schedule.Scheduler, relay gpio.Output, db store.Store, client mqtt.Client, msg mqtt.Message, now int64, synced bool) {
	switch msg.Suffix {
	case mqtt.SuffixConfig:
		cfg, err := command.ParseConfig(msg.Payload)
		if err != nil {
			log.Printf("discarding config: %v", err)
			return
		}
		sched.ApplyConfig(cfg.Interval, cfg.Duration, cfg.TurnOnAt, now, synced)
		persist(db, sched)
		log.Printf("reconfigured: %s", formatSchedule(sched.State()))

	case mqtt.SuffixControl:
		out, err := command.ParseOutput(msg.Payload)
		if err != nil {
			log.Printf("discarding control: %v", err)
			return
		}
		event, changed := sched.ApplyControl(out.On, now)
		applyEvents(sched, relay, db, client, []schedule.Event{event}, changed)

	default:
		log.Printf("ignoring message on unknown suffix %q", msg.Suffix)
	}
}

// applyEvents drives the relay, persists, then acknowledges, in that order:
// the persisted state is reconciled before any externally observable ack.
func applyEvents(sched *schedule.Scheduler, relay gpio.Output, db store.Store, client mqtt.Client, events []schedule.Event, changed bool) {
	for _, e := range events {
		if err := relay.Set(e.Level()); err != nil {
			log.Printf("relay error: %v", err)
		}
		log.Printf("relay %s at %d", e.Type, e.Time)
	}

	if changed {
		persist(db, sched)
	}

	for _, e := range events {
		if !client.IsConnected() {
			log.Printf("dropping %s ack: broker not connected", e.Type)
			continue
		}
		if err := client.PublishAck(string(e.Type)); err != nil {
			log.Printf("ack publish error: %v", err)
		}
	}
}

// persist is best-effort: a failed write is logged, not fatal. The relay
// has already been driven and the tick must keep running.
func persist(db store.Store, sched *schedule.Scheduler) {
	if err := db.Save(sched.State()); err != nil {
		log.Printf("persist error: %v", err)
	}
}

// pi-helper env var name (written to /run/pi-helper.env).
const envNetworkStatus = "NETWORK_STATUS"

func readNetworkStatus() string {
	return os.Getenv(envNetworkStatus)
}

func formatSchedule(st schedule.State) string {
	return fmt.Sprintf("interval=%ds duration=%ds next_on=%d off_time=%d is_on=%v",
		st.Interval, st.Duration, st.NextOnTime, st.OffTime, st.IsOn)
}
