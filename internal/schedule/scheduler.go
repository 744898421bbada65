package schedule

// Scheduler owns the schedule state and decides relay transitions. It is
// pure: callers drive the relay, persist the state, and publish
// acknowledgements for the events it returns, in that order.
type Scheduler struct {
	state State
}

// New creates a Scheduler seeded with the given (usually freshly loaded) state.
func New(st State) *Scheduler {
	return &Scheduler{state: st}
}

// State returns a copy of the current schedule state.
func (s *Scheduler) State() State {
	return s.state
}

// Tick runs one evaluation pass at time now. It returns the relay transitions
// to apply and whether the state changed (and therefore must be persisted).
// Calling Tick twice with the same now produces no further change.
func (s *Scheduler) Tick(now int64) ([]Event, bool) {
	var events []Event
	changed := false

	// A reconfigure that arrived before the clock was usable leaves
	// NextOnTime at zero; arm it now.
	if s.state.Interval > 0 && s.state.NextOnTime == 0 {
		s.state.NextOnTime = now + s.state.Interval
		changed = true
	}

	// Missed-activation reconciliation. Forward-only: a boundary that
	// passed while the relay was off is rescheduled, never retro-activated.
	if s.state.Interval > 0 && s.state.NextOnTime > 0 && now > s.state.NextOnTime {
		if !s.state.IsOn {
			s.state.NextOnTime = now + s.state.Interval
			changed = true
		} else if s.state.OffTime > 0 && now >= s.state.OffTime {
			// Off boundary passed while active: the relay must not
			// stay stuck on after a delayed tick.
			s.state.IsOn = false
			s.state.OffTime = 0
			s.state.NextOnTime = now + s.state.Interval
			events = append(events, Event{Time: now, Type: EventOff})
			changed = true
		}
	}

	// Scheduled turn-on. The next activation lands interval seconds after
	// the end of this one, so cycles never overlap.
	if !s.state.IsOn && s.state.NextOnTime > 0 && now >= s.state.NextOnTime {
		s.state.IsOn = true
		s.state.OffTime = now + s.state.Duration
		s.state.NextOnTime = now + s.state.Duration + s.state.Interval
		events = append(events, Event{Time: now, Type: EventOn})
		changed = true
	}

	// Scheduled turn-off.
	if s.state.IsOn && s.state.OffTime > 0 && now >= s.state.OffTime {
		s.state.IsOn = false
		s.state.OffTime = 0
		events = append(events, Event{Time: now, Type: EventOff})
		changed = true
	}

	return events, changed
}

// ApplyConfig overwrites the schedule from a reconfigure command. With a
// usable time basis the next activation is turnOnAt when positive, otherwise
// now+interval, and any in-progress timed cycle is cancelled (without
// toggling the physical relay). Without one, arming is deferred to the next
// tick after time becomes usable. Always returns true: the new
// interval/duration must be persisted either way.
func (s *Scheduler) ApplyConfig(interval, duration, turnOnAt, now int64, synced bool) bool {
	s.state.Interval = interval
	s.state.Duration = duration

	if !synced {
		s.state.NextOnTime = 0
		return true
	}

	if turnOnAt > 0 {
		s.state.NextOnTime = turnOnAt
	} else {
		s.state.NextOnTime = now + interval
	}
	s.state.OffTime = 0
	s.state.IsOn = false
	return true
}

// ApplyControl drives the relay to the requested level from a direct command.
// Any pending auto-off is cancelled; the periodic schedule itself is left
// untouched and applies at its next boundary.
func (s *Scheduler) ApplyControl(on bool, now int64) (Event, bool) {
	s.state.IsOn = on
	s.state.OffTime = 0
	typ := EventOff
	if on {
		typ = EventOn
	}
	return Event{Time: now, Type: typ}, true
}

// Restore reconciles freshly loaded state against the current time, before
// periodic ticking begins. A relay recorded active is kept on only while its
// off time is still in the future; otherwise it is forced off. A missed
// activation boundary is rescheduled forward. Returns the relay level to
// assert and whether the state changed.
func (s *Scheduler) Restore(now int64) (relayOn bool, changed bool) {
	if s.state.IsOn {
		if s.state.OffTime == 0 || now >= s.state.OffTime {
			s.state.IsOn = false
			s.state.OffTime = 0
			changed = true
		}
	}

	if !s.state.IsOn && s.state.Interval > 0 && s.state.NextOnTime > 0 && now > s.state.NextOnTime {
		s.state.NextOnTime = now + s.state.Interval
		changed = true
	}

	return s.state.IsOn, changed
}
