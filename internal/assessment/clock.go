package assessment

import (
	"sync"
	"time"
)

// ClockState enumerates countdown timer states.
type ClockState string

const (
	ClockIdle    ClockState = "IDLE"
	ClockRunning ClockState = "RUNNING"
	ClockExpired ClockState = "EXPIRED"
	ClockStopped ClockState = "STOPPED"
)

// Clock is the single countdown timer bound to one active session. It
// decrements once per second and invokes the expiry callback exactly once on
// reaching zero.
//
// Start unconditionally stops any previously running timer before starting a
// new one, so at most one ticking goroutine is ever alive per Clock. The
// generation counter guards against a stale tick that was already scheduled
// when the timer was replaced; such ticks are discarded, never applied.
type Clock struct {
	mu        sync.Mutex
	state     ClockState
	remaining int
	gen       uint64
	interval  time.Duration
}

// NewClock returns an idle clock with one-second tick granularity.
func NewClock() *Clock {
	return &Clock{state: ClockIdle, interval: time.Second}
}

// Start begins a countdown of durationSeconds. Any running timer is stopped
// first. onExpire is invoked exactly once when the countdown reaches zero;
// it runs on the timer goroutine and any panic from it propagates — expiry
// handling errors belong to the caller, not the clock.
func (c *Clock) Start(durationSeconds int, onExpire func()) {
	c.mu.Lock()
	c.stopLocked()
	if durationSeconds < 0 {
		durationSeconds = 0
	}
	c.gen++
	c.state = ClockRunning
	c.remaining = durationSeconds
	gen := c.gen
	interval := c.interval
	c.mu.Unlock()

	go c.run(gen, interval, onExpire)
}

func (c *Clock) run(gen uint64, interval time.Duration, onExpire func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		if c.gen != gen || c.state != ClockRunning {
			// Stale tick from a replaced or stopped timer.
			c.mu.Unlock()
			return
		}
		c.remaining--
		if c.remaining > 0 {
			c.mu.Unlock()
			continue
		}
		c.remaining = 0
		c.state = ClockExpired
		c.mu.Unlock()

		if onExpire != nil {
			onExpire()
		}
		return
	}
}

// Stop halts the countdown. Stopping an already-stopped, expired, or idle
// clock is a no-op.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Clock) stopLocked() {
	// Bumping the generation orphans any live timer goroutine; its next tick
	// sees the mismatch and exits without touching state.
	c.gen++
	if c.state == ClockRunning {
		c.state = ClockStopped
	}
}

// Remaining returns the current remaining seconds. Never negative.
func (c *Clock) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remaining < 0 {
		return 0
	}
	return c.remaining
}

// State returns the current clock state.
func (c *Clock) State() ClockState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
