// Package journeytest provides deterministic test doubles for the journey
// engine: a manual clock, a fixed randomness source and a recording listener.
package journeytest

import (
	"sort"
	"sync"
	"time"

	"coverbot/journey"
)

// Clock is a manual clock. Timers fire only when the test advances it, which
// makes every pacing delay in the engine deterministic.
type Clock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

// NewClock creates a manual clock starting at an arbitrary fixed instant.
func NewClock() *Clock {
	return &Clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

type fakeTimer struct {
	at      time.Time
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// AfterFunc registers a callback to fire when the clock passes now+d.
func (c *Clock) AfterFunc(d time.Duration, fn func()) journey.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{at: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward, firing due timers in chronological order.
// Callbacks may schedule further timers; any that fall within the advanced
// window fire too.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		t := c.popDue(target)
		if t == nil {
			break
		}
		t.fn()
	}

	c.mu.Lock()
	c.now = target
	c.mu.Unlock()
}

// Drain keeps advancing in large increments until no pending timers remain.
// Convenient for driving a scripted flow to its next interactive point.
func (c *Clock) Drain() {
	for i := 0; i < 100; i++ {
		c.mu.Lock()
		pending := false
		for _, t := range c.timers {
			if !t.stopped {
				pending = true
				break
			}
		}
		c.mu.Unlock()
		if !pending {
			return
		}
		c.Advance(10 * time.Second)
	}
}

func (c *Clock) popDue(target time.Time) *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	sort.SliceStable(c.timers, func(i, j int) bool { return c.timers[i].at.Before(c.timers[j].at) })
	for i, t := range c.timers {
		if t.stopped {
			continue
		}
		if t.at.After(target) {
			break
		}
		t.stopped = true
		if t.at.After(c.now) {
			c.now = t.at
		}
		c.timers = append(c.timers[:i], c.timers[i+1:]...)
		return t
	}
	return nil
}
