package testutil

import (
	"sync"
	"time"
)

// Epoch is the first instant a SteppingClock reports.
var Epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// SteppingClock is a wall clock for tests that advances by a fixed step
// on every read.
//
// Handing Now to a search deadline makes timeouts deterministic: with a
// step of one second and a budget of n seconds, the deadline expires on
// the n-th check regardless of machine speed.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SteppingClock struct {
	mu    sync.Mutex
	now   time.Time
	step  time.Duration
	reads int
}

// NewSteppingClock creates a clock at Epoch that advances by step.
func NewSteppingClock(step time.Duration) *SteppingClock {
	return &SteppingClock{now: Epoch, step: step}
}

// Now advances the clock by one step and returns the new time.
// The first call returns Epoch+step.
func (c *SteppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads++
	c.now = c.now.Add(c.step)
	return c.now
}

// Reads returns how many times Now has been called.
func (c *SteppingClock) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

// Reset rewinds the clock to Epoch.
func (c *SteppingClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = Epoch
	c.reads = 0
}
