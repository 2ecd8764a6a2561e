package snowflake

import (
	"sync"
	"time"
)

// Clock supplies wall-clock time in milliseconds since the Unix epoch.
type Clock interface {
	NowMillis() int64
}

// SystemClock reads the host clock.
type SystemClock struct{}

// NowMillis returns time.Now in Unix milliseconds.
func (SystemClock) NowMillis() int64 { return time.Now().UnixMilli() }

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() int64

// NowMillis calls f.
func (f ClockFunc) NowMillis() int64 { return f() }

// ManualClock is a Clock whose reading only changes when told to. It is safe
// for concurrent use, so a test may move it from another goroutine while a
// generator is waiting on it.
type ManualClock struct {
	mu   sync.Mutex
	now  int64
	step int64
}

// NewManualClock returns a clock fixed at ms.
func NewManualClock(ms int64) *ManualClock {
	return &ManualClock{now: ms}
}

// NowMillis returns the current reading, then advances by the configured step.
func (c *ManualClock) NowMillis() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now += c.step
	return now
}

// Set moves the clock to ms, backwards or forwards.
func (c *ManualClock) Set(ms int64) {
	c.mu.Lock()
	c.now = ms
	c.mu.Unlock()
}

// Advance moves the clock forward by d, truncated to milliseconds.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d.Milliseconds()
	c.mu.Unlock()
}

// SetStep makes every read advance the clock by ms afterwards. Zero keeps
// the clock fixed.
func (c *ManualClock) SetStep(ms int64) {
	c.mu.Lock()
	c.step = ms
	c.mu.Unlock()
}
