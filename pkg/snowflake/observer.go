package snowflake

import "time"

// Observer receives generator events. Calls happen inside the critical
// section, so implementations must be fast and must not call back into the
// generator.
type Observer interface {
	Generated()
	ClockRegressed(driftMillis int64)
	SequenceExhausted(waited time.Duration)
	WaitTimedOut(waited time.Duration)
}

// NoopObserver is used when no observer is configured.
type NoopObserver struct{}

func (NoopObserver) Generated()                      {}
func (NoopObserver) ClockRegressed(int64)            {}
func (NoopObserver) SequenceExhausted(time.Duration) {}
func (NoopObserver) WaitTimedOut(time.Duration)      {}
