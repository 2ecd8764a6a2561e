package snowflake

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidConfig matches every *ConfigError.
	ErrInvalidConfig = errors.New("snowflake: invalid configuration")
	// ErrClockRegression matches every *ClockRegressionError.
	ErrClockRegression = errors.New("snowflake: clock moved backwards")
	// ErrWaitTimeout matches every *TimeoutError.
	ErrWaitTimeout = errors.New("snowflake: timed out waiting for next millisecond")
)

// ConfigError reports a configuration value the generator cannot work with.
// It is not retryable.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func newConfigError(field, value, reason string) *ConfigError {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("snowflake: invalid %s=%s: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// ClockRegressionError is returned when the clock reads earlier than the last
// timestamp handed out. The generator state is left untouched.
type ClockRegressionError struct {
	DriftMillis   int64
	LastTimestamp int64
	Current       int64
}

func (e *ClockRegressionError) Error() string {
	return fmt.Sprintf("snowflake: clock moved backwards by %dms (last=%d now=%d)",
		e.DriftMillis, e.LastTimestamp, e.Current)
}

func (e *ClockRegressionError) Is(target error) bool { return target == ErrClockRegression }

// TimeoutError is returned when the sequence for a millisecond is exhausted
// and the clock did not advance within the configured MaxWait.
type TimeoutError struct {
	Waited        time.Duration
	LastTimestamp int64
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("snowflake: clock stuck at %d for %s after sequence exhaustion",
		e.LastTimestamp, e.Waited)
}

func (e *TimeoutError) Is(target error) bool { return target == ErrWaitTimeout }
