package snowflake

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"
)

const (
	// DefaultEpoch is 2023-10-23T16:00:00Z in Unix milliseconds.
	DefaultEpoch int64 = 1698076800000
	// DefaultSpinInterval is the pause between clock reads while waiting for
	// the next millisecond.
	DefaultSpinInterval = time.Millisecond / 8
)

// Config fully describes a Generator. Zero values of Layout, Clock,
// SpinInterval and Observer select their defaults. A zero MaxWait waits for
// the clock indefinitely.
type Config struct {
	WorkerID     int64
	DatacenterID int64
	// Epoch is a fixed instant in Unix milliseconds. It must not be derived
	// from the current time, or ids stop being comparable across restarts.
	Epoch        int64
	Layout       Layout
	Clock        Clock
	SpinInterval time.Duration
	MaxWait      time.Duration
	Observer     Observer
}

// Option adjusts a Config built by New.
type Option func(*Config)

// WithLayout selects non-default field widths.
func WithLayout(l Layout) Option {
	return func(c *Config) { c.Layout = l }
}

// WithClock replaces the system clock.
func WithClock(clock Clock) Option {
	return func(c *Config) { c.Clock = clock }
}

// WithSpinInterval sets the pause between clock reads after the sequence for
// a millisecond runs out.
func WithSpinInterval(d time.Duration) Option {
	return func(c *Config) { c.SpinInterval = d }
}

// WithMaxWait bounds how long Generate waits for the clock to advance after
// the sequence runs out. Exceeding it yields a *TimeoutError.
func WithMaxWait(d time.Duration) Option {
	return func(c *Config) { c.MaxWait = d }
}

// WithObserver installs an event observer, e.g. for metrics.
func WithObserver(o Observer) Option {
	return func(c *Config) { c.Observer = o }
}

// Validate checks ranges and fills defaults in place.
func (c *Config) Validate() error {
	if c.Layout == (Layout{}) {
		c.Layout = DefaultLayout
	}
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if c.WorkerID < 0 || c.WorkerID > c.Layout.MaxWorker() {
		return newConfigError("WorkerID", strconv.FormatInt(c.WorkerID, 10),
			fmt.Sprintf("must be between 0 and %d (%d bits)", c.Layout.MaxWorker(), c.Layout.WorkerBits))
	}
	if c.DatacenterID < 0 || c.DatacenterID > c.Layout.MaxDatacenter() {
		return newConfigError("DatacenterID", strconv.FormatInt(c.DatacenterID, 10),
			fmt.Sprintf("must be between 0 and %d (%d bits)", c.Layout.MaxDatacenter(), c.Layout.DatacenterBits))
	}
	if c.Epoch < 0 {
		return newConfigError("Epoch", strconv.FormatInt(c.Epoch, 10), "must not be negative")
	}
	if c.SpinInterval < 0 {
		return newConfigError("SpinInterval", c.SpinInterval.String(), "must not be negative")
	}
	if c.SpinInterval == 0 {
		c.SpinInterval = DefaultSpinInterval
	}
	if c.MaxWait < 0 {
		return newConfigError("MaxWait", c.MaxWait.String(), "must not be negative")
	}
	if c.Clock == nil {
		c.Clock = SystemClock{}
	}
	if c.Observer == nil {
		c.Observer = NoopObserver{}
	}
	return nil
}

// Parts are the decoded fields of an id.
type Parts struct {
	// Timestamp is in Unix milliseconds, epoch already added back.
	Timestamp    int64 `json:"timestamp"`
	DatacenterID int64 `json:"datacenterId"`
	WorkerID     int64 `json:"workerId"`
	Sequence     int64 `json:"sequence"`
}

// Time returns Timestamp as a time.Time.
func (p Parts) Time() time.Time { return time.UnixMilli(p.Timestamp) }

// State is a point-in-time copy of the generator bookkeeping.
type State struct {
	LastTimestamp int64
	Sequence      int64
}

// Generator mints ids for one (datacenter, worker) pair. It is safe for
// concurrent use; ids from one Generator strictly increase.
type Generator struct {
	cfg Config

	mu       sync.Mutex
	lastMs   int64
	sequence int64
}

// New creates a Generator with the default layout unless overridden by opts.
func New(workerID, datacenterID, epoch int64, opts ...Option) (*Generator, error) {
	cfg := Config{WorkerID: workerID, DatacenterID: datacenterID, Epoch: epoch}
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Generator from a complete Config.
func NewWithConfig(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, lastMs: -1}, nil
}

// Generate returns the next id. It fails with *ClockRegressionError when the
// clock reads behind the last issued timestamp, and with *TimeoutError when
// MaxWait is set and exceeded.
func (g *Generator) Generate() (int64, error) {
	return g.GenerateContext(context.Background())
}

// GenerateContext is Generate with a context that can abort the wait for the
// next millisecond.
func (g *Generator) GenerateContext(ctx context.Context) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.next(ctx)
}

// GenerateN returns n ids. The lock is taken per id, so concurrent callers
// interleave with a batch. The first error aborts the batch.
func (g *Generator) GenerateN(ctx context.Context, n int) ([]int64, error) {
	if n < 0 {
		return nil, errors.New("snowflake: negative id count")
	}
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		id, err := g.GenerateContext(ctx)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// next runs with g.mu held. State is only written once an id is certain.
func (g *Generator) next(ctx context.Context) (int64, error) {
	now := g.cfg.Clock.NowMillis()
	if now < g.lastMs {
		return 0, g.regressed(now)
	}

	var seq int64
	if now == g.lastMs {
		seq = (g.sequence + 1) & g.cfg.Layout.MaxSequence()
		if seq == 0 {
			var err error
			if now, err = g.awaitNextMillis(ctx); err != nil {
				return 0, err
			}
		}
	}

	delta := now - g.cfg.Epoch
	if delta < 0 || delta > g.cfg.Layout.MaxTimestamp() {
		return 0, newConfigError("Epoch", strconv.FormatInt(g.cfg.Epoch, 10),
			fmt.Sprintf("clock reading %d is outside the %d-bit timestamp range", now, g.cfg.Layout.TimestampBits))
	}

	g.lastMs = now
	g.sequence = seq
	g.cfg.Observer.Generated()
	return g.cfg.Layout.Pack(delta, g.cfg.DatacenterID, g.cfg.WorkerID, seq), nil
}

// awaitNextMillis polls the clock until it passes g.lastMs.
func (g *Generator) awaitNextMillis(ctx context.Context) (int64, error) {
	start := time.Now()
	for {
		now := g.cfg.Clock.NowMillis()
		if now > g.lastMs {
			g.cfg.Observer.SequenceExhausted(time.Since(start))
			return now, nil
		}
		if now < g.lastMs {
			return 0, g.regressed(now)
		}
		waited := time.Since(start)
		if g.cfg.MaxWait > 0 && waited >= g.cfg.MaxWait {
			g.cfg.Observer.WaitTimedOut(waited)
			return 0, &TimeoutError{Waited: waited, LastTimestamp: g.lastMs}
		}
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("snowflake: waiting for next millisecond: %w", err)
		}
		time.Sleep(g.cfg.SpinInterval)
	}
}

func (g *Generator) regressed(now int64) error {
	drift := g.lastMs - now
	g.cfg.Observer.ClockRegressed(drift)
	return &ClockRegressionError{DriftMillis: drift, LastTimestamp: g.lastMs, Current: now}
}

// Decode splits an id produced with this generator's layout and epoch.
func (g *Generator) Decode(id int64) Parts {
	return g.cfg.Layout.Decode(id, g.cfg.Epoch)
}

// Snapshot returns the current bookkeeping. LastTimestamp is -1 before the
// first id.
func (g *Generator) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return State{LastTimestamp: g.lastMs, Sequence: g.sequence}
}

func (g *Generator) WorkerID() int64     { return g.cfg.WorkerID }
func (g *Generator) DatacenterID() int64 { return g.cfg.DatacenterID }
func (g *Generator) Epoch() int64        { return g.cfg.Epoch }
func (g *Generator) Layout() Layout      { return g.cfg.Layout }
func (g *Generator) Clock() Clock        { return g.cfg.Clock }
