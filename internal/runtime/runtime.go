package runtime

import (
	"context"
	"fmt"

	cfgpkg "github.com/lyle8341/flake/internal/config"
	"github.com/lyle8341/flake/internal/metrics"
	logpkg "github.com/lyle8341/flake/pkg/log"
	"github.com/lyle8341/flake/pkg/snowflake"
)

// Options for building the Runtime.
type Options struct {
	Config cfgpkg.Config
	// Clock overrides the system clock; tests use a *snowflake.ManualClock.
	Clock  snowflake.Clock
	Logger logpkg.Logger
}

// Runtime owns the generator and its metrics for a single instance.
type Runtime struct {
	config  cfgpkg.Config
	gen     *snowflake.Generator
	metrics *metrics.Metrics
	logger  logpkg.Logger
}

// Open validates the generator settings and builds the Runtime.
func Open(opts Options) (*Runtime, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewLogger(logpkg.WithOutput(logpkg.NullOutput{}))
	}
	m := metrics.New()
	sc := opts.Config.SnowflakeConfig()
	sc.Clock = opts.Clock
	sc.Observer = m
	gen, err := snowflake.NewWithConfig(sc)
	if err != nil {
		return nil, err
	}
	m.SetIdentity(gen.WorkerID(), gen.DatacenterID(), gen.Epoch())
	logger.WithComponent("runtime").Info("generator ready",
		logpkg.Int64("worker_id", gen.WorkerID()),
		logpkg.Int64("datacenter_id", gen.DatacenterID()),
		logpkg.Int64("epoch_ms", gen.Epoch()),
		logpkg.Any("layout", gen.Layout()))
	return &Runtime{config: opts.Config, gen: gen, metrics: m, logger: logger}, nil
}

// Close releases resources. The generator holds none today.
func (r *Runtime) Close() error { return nil }

// CheckHealth fails when the clock currently reads behind the last issued
// timestamp, i.e. when Generate would return a regression error.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.gen == nil {
		return fmt.Errorf("generator not initialized")
	}
	last := r.gen.Snapshot().LastTimestamp
	now := r.gen.Clock().NowMillis()
	if last >= 0 && now < last {
		return &snowflake.ClockRegressionError{DriftMillis: last - now, LastTimestamp: last, Current: now}
	}
	return nil
}

// Generator returns the instance generator.
func (r *Runtime) Generator() *snowflake.Generator { return r.gen }

// Metrics returns the Prometheus collectors fed by the generator.
func (r *Runtime) Metrics() *metrics.Metrics { return r.metrics }

// Logger returns the root logger.
func (r *Runtime) Logger() logpkg.Logger { return r.logger }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }
