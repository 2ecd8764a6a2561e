package idsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lyle8341/flake/internal/runtime"
	logpkg "github.com/lyle8341/flake/pkg/log"
	"github.com/lyle8341/flake/pkg/snowflake"
)

// Service hands out and explains ids for one generator.
type Service struct {
	gen    *snowflake.Generator
	logger logpkg.Logger
	now    func() time.Time
}

// New returns a Service backed by the runtime's generator and logger.
func New(rt *runtime.Runtime) *Service {
	return NewWithGenerator(rt.Generator(), rt.Logger())
}

// NewWithGenerator builds a Service around gen. The CLI uses it with a
// generator that is only ever asked to decode.
func NewWithGenerator(gen *snowflake.Generator, logger logpkg.Logger) *Service {
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	return &Service{gen: gen, logger: logger.WithComponent("ids"), now: time.Now}
}

// Generate returns count ids in increasing order.
func (s *Service) Generate(ctx context.Context, count int) ([]int64, error) {
	if err := checkCount(count); err != nil {
		return nil, err
	}
	ids, err := s.gen.GenerateN(ctx, count)
	if err != nil {
		s.logFailure(err, count)
		return nil, err
	}
	return ids, nil
}

// Stream sends count ids to sink, stopping at the first error.
func (s *Service) Stream(ctx context.Context, count int, sink Sink) error {
	if err := checkCount(count); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		id, err := s.gen.GenerateContext(ctx)
		if err != nil {
			s.logFailure(err, count-i)
			return err
		}
		if err := sink.Send(id); err != nil {
			return err
		}
	}
	return nil
}

// Decode splits id using the generator's layout and epoch. Negative ids and
// ids with bits above the layout's width are rejected.
func (s *Service) Decode(id int64) (Decoded, error) {
	l := s.gen.Layout()
	if id < 0 || (l.TotalBits() < 63 && id>>l.TotalBits() != 0) {
		return Decoded{}, fmt.Errorf("%w: id %d does not fit a %d-bit layout", ErrInvalidArgument, id, l.TotalBits())
	}
	return newDecoded(id, s.gen.Decode(id)), nil
}

// Inspect decodes ids and keeps those matching the CEL filter. An empty
// filter keeps everything.
func (s *Service) Inspect(ctx context.Context, ids []int64, filter string) ([]Decoded, error) {
	f, err := newCELFilter(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: filter: %v", ErrInvalidArgument, err)
	}
	nowMs := s.now().UnixMilli()
	out := make([]Decoded, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d, err := s.Decode(id)
		if err != nil {
			return nil, err
		}
		if f.Eval(d, nowMs) {
			out = append(out, d)
		}
	}
	return out, nil
}

// Health reports the generator identity as a short string.
func (s *Service) Health() string {
	return fmt.Sprintf("ok worker=%d datacenter=%d", s.gen.WorkerID(), s.gen.DatacenterID())
}

func checkCount(count int) error {
	if count < 1 || count > MaxBatch {
		return fmt.Errorf("%w: count must be between 1 and %d, got %d", ErrInvalidArgument, MaxBatch, count)
	}
	return nil
}

func (s *Service) logFailure(err error, pending int) {
	var (
		regression *snowflake.ClockRegressionError
		timeout    *snowflake.TimeoutError
		cfgErr     *snowflake.ConfigError
	)
	switch {
	case errors.As(err, &regression):
		s.logger.Warn("clock moved backwards",
			logpkg.Int64("drift_ms", regression.DriftMillis),
			logpkg.Int64("last_ms", regression.LastTimestamp),
			logpkg.Int("pending", pending))
	case errors.As(err, &timeout):
		s.logger.Error("timed out waiting for next millisecond",
			logpkg.Dur("waited", timeout.Waited),
			logpkg.Int("pending", pending))
	case errors.As(err, &cfgErr):
		s.logger.Error("generator cannot represent current time", logpkg.Err(err))
	default:
		s.logger.Debug("generate aborted", logpkg.Err(err))
	}
}
