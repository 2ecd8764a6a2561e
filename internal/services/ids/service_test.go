package idsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	logpkg "github.com/lyle8341/flake/pkg/log"
	"github.com/lyle8341/flake/pkg/snowflake"
)

const testNow = snowflake.DefaultEpoch + 10_000

func newTestService(t *testing.T, worker int64, clock snowflake.Clock) *Service {
	t.Helper()
	gen, err := snowflake.New(worker, 2, snowflake.DefaultEpoch, snowflake.WithClock(clock))
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	svc := NewWithGenerator(gen, logpkg.NewLogger(logpkg.WithOutput(logpkg.NullOutput{})))
	svc.now = func() time.Time { return time.UnixMilli(testNow) }
	return svc
}

func TestGenerateBatch(t *testing.T) {
	svc := newTestService(t, 1, snowflake.NewManualClock(testNow))
	ids, err := svc.Generate(context.Background(), 5)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(ids) != 5 {
		t.Fatalf("len = %d", len(ids))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] <= ids[i-1] {
			t.Fatalf("not increasing at %d: %d <= %d", i, ids[i], ids[i-1])
		}
	}
}

func TestGenerateRejectsBadCount(t *testing.T) {
	svc := newTestService(t, 1, snowflake.NewManualClock(testNow))
	for _, n := range []int{0, -1, MaxBatch + 1} {
		if _, err := svc.Generate(context.Background(), n); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("count %d: expected ErrInvalidArgument, got %v", n, err)
		}
	}
}

func TestGeneratePropagatesRegression(t *testing.T) {
	clock := snowflake.NewManualClock(testNow)
	svc := newTestService(t, 1, clock)
	if _, err := svc.Generate(context.Background(), 1); err != nil {
		t.Fatalf("generate: %v", err)
	}
	clock.Set(testNow - 3)
	_, err := svc.Generate(context.Background(), 1)
	if !errors.Is(err, snowflake.ErrClockRegression) {
		t.Fatalf("expected regression, got %v", err)
	}
}

func TestStream(t *testing.T) {
	svc := newTestService(t, 1, snowflake.NewManualClock(testNow))
	var got []int64
	err := svc.Stream(context.Background(), 3, SinkFunc(func(id int64) error {
		got = append(got, id)
		return nil
	}))
	if err != nil || len(got) != 3 {
		t.Fatalf("stream: got %d ids, err %v", len(got), err)
	}

	stop := errors.New("client gone")
	calls := 0
	err = svc.Stream(context.Background(), 10, SinkFunc(func(int64) error {
		calls++
		return stop
	}))
	if !errors.Is(err, stop) || calls != 1 {
		t.Fatalf("sink error: calls=%d err=%v", calls, err)
	}
}

func TestDecode(t *testing.T) {
	svc := newTestService(t, 9, snowflake.NewManualClock(testNow))
	id := int64(123)<<22 | int64(20)<<17 | int64(9)<<12
	d, err := svc.Decode(id)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Timestamp != snowflake.DefaultEpoch+123 || d.DatacenterID != 20 || d.WorkerID != 9 || d.Sequence != 0 {
		t.Fatalf("decoded = %+v", d)
	}
	if !d.Time.Equal(time.UnixMilli(snowflake.DefaultEpoch + 123)) {
		t.Fatalf("time = %s", d.Time)
	}
	if _, err := svc.Decode(-1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("negative id: %v", err)
	}
}

func TestDecodeRejectsWideIDForNarrowLayout(t *testing.T) {
	layout := snowflake.Layout{TimestampBits: 31, DatacenterBits: 0, WorkerBits: 4, SequenceBits: 8}
	gen, err := snowflake.New(1, 0, snowflake.DefaultEpoch, snowflake.WithLayout(layout))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	svc := NewWithGenerator(gen, logpkg.NewLogger(logpkg.WithOutput(logpkg.NullOutput{})))
	if _, err := svc.Decode(1 << 43); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.Decode(1<<43 - 1); err != nil {
		t.Fatalf("max id: %v", err)
	}
}

func TestInspectFilters(t *testing.T) {
	layout := snowflake.DefaultLayout
	old := layout.Pack(100, 2, 3, 0)
	recent := layout.Pack(9_990, 2, 3, 7)
	other := layout.Pack(9_995, 2, 4, 0)
	ids := []int64{old, recent, other}
	svc := newTestService(t, 0, snowflake.NewManualClock(testNow))

	tests := []struct {
		name   string
		filter string
		want   []int64
	}{
		{name: "empty keeps all", filter: "", want: ids},
		{name: "by worker", filter: "worker == 3", want: []int64{old, recent}},
		{name: "by age", filter: "age_ms < 60", want: []int64{recent, other}},
		{name: "combined", filter: "worker == 3 && sequence > 0 && ts_ms <= now_ms", want: []int64{recent}},
		{name: "datacenter miss", filter: "datacenter == 1", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Inspect(context.Background(), ids, tt.filter)
			if err != nil {
				t.Fatalf("inspect: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d matches, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Fatalf("match %d = %d, want %d", i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}

func TestInspectRejectsBadFilter(t *testing.T) {
	svc := newTestService(t, 0, snowflake.NewManualClock(testNow))
	for _, expr := range []string{"worker ==", "worker + 1", "unknown_var > 1"} {
		if _, err := svc.Inspect(context.Background(), []int64{1}, expr); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("filter %q: expected ErrInvalidArgument, got %v", expr, err)
		}
	}
}
