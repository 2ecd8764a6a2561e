package snowflake

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

const testEpoch int64 = 1698076800000

func TestWorkedExample(t *testing.T) {
	clock := NewManualClock(1698076800123)
	g, err := New(9, 20, testEpoch, WithClock(clock))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	id, err := g.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := int64(123<<22 | 20<<17 | 9<<12 | 0)
	if id != want {
		t.Fatalf("id = %d, want %d", id, want)
	}
}

func TestMonotonicAcrossMilliseconds(t *testing.T) {
	clock := NewManualClock(testEpoch + 1000)
	g, err := New(1, 1, testEpoch, WithClock(clock))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	var prevID int64 = -1
	var prev Parts
	for i := 0; i < 5000; i++ {
		if i%7 == 0 {
			clock.Advance(time.Millisecond)
		}
		id, err := g.Generate()
		if err != nil {
			t.Fatalf("generate %d: %v", i, err)
		}
		p := g.Decode(id)
		if id <= prevID {
			t.Fatalf("#%d: id %d not greater than %d", i, id, prevID)
		}
		if i > 0 {
			if p.Timestamp < prev.Timestamp {
				t.Fatalf("#%d: timestamp went backwards", i)
			}
			if p.Timestamp == prev.Timestamp && p.Sequence <= prev.Sequence {
				t.Fatalf("#%d: sequence did not increase within ms", i)
			}
		}
		prevID, prev = id, p
	}
}

func TestDecodeRoundTripLayouts(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		worker int64
		dc     int64
	}{
		{name: "default max", layout: DefaultLayout, worker: 31, dc: 31},
		{name: "default zero", layout: DefaultLayout, worker: 0, dc: 0},
		{name: "wide worker", layout: Layout{TimestampBits: 39, DatacenterBits: 3, WorkerBits: 9, SequenceBits: 12}, worker: 511, dc: 5},
		{name: "no datacenter", layout: Layout{TimestampBits: 41, WorkerBits: 10, SequenceBits: 12}, worker: 1000, dc: 0},
		{name: "short sequence", layout: Layout{TimestampBits: 50, DatacenterBits: 4, WorkerBits: 4, SequenceBits: 5}, worker: 7, dc: 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := testEpoch + 987654
			g, err := New(tt.worker, tt.dc, testEpoch, WithLayout(tt.layout), WithClock(NewManualClock(now)))
			if err != nil {
				t.Fatalf("new: %v", err)
			}
			for i := 0; i < 3; i++ {
				id, err := g.Generate()
				if err != nil {
					t.Fatalf("generate: %v", err)
				}
				p := g.Decode(id)
				if p.WorkerID != tt.worker || p.DatacenterID != tt.dc {
					t.Fatalf("decoded worker=%d dc=%d, want %d/%d", p.WorkerID, p.DatacenterID, tt.worker, tt.dc)
				}
				if p.Timestamp != now {
					t.Fatalf("timestamp = %d, want %d", p.Timestamp, now)
				}
				if p.Sequence != int64(i) {
					t.Fatalf("sequence = %d, want %d", p.Sequence, i)
				}
				if repacked := tt.layout.Pack(p.Timestamp-testEpoch, p.DatacenterID, p.WorkerID, p.Sequence); repacked != id {
					t.Fatalf("repack = %d, want %d", repacked, id)
				}
			}
		})
	}
}

func TestConcurrentUnique(t *testing.T) {
	g, err := New(3, 4, testEpoch)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	const workers, perWorker = 16, 5000
	out := make(chan int64, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id, err := g.Generate()
				if err != nil {
					t.Errorf("generate: %v", err)
					return
				}
				out <- id
			}
		}()
	}
	wg.Wait()
	close(out)
	seen := make(map[int64]struct{}, workers*perWorker)
	for id := range out {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = struct{}{}
	}
	if len(seen) != workers*perWorker {
		t.Fatalf("got %d ids, want %d", len(seen), workers*perWorker)
	}
}

func TestSequenceWraparoundWaitsNextMs(t *testing.T) {
	const fixed = testEpoch + 5000
	clock := NewManualClock(fixed)
	layout := Layout{TimestampBits: 41, DatacenterBits: 5, WorkerBits: 5, SequenceBits: 4}
	g, err := New(1, 2, testEpoch, WithLayout(layout), WithClock(clock), WithSpinInterval(time.Microsecond))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	maxSeq := layout.MaxSequence()
	for i := int64(0); i <= maxSeq; i++ {
		id, err := g.Generate()
		if err != nil {
			t.Fatalf("generate %d: %v", i, err)
		}
		if p := g.Decode(id); p.Timestamp != fixed || p.Sequence != i {
			t.Fatalf("#%d: got ts=%d seq=%d", i, p.Timestamp, p.Sequence)
		}
	}

	// The next call exhausts the millisecond; let each read move time on.
	clock.SetStep(1)
	id, err := g.Generate()
	if err != nil {
		t.Fatalf("generate after wrap: %v", err)
	}
	p := g.Decode(id)
	if p.Timestamp <= fixed {
		t.Fatalf("timestamp %d not past %d", p.Timestamp, fixed)
	}
	if p.Sequence != 0 {
		t.Fatalf("sequence = %d, want 0", p.Sequence)
	}
}

func TestSequenceWraparoundWaitsForRealAdvance(t *testing.T) {
	const fixed = testEpoch + 2000
	clock := NewManualClock(fixed)
	layout := Layout{TimestampBits: 41, SequenceBits: 2}
	g, err := New(0, 0, testEpoch, WithLayout(layout), WithClock(clock))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for i := 0; i < 4; i++ {
		if _, err := g.Generate(); err != nil {
			t.Fatalf("generate: %v", err)
		}
	}

	done := make(chan int64, 1)
	go func() {
		id, err := g.Generate()
		if err != nil {
			t.Errorf("generate: %v", err)
		}
		done <- id
	}()
	time.AfterFunc(10*time.Millisecond, func() { clock.Set(fixed + 1) })

	select {
	case id := <-done:
		if p := g.Decode(id); p.Timestamp != fixed+1 || p.Sequence != 0 {
			t.Fatalf("got ts=%d seq=%d", p.Timestamp, p.Sequence)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for overflow handling")
	}
}

func TestClockRegression(t *testing.T) {
	const now = testEpoch + 10000
	clock := NewManualClock(now)
	g, err := New(1, 1, testEpoch, WithClock(clock))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := g.Generate(); err != nil {
		t.Fatalf("generate: %v", err)
	}
	clock.Set(now - 5)
	id, err := g.Generate()
	if err == nil {
		t.Fatalf("expected regression error, got id %d", id)
	}
	var rerr *ClockRegressionError
	if !errors.As(err, &rerr) {
		t.Fatalf("error type %T", err)
	}
	if rerr.DriftMillis != 5 {
		t.Fatalf("drift = %d, want 5", rerr.DriftMillis)
	}
	if !errors.Is(err, ErrClockRegression) {
		t.Fatalf("errors.Is(ErrClockRegression) = false")
	}
	if s := g.Snapshot(); s.LastTimestamp != now || s.Sequence != 0 {
		t.Fatalf("state changed: %+v", s)
	}

	// Once the clock catches up, generation resumes in the same millisecond.
	clock.Set(now)
	id, err = g.Generate()
	if err != nil {
		t.Fatalf("generate after recovery: %v", err)
	}
	if p := g.Decode(id); p.Sequence != 1 {
		t.Fatalf("sequence = %d, want 1", p.Sequence)
	}
}

func TestWaitTimeout(t *testing.T) {
	clock := NewManualClock(testEpoch + 1)
	layout := Layout{TimestampBits: 41, SequenceBits: 1}
	g, err := New(0, 0, testEpoch, WithLayout(layout), WithClock(clock),
		WithSpinInterval(100*time.Microsecond), WithMaxWait(5*time.Millisecond))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := g.Generate(); err != nil {
			t.Fatalf("generate: %v", err)
		}
	}
	before := g.Snapshot()
	_, err = g.Generate()
	var terr *TimeoutError
	if !errors.As(err, &terr) || !errors.Is(err, ErrWaitTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	if terr.Waited < 5*time.Millisecond {
		t.Fatalf("waited %s", terr.Waited)
	}
	if after := g.Snapshot(); after != before {
		t.Fatalf("state changed: %+v -> %+v", before, after)
	}
}

func TestGenerateContextCancelledDuringWait(t *testing.T) {
	clock := NewManualClock(testEpoch + 1)
	g, err := New(0, 0, testEpoch, WithLayout(Layout{TimestampBits: 41, SequenceBits: 1}), WithClock(clock))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := g.Generate(); err != nil {
			t.Fatalf("generate: %v", err)
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	if _, err := g.GenerateContext(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestGenerateN(t *testing.T) {
	g, err := New(2, 2, testEpoch)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ids, err := g.GenerateN(context.Background(), 100)
	if err != nil {
		t.Fatalf("generate n: %v", err)
	}
	if len(ids) != 100 {
		t.Fatalf("len = %d", len(ids))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] <= ids[i-1] {
			t.Fatalf("ids not increasing at %d", i)
		}
	}
	if _, err := g.GenerateN(context.Background(), -1); err == nil {
		t.Fatalf("expected error for negative count")
	}
}

func TestEpochOutOfRange(t *testing.T) {
	// Epoch in the future relative to the clock.
	g, err := New(0, 0, testEpoch, WithClock(NewManualClock(testEpoch-1)))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := g.Generate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
	if s := g.Snapshot(); s.LastTimestamp != -1 {
		t.Fatalf("state changed: %+v", s)
	}

	// Timestamp field too narrow for the distance from the epoch.
	g, err = New(0, 0, testEpoch, WithLayout(Layout{TimestampBits: 4, SequenceBits: 12}), WithClock(NewManualClock(testEpoch+16)))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	var cerr *ConfigError
	if _, err := g.Generate(); !errors.As(err, &cerr) || cerr.Field != "Epoch" {
		t.Fatalf("expected Epoch config error, got %v", err)
	}
}

type countingObserver struct {
	generated atomic.Int64
	regressed atomic.Int64
	full      atomic.Int64
}

func (o *countingObserver) Generated()                      { o.generated.Add(1) }
func (o *countingObserver) ClockRegressed(int64)            { o.regressed.Add(1) }
func (o *countingObserver) SequenceExhausted(time.Duration) { o.full.Add(1) }
func (o *countingObserver) WaitTimedOut(time.Duration)      {}

func TestObserverEvents(t *testing.T) {
	clock := NewManualClock(testEpoch + 100)
	obs := &countingObserver{}
	g, err := New(0, 0, testEpoch, WithLayout(Layout{TimestampBits: 41, SequenceBits: 1}), WithClock(clock), WithObserver(obs))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := g.Generate(); err != nil {
			t.Fatalf("generate: %v", err)
		}
	}
	clock.SetStep(1)
	if _, err := g.Generate(); err != nil {
		t.Fatalf("generate: %v", err)
	}
	clock.SetStep(0)
	clock.Set(testEpoch + 50)
	_, _ = g.Generate()

	if obs.generated.Load() != 3 || obs.full.Load() != 1 || obs.regressed.Load() != 1 {
		t.Fatalf("events: generated=%d full=%d regressed=%d", obs.generated.Load(), obs.full.Load(), obs.regressed.Load())
	}
}

func TestIndependentGeneratorsDoNotShareState(t *testing.T) {
	clock := NewManualClock(testEpoch + 42)
	a, _ := New(1, 0, testEpoch, WithClock(clock))
	b, _ := New(2, 0, testEpoch, WithClock(clock))
	for i := 0; i < 3; i++ {
		if _, err := a.Generate(); err != nil {
			t.Fatalf("a: %v", err)
		}
	}
	id, err := b.Generate()
	if err != nil {
		t.Fatalf("b: %v", err)
	}
	if p := b.Decode(id); p.Sequence != 0 {
		t.Fatalf("b sequence = %d, want 0", p.Sequence)
	}
}
