package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	flakev1 "github.com/lyle8341/flake/api/flake/v1"
	"github.com/lyle8341/flake/internal/codec"
	"github.com/lyle8341/flake/pkg/snowflake"
)

type idStub struct {
	flakev1.UnimplementedIDServiceServer
	next int64
}

func (s *idStub) Generate(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	s.next++
	return wrapperspb.Int64(s.next), nil
}

func (s *idStub) GenerateStream(req *wrapperspb.UInt32Value, stream flakev1.IDService_GenerateStreamServer) error {
	for i := uint32(0); i < req.GetValue(); i++ {
		s.next++
		if err := stream.Send(wrapperspb.Int64(s.next)); err != nil {
			return err
		}
	}
	return nil
}

func (s *idStub) Decode(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"id": strconv.FormatInt(req.GetValue(), 10), "workerId": 7})
}

func (s *idStub) Health(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String("ok worker=7 datacenter=1"), nil
}

func startGRPCStub(t *testing.T, svc flakev1.IDServiceServer) (addr string, stop func()) {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	gs := grpc.NewServer()
	flakev1.RegisterIDServiceServer(gs, svc)
	done := make(chan struct{})
	go func() {
		_ = gs.Serve(l)
		close(done)
	}()
	stop = func() {
		gs.GracefulStop()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			gs.Stop()
		}
	}
	return l.Addr().String(), stop
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRoot()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestGenerateGRPC(t *testing.T) {
	addr, stop := startGRPCStub(t, &idStub{})
	defer stop()
	t.Setenv("FLAKE_GRPC", addr)

	out, err := run(t, "id", "generate")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(out) != "1" {
		t.Fatalf("single id output: %q", out)
	}

	out, err = run(t, "id", "generate", "--count", "3", "--format", "hex")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || lines[0] != "2" || lines[2] != "4" {
		t.Fatalf("stream output: %q", out)
	}
}

func TestGenerateRejectsBadCount(t *testing.T) {
	if _, err := run(t, "id", "generate", "--count", "0"); err == nil {
		t.Fatalf("expected error for --count 0")
	}
}

func TestHealthAndRemoteDecodeGRPC(t *testing.T) {
	addr, stop := startGRPCStub(t, &idStub{})
	defer stop()
	t.Setenv("FLAKE_GRPC", addr)

	out, err := run(t, "id", "health")
	if err != nil || !strings.Contains(out, "status: ok") {
		t.Fatalf("health: %q %v", out, err)
	}
	out, err = run(t, "id", "decode", "--remote", "42")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("remote decode output %q: %v", out, err)
	}
	if got["id"] != "42" || got["workerId"] != float64(7) {
		t.Fatalf("remote decode = %v", got)
	}
}

func TestDecodeLocal(t *testing.T) {
	id := int64(123)<<22 | int64(20)<<17 | int64(9)<<12 | 5
	out, err := run(t, "id", "decode", strconv.FormatInt(id, 10))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var got struct {
		ID           int64 `json:"id,string"`
		Timestamp    int64 `json:"timestamp"`
		DatacenterID int64 `json:"datacenterId"`
		WorkerID     int64 `json:"workerId"`
		Sequence     int64 `json:"sequence"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output %q: %v", out, err)
	}
	if got.Timestamp != snowflake.DefaultEpoch+123 || got.DatacenterID != 20 || got.WorkerID != 9 || got.Sequence != 5 {
		t.Fatalf("decoded = %+v", got)
	}
}

func TestDecodeLocalCustomLayout(t *testing.T) {
	// 10 bits of sequence instead of 12, epoch 0.
	layout := snowflake.Layout{TimestampBits: 41, DatacenterBits: 5, WorkerBits: 5, SequenceBits: 10}
	id := layout.Pack(1000, 3, 4, 9)
	out, err := run(t, "id", "decode", "--epoch", "0", "--sequence-bits", "10", "--format", "base58",
		codec.Encode(id, codec.Base58))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(out, `"timestamp":1000`) || !strings.Contains(out, `"workerId":4`) || !strings.Contains(out, `"sequence":9`) {
		t.Fatalf("output: %q", out)
	}
}

func TestDecodeLocalFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := "[generator]\nepoch_millis = 0\n\n[generator.layout]\ntimestamp_bits = 41\ndatacenter_bits = 5\nworker_bits = 5\nsequence_bits = 12\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	id := snowflake.DefaultLayout.Pack(77, 0, 1, 0)
	out, err := run(t, "id", "decode", "--config", path, strconv.FormatInt(id, 10))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(out, `"timestamp":77`) {
		t.Fatalf("output: %q", out)
	}
}

func TestInspectLocal(t *testing.T) {
	l := snowflake.DefaultLayout
	a := l.Pack(10, 1, 2, 0)
	b := l.Pack(20, 1, 3, 0)
	out, err := run(t, "id", "inspect", "--filter", "worker == 3",
		strconv.FormatInt(a, 10), strconv.FormatInt(b, 10))
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], `"id":"`+strconv.FormatInt(b, 10)+`"`) {
		t.Fatalf("output: %q", out)
	}
	if _, err := run(t, "id", "inspect", "--filter", "worker ==", "1"); err == nil {
		t.Fatalf("expected filter error")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := run(t, "id", "decode", "not-an-id"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestDecodeLocalRejectsMalformedEnv(t *testing.T) {
	t.Setenv("FLAKE_EPOCH_MILLIS", "yesterday")
	_, err := run(t, "id", "decode", "1")
	if err == nil || !strings.Contains(err.Error(), "FLAKE_EPOCH_MILLIS") {
		t.Fatalf("expected FLAKE_EPOCH_MILLIS error, got %v", err)
	}
}
