// Package transports provides pluggable transport implementations for the CLI.
package transports

import (
	"context"
	"errors"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	flakev1 "github.com/lyle8341/flake/api/flake/v1"
)

// GrpcTransport implements IDsTransport over gRPC.
type GrpcTransport struct {
	dial func(ctx context.Context) (*grpc.ClientConn, error)
}

// NewGrpcTransport constructs a new GrpcTransport using the provided dialer.
func NewGrpcTransport(dial func(ctx context.Context) (*grpc.ClientConn, error)) *GrpcTransport {
	return &GrpcTransport{dial: dial}
}

func (t *GrpcTransport) withClient(ctx context.Context, fn func(cli flakev1.IDServiceClient) error) error {
	conn, err := t.dial(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()
	return fn(flakev1.NewIDServiceClient(conn))
}

// Generate uses the unary RPC for a single id and the server stream otherwise.
func (t *GrpcTransport) Generate(ctx context.Context, count int) ([]int64, error) {
	var ids []int64
	err := t.withClient(ctx, func(cli flakev1.IDServiceClient) error {
		if count == 1 {
			v, err := cli.Generate(ctx, &emptypb.Empty{})
			if err != nil {
				return err
			}
			ids = []int64{v.GetValue()}
			return nil
		}
		stream, err := cli.GenerateStream(ctx, wrapperspb.UInt32(uint32(count)))
		if err != nil {
			return err
		}
		ids = make([]int64, 0, count)
		for {
			v, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			ids = append(ids, v.GetValue())
		}
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Decode calls the Decode RPC.
func (t *GrpcTransport) Decode(ctx context.Context, id int64) (*structpb.Struct, error) {
	var out *structpb.Struct
	err := t.withClient(ctx, func(cli flakev1.IDServiceClient) error {
		var err error
		out, err = cli.Decode(ctx, wrapperspb.Int64(id))
		return err
	})
	return out, err
}

// Health calls the Health RPC.
func (t *GrpcTransport) Health(ctx context.Context) (string, error) {
	var status string
	err := t.withClient(ctx, func(cli flakev1.IDServiceClient) error {
		v, err := cli.Health(ctx, &emptypb.Empty{})
		if err != nil {
			return err
		}
		status = v.GetValue()
		return nil
	})
	return status, err
}
