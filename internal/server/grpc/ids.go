package grpcserver

import (
	"context"
	"errors"
	"strconv"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	flakev1 "github.com/lyle8341/flake/api/flake/v1"
	"github.com/lyle8341/flake/internal/runtime"
	idsvc "github.com/lyle8341/flake/internal/services/ids"
	"github.com/lyle8341/flake/pkg/snowflake"
)

type idService struct {
	flakev1.UnimplementedIDServiceServer
	rt  *runtime.Runtime
	svc *idsvc.Service
}

func (s *idService) Generate(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	ids, err := s.svc.Generate(ctx, 1)
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.Int64(ids[0]), nil
}

func (s *idService) GenerateStream(req *wrapperspb.UInt32Value, stream flakev1.IDService_GenerateStreamServer) error {
	err := s.svc.Stream(stream.Context(), int(req.GetValue()), idsvc.SinkFunc(func(id int64) error {
		return stream.Send(wrapperspb.Int64(id))
	}))
	return toStatus(err)
}

func (s *idService) Decode(_ context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	d, err := s.svc.Decode(req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return decodedStruct(d), nil
}

// decodedStruct carries the id as a string; a protobuf number is a double
// and cannot hold every int64.
func decodedStruct(d idsvc.Decoded) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":           structpb.NewStringValue(strconv.FormatInt(d.ID, 10)),
		"timestamp":    structpb.NewNumberValue(float64(d.Timestamp)),
		"datacenterId": structpb.NewNumberValue(float64(d.DatacenterID)),
		"workerId":     structpb.NewNumberValue(float64(d.WorkerID)),
		"sequence":     structpb.NewNumberValue(float64(d.Sequence)),
		"time":         structpb.NewStringValue(d.Time.Format(time.RFC3339Nano)),
	}}
}

// toStatus maps service and generator errors onto gRPC codes.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, idsvc.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, snowflake.ErrClockRegression), errors.Is(err, snowflake.ErrWaitTimeout):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, snowflake.ErrInvalidConfig):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
