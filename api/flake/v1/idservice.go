// Package flakev1 holds the gRPC stubs for flake.v1.IDService (see
// flake.proto). Requests and responses are protobuf well-known types.
package flakev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	IDService_ServiceName                   = "flake.v1.IDService"
	IDService_Generate_FullMethodName       = "/flake.v1.IDService/Generate"
	IDService_GenerateStream_FullMethodName = "/flake.v1.IDService/GenerateStream"
	IDService_Decode_FullMethodName         = "/flake.v1.IDService/Decode"
	IDService_Health_FullMethodName         = "/flake.v1.IDService/Health"
)

// IDServiceClient is the client API for IDService.
type IDServiceClient interface {
	Generate(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error)
	GenerateStream(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (IDService_GenerateStreamClient, error)
	Decode(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error)
	Health(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type iDServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewIDServiceClient(cc grpc.ClientConnInterface) IDServiceClient {
	return &iDServiceClient{cc}
}

func (c *iDServiceClient) Generate(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, IDService_Generate_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *iDServiceClient) GenerateStream(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (IDService_GenerateStreamClient, error) {
	stream, err := c.cc.NewStream(ctx, &IDService_ServiceDesc.Streams[0], IDService_GenerateStream_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &iDServiceGenerateStreamClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type IDService_GenerateStreamClient interface {
	Recv() (*wrapperspb.Int64Value, error)
	grpc.ClientStream
}

type iDServiceGenerateStreamClient struct {
	grpc.ClientStream
}

func (x *iDServiceGenerateStreamClient) Recv() (*wrapperspb.Int64Value, error) {
	m := new(wrapperspb.Int64Value)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *iDServiceClient) Decode(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, IDService_Decode_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *iDServiceClient) Health(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, IDService_Health_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// IDServiceServer is the server API for IDService. Implementations must embed
// UnimplementedIDServiceServer.
type IDServiceServer interface {
	Generate(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error)
	GenerateStream(*wrapperspb.UInt32Value, IDService_GenerateStreamServer) error
	Decode(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	Health(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	mustEmbedUnimplementedIDServiceServer()
}

// UnimplementedIDServiceServer answers every method with codes.Unimplemented.
type UnimplementedIDServiceServer struct{}

func (UnimplementedIDServiceServer) Generate(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Generate not implemented")
}
func (UnimplementedIDServiceServer) GenerateStream(*wrapperspb.UInt32Value, IDService_GenerateStreamServer) error {
	return status.Errorf(codes.Unimplemented, "method GenerateStream not implemented")
}
func (UnimplementedIDServiceServer) Decode(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Decode not implemented")
}
func (UnimplementedIDServiceServer) Health(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Health not implemented")
}
func (UnimplementedIDServiceServer) mustEmbedUnimplementedIDServiceServer() {}

func RegisterIDServiceServer(s grpc.ServiceRegistrar, srv IDServiceServer) {
	s.RegisterService(&IDService_ServiceDesc, srv)
}

func _IDService_Generate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDServiceServer).Generate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: IDService_Generate_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(IDServiceServer).Generate(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _IDService_GenerateStream_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(wrapperspb.UInt32Value)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(IDServiceServer).GenerateStream(m, &iDServiceGenerateStreamServer{stream})
}

type IDService_GenerateStreamServer interface {
	Send(*wrapperspb.Int64Value) error
	grpc.ServerStream
}

type iDServiceGenerateStreamServer struct {
	grpc.ServerStream
}

func (x *iDServiceGenerateStreamServer) Send(m *wrapperspb.Int64Value) error {
	return x.ServerStream.SendMsg(m)
}

func _IDService_Decode_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDServiceServer).Decode(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: IDService_Decode_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(IDServiceServer).Decode(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

func _IDService_Health_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDServiceServer).Health(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: IDService_Health_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(IDServiceServer).Health(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// IDService_ServiceDesc is the grpc.ServiceDesc for IDService.
var IDService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: IDService_ServiceName,
	HandlerType: (*IDServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Generate",
			Handler:    _IDService_Generate_Handler,
		},
		{
			MethodName: "Decode",
			Handler:    _IDService_Decode_Handler,
		},
		{
			MethodName: "Health",
			Handler:    _IDService_Health_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "GenerateStream",
			Handler:       _IDService_GenerateStream_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "flake/v1/flake.proto",
}
