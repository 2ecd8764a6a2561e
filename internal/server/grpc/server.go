package grpcserver

import (
	"context"
	"net"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"google.golang.org/grpc"

	flakev1 "github.com/lyle8341/flake/api/flake/v1"
	"github.com/lyle8341/flake/internal/runtime"
	idsvc "github.com/lyle8341/flake/internal/services/ids"
)

// Server owns the gRPC server instance.
type Server struct {
	grpc *grpc.Server
	lis  net.Listener
}

// New constructs a gRPC server and registers services. Extra options are
// appended after the metrics interceptors.
func New(rt *runtime.Runtime, opts ...grpc.ServerOption) *Server {
	sm := grpc_prometheus.NewServerMetrics()
	sm.EnableHandlingTimeHistogram()
	rt.Metrics().Registerer().MustRegister(sm)

	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(sm.UnaryServerInterceptor()),
		grpc.ChainStreamInterceptor(sm.StreamServerInterceptor()),
	}, opts...)
	s := &Server{grpc: grpc.NewServer(opts...)}
	flakev1.RegisterIDServiceServer(s.grpc, &idService{rt: rt, svc: idsvc.New(rt)})
	sm.InitializeMetrics(s.grpc)
	return s
}

// ListenAndServe binds to addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Serve accepts connections on l until ctx is done.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	s.lis = l
	errCh := make(chan error, 1)
	go func() { errCh <- s.grpc.Serve(l) }()
	select {
	case <-ctx.Done():
		s.grpc.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}

// Close stops the server and closes the listener.
func (s *Server) Close() {
	if s.grpc != nil {
		s.grpc.GracefulStop()
	}
	if s.lis != nil {
		_ = s.lis.Close()
	}
}
