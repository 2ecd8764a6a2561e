package client

import (
	"context"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/lyle8341/flake/internal/cmd/client/transports"
)

// grpcAddrFromEnv returns the gRPC server address from FLAKE_GRPC or a default.
func grpcAddrFromEnv() string {
	if addr := os.Getenv("FLAKE_GRPC"); addr != "" {
		return addr
	}
	return "127.0.0.1:50051"
}

// dialGRPCContext dials the flake gRPC endpoint with insecure transport for local/dev.
func dialGRPCContext(ctx context.Context) (*grpc.ClientConn, error) {
	addr := grpcAddrFromEnv()
	return grpc.DialContext(ctx, addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

func getTransport() transports.IDsTransport {
	// For now, only gRPC transport; can add HTTP in future.
	return transports.NewGrpcTransport(dialGRPCContext)
}
