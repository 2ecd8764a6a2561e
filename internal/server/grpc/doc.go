// Package grpcserver hosts the gRPC server for flake, registering
// flake.v1.IDService and delegating to the ids service layer. Request
// counts and latencies are exported through go-grpc-prometheus on the
// runtime's registry.
//
// Example:
//
//	rt, _ := runtime.Open(runtime.Options{Config: config.Default()})
//	s := grpcserver.New(rt)
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = s.ListenAndServe(ctx, ":50051")
package grpcserver
