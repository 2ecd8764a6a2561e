package grpcserver

import (
	"context"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Health reports "not_serving" while the clock reads behind the last issued
// id, and the generator identity otherwise.
func (s *idService) Health(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	if err := s.rt.CheckHealth(ctx); err != nil {
		return wrapperspb.String("not_serving"), nil
	}
	return wrapperspb.String(s.svc.Health()), nil
}
