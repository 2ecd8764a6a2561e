package transports

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"
)

// IDsTransport abstracts the transport used by the CLI to reach a flake
// server.
type IDsTransport interface {
	// Generate returns count ids in increasing order.
	Generate(ctx context.Context, count int) ([]int64, error)
	// Decode asks the server to split id with its own layout and epoch.
	Decode(ctx context.Context, id int64) (*structpb.Struct, error)
	Health(ctx context.Context) (string, error)
}
