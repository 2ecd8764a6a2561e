// Package client provides the `flake id` command-line client.
//
// generate and health talk to a running server over gRPC; decode and
// inspect work offline with the layout and epoch given by flags, a config
// file or FLAKE_* variables. decode --remote asks the server instead.
//
// # Address configuration
//
// The gRPC address is read from the FLAKE_GRPC environment variable
// (default 127.0.0.1:50051).
//
// Usage
//
//	flake id generate --count 5 --format base58
//	flake id health
//
//	flake id decode 518557701
//	flake id decode --format base58 --epoch 0 --sequence-bits 10 npL6MjP8Qfc
//	flake id decode --remote 518557701
//
//	# CEL over id, ts_ms, datacenter, worker, sequence, now_ms, age_ms
//	flake id inspect --filter 'worker == 3 && age_ms < 60000' 518557701 518557702
package client
