// Package httpserver provides the REST gateway for flake: id generation,
// decoding and CEL inspection under /v1/ids, a health probe and the
// Prometheus /metrics endpoint, routed with chi.
//
// Example:
//
//	rt, _ := runtime.Open(runtime.Options{Config: config.Default()})
//	s := httpserver.New(rt, nil)
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = s.ListenAndServe(ctx, ":8080")
package httpserver
