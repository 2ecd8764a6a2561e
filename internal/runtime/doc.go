// Package runtime wires config, metrics and the id generator into a
// single-node flake instance. It exposes Open/Close, a health check, and
// accessors used by the services and servers.
//
// Example:
//
//	cfg := config.Default()
//	cfg.Generator.WorkerID = 9
//	rt, _ := runtime.Open(runtime.Options{Config: cfg})
//	defer rt.Close()
//	_ = rt.CheckHealth(context.Background())
//	id, _ := rt.Generator().Generate()
package runtime
