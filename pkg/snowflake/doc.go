// Package snowflake mints 64-bit, time-ordered identifiers without any
// coordination between producers.
//
// # Format
//
// An id packs four fields below the unused sign bit, most significant first:
//
//	[timestamp - epoch][datacenter id][worker id][sequence]
//
// The widths are set by a Layout; DefaultLayout is 41/5/5/12. Decode is the
// exact inverse of packing.
//
// # Monotonicity
//
// Each Generator owns its (lastTimestamp, sequence) pair behind a mutex:
//   - Within one millisecond the sequence increments. When it would wrap,
//     the generator polls the clock every SpinInterval until the next
//     millisecond, optionally giving up after MaxWait.
//   - If the clock reads behind the last issued timestamp, Generate returns
//     a *ClockRegressionError and leaves its state alone. Retrying is the
//     caller's decision.
//
// Ids are unique across a fleet only if every Generator runs with a distinct
// (datacenter, worker) pair. Nothing here checks that.
//
// # Usage
//
//	g, err := snowflake.New(9, 20, snowflake.DefaultEpoch)
//	if err != nil { /* *ConfigError */ }
//	id, err := g.Generate()
//	parts := g.Decode(id)
package snowflake
