// Package idsvc is the service layer between the transports and the
// generator. It validates batch sizes, logs clock trouble, decodes ids into
// their parts and filters decoded ids with CEL expressions.
//
// Example:
//
//	svc := idsvc.New(rt)
//	ids, _ := svc.Generate(ctx, 10)
//	d, _ := svc.Decode(ids[0])
//	// Ids from worker 3 minted in the last minute
//	hits, _ := svc.Inspect(ctx, ids, "worker == 3 && age_ms < 60000")
package idsvc
