// Package carrier provides the shared HTTP plumbing carrier adapters
// compose instead of inheriting: a JSON client with per-endpoint rate
// limiting and a circuit breaker.
//
// Carrier APIs are rate-limited and occasionally flaky. The client guards
// every request with a token-bucket limiter (an unbounded request storm is a
// correctness problem against carrier quotas, not just a performance one)
// and a circuit breaker that opens after a sustained failure rate, so a dead
// endpoint fails fast instead of burning the sync run's timeout budget on
// every record.
//
// Adapters remain free to skip this package entirely; the engine contract
// only cares about the errors they return.
//
// # Usage
//
//	client := carrier.New(carrier.Options{Endpoint: cfg.Endpoint, Name: "lumen"})
//	var payload circuitList
//	err := client.GetJSON(ctx, "/circuits", &payload)
package carrier
