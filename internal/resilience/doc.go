// Package resilience provides fault tolerance for the service's dependencies.
//
// Subpackages:
//   - circuitbreaker: gobreaker wrappers for the query translator and an
//     optional breaker in front of PostgreSQL
//   - retry: exponential backoff with jitter, used for the startup database ping
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.DefaultConfig("translator-openai"))
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callProvider()
//	})
//
//	err := retry.WithBackoff(ctx, retry.DBStartupConfig(), func() error {
//	    return db.PingContext(ctx)
//	})
package resilience
