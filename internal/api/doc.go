// Package api provides the HTTP API for calc-core.
//
// Routes (all GET, parameters in the query string, JSON responses):
//
//	/add /subtract /multiply /divide /modulo   num1, num2
//	/power                                     base, exponent
//	/sqrt                                      num
//	/history                                   10 most recent operations
//	/health                                    liveness plus storage check
//	/metrics                                   Prometheus exposition
//
// The server follows the same lifecycle pattern as other infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api
