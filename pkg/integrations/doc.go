// Package integrations provides the shared HTTP layer for upstream API clients.
//
// # Overview
//
// Service-specific clients live in subpackages and embed [Client]:
//
//   - [github]: GitHub REST API (profiles, repository lists)
//
// # Client Pattern
//
//	c := integrations.NewClient(httpClient, map[string]string{"Accept": "application/json"})
//	resp, err := c.Get(ctx, url, "user", 8*time.Second)
//
// [Client.Get] performs exactly one attempt:
//   - the call is bounded by its own deadline ([DefaultTimeout] when zero)
//   - the body is read in full and parsed leniently (JSON or raw text)
//   - non-2xx answers are classified by [CheckStatus]
//
// # Error Handling
//
//   - 404: NOT_FOUND naming the subject ("user not found (404)")
//   - 403: FORBIDDEN, the unauthenticated rate limit in practice
//   - 429: RATE_LIMITED
//   - other non-2xx: [errors.UpstreamError] with a body excerpt
//   - expired deadline: TIMEOUT
//   - transport failure: NETWORK_ERROR
//   - cancelled parent context: context.Canceled, unwrapped
//
// No error is retried.
package integrations
