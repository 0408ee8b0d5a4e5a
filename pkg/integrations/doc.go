// Package integrations provides HTTP clients for puzzle metadata providers.
//
// # Overview
//
// Some presets need data that changes daily, such as the Strands puzzle
// number and clue. Each provider has its own subpackage:
//
//   - [strands]: the daily Strands puzzle descriptor
//
// # Client Pattern
//
// Provider clients embed [Client] and follow the same shape:
//
//	c := strands.NewClient(backend, 24*time.Hour)
//	p, err := c.Puzzle(ctx, "2024-03-04")
//
// # Shared Infrastructure
//
// [Client] handles request headers, status mapping and response caching via
// [cache.Cache]. Responses are decoded once and the decoded value is cached
// as JSON, keyed by a provider prefix plus a provider-specific key.
//
// # Errors
//
// A 404 maps to [ErrNotFound]; every other failure, including transport
// errors and other non-200 statuses, wraps [ErrNetwork]. Requests are not
// retried; callers decide whether to try again.
package integrations
