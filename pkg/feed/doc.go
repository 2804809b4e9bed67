// Package feed builds the home feed for one GitHub handle.
//
// An [Orchestrator] fetches the profile and the repository list
// concurrently, applies each result as it settles and derives the ranked
// top list and aggregate statistics from the repository list. Renderers
// read a [View] snapshot; they never trigger fetches themselves.
//
// # Invocations
//
// Every [Orchestrator.Load] is a new invocation with its own UUID. Starting
// one cancels the previous invocation, whose late results are discarded.
// The superseded Load returns [ErrSuperseded].
//
// # Partial Data
//
// The two sections are independent. If one fails, the other still renders
// and a reload of the same handle keeps the last good data of the failed
// section. Switching to a different handle clears everything first.
//
// # Caching
//
// [CachedFetcher] puts a [cache.Cache] in front of any [Fetcher]. The
// server uses it so page views within the TTL share one upstream call.
package feed
