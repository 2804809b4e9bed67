// Package gateway decides whether a caller-supplied URL may be embedded.
//
// A raw target goes through three steps:
//
//  1. [Normalize] accepts only absolute http and https URLs and rewrites
//     them into a canonical form.
//  2. A [Prober] checks that something answers at the address.
//  3. The [Gateway] state machine reports Checking, then Ready or
//     Unavailable. Only Ready permits embedding.
//
// # Stale Results
//
// Changing the target cancels the previous probe and bumps a generation
// counter. Results from an older generation are discarded, so the view
// always describes the latest target.
//
// # One-shot Use
//
// Request handlers that need a single answer call [Resolve]; batch callers
// use [ProbeAll], which bounds concurrency with an errgroup.
package gateway
