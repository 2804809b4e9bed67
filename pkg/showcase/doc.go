// Package showcase turns a raw repository list into what the home feed
// displays: a ranked top list, aggregate statistics and preview links.
//
// Everything here is pure. Functions never mutate their input and never
// perform I/O, so results can be memoized by the caller and recomputed only
// when a new repository list arrives.
//
// # Ranking
//
// [Rank] drops forks and nil entries, then orders by stars with a stable
// sort so equally starred repositories keep the upstream order.
//
// # Previews
//
// A [PreviewTable] maps repository names to locally hosted previews.
// [Attach] decorates ranked repositories with their preview and a link to
// the gateway route, which probes the preview before embedding it.
package showcase
