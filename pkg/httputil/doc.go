// Package httputil provides HTTP helpers shared by the upstream API clients.
//
// # Overview
//
//   - [NewClient]: an *http.Client, optionally authenticated with a static
//     bearer token through golang.org/x/oauth2
//   - [ReadBody]: bounded body reads
//   - [ParsePayload]: lenient body classification (JSON or raw text) used to
//     build error excerpts and to detect upstream shape violations
//
// # Timeouts
//
// Clients returned by [NewClient] carry no global timeout. Every call site
// derives a context with its own deadline, which lets the GitHub client and
// the gateway prober use different bounds over the same transport.
//
// # Retries
//
// There are none. Each request is a single attempt and its failure is
// reported to the caller as-is.
package httputil
