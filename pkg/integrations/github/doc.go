// Package github provides an HTTP client for the public GitHub REST API.
//
// # Overview
//
// This package fetches the two documents the home feed is built from:
//
//   - GET /users/{handle}: the [Profile]
//   - GET /users/{handle}/repos: the [Repository] list
//
// # Usage
//
//	client := github.NewClient(httputil.NewClient(ctx, token))
//
//	profile, err := client.FetchProfile(ctx, "octocat", 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	repos, err := client.FetchRepositories(ctx, "octocat", github.ListOptions{Sort: "pushed"})
//
// # Authentication
//
// A personal access token is optional. Without one the API allows 60
// requests per hour per address, which surfaces as FORBIDDEN (403).
//
// # Lenient Decoding
//
// The repository list is decoded element by element. A null or mis-shaped
// element becomes a nil entry rather than failing the whole list, and a
// body that is not an array at all yields an empty list. Consumers in
// package showcase drop nil entries.
//
// # Contribution Chart
//
// [ContributionsChartURL] points at an external image service that renders
// the contribution calendar for a handle. No request is made here.
package github
