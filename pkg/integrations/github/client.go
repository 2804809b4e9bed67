package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/matzehuels/folio/pkg/buildinfo"
	ferrors "github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/integrations"
)

// DefaultBaseURL is the public GitHub REST endpoint.
const DefaultBaseURL = "https://api.github.com"

// Listing defaults.
const (
	DefaultPerPage = 100
	MaxPerPage     = 100
	DefaultSort    = "updated"
)

var sortFields = map[string]bool{
	"created":   true,
	"updated":   true,
	"pushed":    true,
	"full_name": true,
}

// Client reads public profiles and repository lists from the GitHub API.
// Every call is a single attempt bounded by its own deadline.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a GitHub API client over httpClient.
// Pass an authenticated client (see httputil.NewClient) to raise rate limits,
// or nil for anonymous access.
func NewClient(httpClient *http.Client) *Client {
	headers := map[string]string{
		"Accept":     "application/vnd.github+json",
		"User-Agent": buildinfo.UserAgent(),
	}
	return &Client{
		Client:  integrations.NewClient(httpClient, headers),
		baseURL: DefaultBaseURL,
	}
}

// WithBaseURL returns a copy of c that talks to baseURL instead of the
// public API. Used against GitHub Enterprise and test servers.
func (c *Client) WithBaseURL(baseURL string) *Client {
	cp := *c
	cp.baseURL = baseURL
	return &cp
}

// FetchProfile retrieves the public profile of handle.
//
// A 2xx body that is not a JSON object is reported as an
// [ferrors.UpstreamError] so the caller can degrade the profile section.
func (c *Client) FetchProfile(ctx context.Context, handle string, timeout time.Duration) (*Profile, error) {
	u := fmt.Sprintf("%s/users/%s", c.baseURL, integrations.PathEscape(handle))
	resp, err := c.Get(ctx, u, "user", timeout)
	if err != nil {
		return nil, err
	}
	if !resp.Payload.IsObject() {
		return nil, &ferrors.UpstreamError{Status: resp.Status, Excerpt: resp.Payload.Excerpt(ferrors.MaxExcerpt)}
	}

	var p Profile
	if err := json.Unmarshal(resp.Payload.JSON, &p); err != nil {
		return nil, &ferrors.UpstreamError{Status: resp.Status, Excerpt: resp.Payload.Excerpt(ferrors.MaxExcerpt)}
	}
	return &p, nil
}

// FetchRepositories lists the public repositories of handle.
//
// A body that is not a JSON array yields an empty list. Elements are decoded
// one by one: a null or mis-shaped element becomes a nil entry so that one
// bad record does not discard the rest.
func (c *Client) FetchRepositories(ctx context.Context, handle string, opts ListOptions) ([]*Repository, error) {
	perPage, sort, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("sort", sort)
	u := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, integrations.PathEscape(handle), q.Encode())

	resp, err := c.Get(ctx, u, "user", opts.Timeout)
	if err != nil {
		return nil, err
	}
	if !resp.Payload.IsArray() {
		return []*Repository{}, nil
	}
	return decodeRepositories(resp.Payload.JSON), nil
}

func (o ListOptions) resolve() (perPage int, sort string, err error) {
	perPage = o.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		return 0, "", ferrors.New(ferrors.ErrCodeInvalidInput, "per_page must be at most %d, got %d", MaxPerPage, perPage)
	}
	sort = o.Sort
	if sort == "" {
		sort = DefaultSort
	}
	if !sortFields[sort] {
		return 0, "", ferrors.New(ferrors.ErrCodeInvalidInput, "invalid sort field %q: use created, updated, pushed or full_name", sort)
	}
	return perPage, sort, nil
}

func decodeRepositories(data json.RawMessage) []*Repository {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []*Repository{}
	}
	repos := make([]*Repository, len(raw))
	for i, elem := range raw {
		if len(elem) == 0 || elem[0] != '{' {
			continue
		}
		var r Repository
		if err := json.Unmarshal(elem, &r); err != nil {
			continue
		}
		repos[i] = &r
	}
	return repos
}

// ContributionsChartURL returns the image URL of the contribution chart
// for handle.
func ContributionsChartURL(handle string) string {
	return "https://ghchart.rshah.org/" + integrations.PathEscape(handle)
}
