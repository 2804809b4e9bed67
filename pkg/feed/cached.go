package feed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/folio/pkg/cache"
	"github.com/matzehuels/folio/pkg/integrations/github"
)

// CachedFetcher serves profile and repository fetches from a cache and
// falls through to the wrapped Fetcher on a miss. Only successful
// responses are stored. Cache failures degrade to a miss so a broken
// backend never breaks the feed.
type CachedFetcher struct {
	Fetcher Fetcher
	Cache   cache.Cache
	TTL     time.Duration // zero selects cache.TTLProfile / cache.TTLRepositories
	Refresh bool          // skip reads, still write fresh results
}

// FetchProfile implements [Fetcher].
func (c *CachedFetcher) FetchProfile(ctx context.Context, handle string, timeout time.Duration) (*github.Profile, error) {
	key := cache.Key("github:profile", handle)
	var p github.Profile
	if c.lookup(ctx, key, &p) {
		return &p, nil
	}

	fresh, err := c.Fetcher.FetchProfile(ctx, handle, timeout)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, fresh, c.ttl(cache.TTLProfile))
	return fresh, nil
}

// FetchRepositories implements [Fetcher]. Nil entries survive the round
// trip as JSON nulls.
func (c *CachedFetcher) FetchRepositories(ctx context.Context, handle string, opts github.ListOptions) ([]*github.Repository, error) {
	key := cache.Key("github:repos", handle, opts.PerPage, opts.Sort)
	var repos []*github.Repository
	if c.lookup(ctx, key, &repos) && repos != nil {
		return repos, nil
	}

	fresh, err := c.Fetcher.FetchRepositories(ctx, handle, opts)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, fresh, c.ttl(cache.TTLRepositories))
	return fresh, nil
}

func (c *CachedFetcher) lookup(ctx context.Context, key string, v any) bool {
	if c.Refresh || c.Cache == nil {
		return false
	}
	data, ok, err := c.Cache.Get(ctx, key)
	if err != nil || !ok {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

func (c *CachedFetcher) store(ctx context.Context, key string, v any, ttl time.Duration) {
	if c.Cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.Cache.Set(ctx, key, data, ttl)
}

func (c *CachedFetcher) ttl(def time.Duration) time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return def
}

var _ Fetcher = (*CachedFetcher)(nil)
