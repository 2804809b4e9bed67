package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	ferrors "github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/gateway"
	"github.com/matzehuels/folio/pkg/integrations/github"
)

var sortFields = []string{"created", "updated", "pushed", "full_name"}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, ferrors.New(ferrors.ErrCodeInvalidConfig, format, args...))
	}

	if c.Server.Addr == "" {
		add("server.addr is required")
	}
	if c.Server.Refresh != "" {
		if _, err := cron.ParseStandard(c.Server.Refresh); err != nil {
			add("server.refresh %q: %v", c.Server.Refresh, err)
		}
	}
	if c.Server.ReadTimeout.Duration < 0 || c.Server.WriteTimeout.Duration < 0 {
		add("server timeouts must not be negative")
	}

	if err := github.ValidateHandle(c.GitHub.Handle); err != nil {
		add("github.handle: %s", ferrors.UserMessage(err))
	}
	if c.GitHub.Timeout.Duration <= 0 {
		add("github.timeout must be positive")
	}
	if c.GitHub.PerPage < 1 || c.GitHub.PerPage > github.MaxPerPage {
		add("github.per_page must be between 1 and %d, got %d", github.MaxPerPage, c.GitHub.PerPage)
	}
	if !contains(sortFields, c.GitHub.Sort) {
		add("github.sort %q: use one of %s", c.GitHub.Sort, strings.Join(sortFields, ", "))
	}
	if c.GitHub.Top < 1 {
		add("github.top must be at least 1")
	}

	if !strings.HasPrefix(c.Gateway.Route, "/") {
		add("gateway.route %q must start with /", c.Gateway.Route)
	}
	if c.Gateway.Timeout.Duration <= 0 {
		add("gateway.timeout must be positive")
	}
	if c.Gateway.Concurrency < 1 {
		add("gateway.concurrency must be at least 1")
	}

	switch c.Cache.Backend {
	case CacheNone, CacheFile:
	case CacheRedis:
		if c.Cache.Redis.Addr == "" {
			add("cache.redis.addr is required for the redis backend")
		}
	default:
		add("cache.backend %q: use none, file or redis", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		add("cache.ttl must not be negative")
	}

	for name, raw := range c.Previews {
		if raw == "" {
			continue
		}
		if _, err := gateway.Normalize(raw); err != nil {
			add("previews.%s: %s", name, ferrors.UserMessage(err))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
