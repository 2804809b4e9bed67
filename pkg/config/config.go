// Package config loads folio settings from a TOML file, a .env file and
// the process environment, in increasing order of precedence.
//
// # File Format
//
//	[server]
//	addr = ":8080"
//	refresh = "@every 10m"
//
//	[github]
//	handle = "octocat"
//	timeout = "8s"
//	sort = "pushed"
//
//	[cache]
//	backend = "redis"
//	ttl = "15m"
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[previews]
//	JsonCraft = "http://localhost:4000/"
//
// # Environment
//
// FOLIO_GITHUB_HANDLE, FOLIO_GITHUB_TOKEN, FOLIO_ADDR and FOLIO_REDIS_ADDR
// override the file. Setting FOLIO_REDIS_ADDR also selects the redis
// cache backend.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/folio/pkg/gateway"
	"github.com/matzehuels/folio/pkg/integrations"
	"github.com/matzehuels/folio/pkg/integrations/github"
	"github.com/matzehuels/folio/pkg/showcase"
)

// DefaultFile is read when no explicit config path is given and it exists.
const DefaultFile = "folio.toml"

// Environment variables that override file settings.
const (
	EnvHandle    = "FOLIO_GITHUB_HANDLE"
	EnvToken     = "FOLIO_GITHUB_TOKEN"
	EnvAddr      = "FOLIO_ADDR"
	EnvRedisAddr = "FOLIO_REDIS_ADDR"
)

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Config is the complete folio configuration.
type Config struct {
	Server   ServerConfig      `toml:"server"`
	GitHub   GitHubConfig      `toml:"github"`
	Gateway  GatewayConfig     `toml:"gateway"`
	Cache    CacheConfig       `toml:"cache"`
	About    About             `toml:"about"`
	Previews map[string]string `toml:"previews"`
}

// ServerConfig configures the site server.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	Refresh      string   `toml:"refresh"` // cron spec for background feed refresh, "" disables
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// GitHubConfig configures the GitHub client and the home feed.
type GitHubConfig struct {
	Handle  string   `toml:"handle"`
	Token   string   `toml:"token"`
	Timeout Duration `toml:"timeout"`
	PerPage int      `toml:"per_page"`
	Sort    string   `toml:"sort"`
	Top     int      `toml:"top"`
}

// GatewayConfig configures reachability probing.
type GatewayConfig struct {
	Route       string   `toml:"route"`
	Timeout     Duration `toml:"timeout"`
	Concurrency int      `toml:"concurrency"`
}

// CacheConfig selects and configures the snapshot cache.
type CacheConfig struct {
	Backend string      `toml:"backend"` // none, file or redis
	Dir     string      `toml:"dir"`     // file backend directory, user cache dir when empty
	TTL     Duration    `toml:"ttl"`
	Redis   RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{10 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
		},
		GitHub: GitHubConfig{
			Handle:  "kornpakSittikool",
			Timeout: Duration{integrations.DefaultTimeout},
			PerPage: github.DefaultPerPage,
			Sort:    github.DefaultSort,
			Top:     showcase.DefaultLimit,
		},
		Gateway: GatewayConfig{
			Route:       showcase.DefaultGatewayRoute,
			Timeout:     Duration{gateway.DefaultProbeTimeout},
			Concurrency: gateway.DefaultConcurrency,
		},
		Cache: CacheConfig{
			Backend: CacheNone,
			TTL:     Duration{15 * time.Minute},
		},
		About:    DefaultAbout(),
		Previews: showcase.DefaultPreviews(),
	}
}

// Load builds the configuration.
//
// Defaults are overlaid with path (or [DefaultFile] if path is empty and
// the file exists), then variables from a .env file in the working
// directory, then the process environment. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}
	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvHandle); ok && v != "" {
		c.GitHub.Handle = v
	}
	if v, ok := lookup(EnvToken); ok && v != "" {
		c.GitHub.Token = v
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := lookup(EnvRedisAddr); ok && v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Backend = CacheRedis
	}
}

// PreviewTable returns the configured previews as a showcase table.
func (c *Config) PreviewTable() showcase.PreviewTable {
	return showcase.PreviewTable(c.Previews)
}
