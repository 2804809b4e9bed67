package cli

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/matzehuels/folio/pkg/cache"
	"github.com/matzehuels/folio/pkg/config"
)

func TestCacheDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CACHE_HOME is only honoured on linux")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir(config.Default())
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(xdg, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirConfigured(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Dir = "/srv/folio-cache"

	dir, err := cacheDir(cfg)
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/srv/folio-cache" {
		t.Errorf("cacheDir() = %q, want configured dir", dir)
	}
}

func TestNewCache(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		noCache bool
		want    string
	}{
		{"none", config.CacheNone, false, "null"},
		{"file", config.CacheFile, false, "file"},
		{"file disabled by flag", config.CacheFile, true, "null"},
		{"redis disabled by flag", config.CacheRedis, true, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Cache.Backend = tt.backend
			cfg.Cache.Dir = t.TempDir()

			store, err := newCache(t.Context(), cfg, tt.noCache)
			if err != nil {
				t.Fatalf("newCache() error: %v", err)
			}
			defer store.Close()

			var got string
			switch store.(type) {
			case *cache.NullCache:
				got = "null"
			case *cache.FileCache:
				got = "file"
			default:
				got = "other"
			}
			if got != tt.want {
				t.Errorf("backend = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCacheLocation(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Backend = config.CacheRedis
	cfg.Cache.Redis.Addr = "localhost:6379"
	cfg.Cache.Redis.DB = 2

	if got := cacheLocation(cfg, nil); got != "localhost:6379/2 folio:*" {
		t.Errorf("cacheLocation() = %q", got)
	}

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if got := cacheLocation(config.Default(), fc); got != fc.Dir() {
		t.Errorf("cacheLocation() = %q, want %q", got, fc.Dir())
	}
	if got := cacheLocation(config.Default(), cache.NewNullCache()); got != "none" {
		t.Errorf("cacheLocation() = %q, want none", got)
	}
}
