package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/internal/site"
	"github.com/matzehuels/folio/pkg/gateway"
)

// serveOptions holds flag overrides for the serve command.
type serveOptions struct {
	addr    string
	refresh string
	noCache bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio site",
		Long: `Serve the portfolio site, its preview gateway and the JSON API.

Upstream GitHub responses go through the configured cache. With a refresh
schedule the home feed is loaded before listening and kept warm in the
background.`,
		Example: `  folio serve
  folio serve --addr :3000 --refresh "@every 5m"
  FOLIO_REDIS_ADDR=localhost:6379 folio serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts, cmd.Flags().Changed("refresh"))
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&opts.refresh, "refresh", "", `cron spec for background refresh, e.g. "@every 10m" ("" disables)`)
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the upstream cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOptions, refreshSet bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if refreshSet {
		cfg.Server.Refresh = opts.refresh
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	store, err := newCache(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	client := newGitHubClient(ctx, cfg)
	srv, err := site.New(site.Options{
		Config:    cfg,
		Fetcher:   newFetcher(client, store, cfg, false),
		Refresher: newFetcher(client, store, cfg, true),
		Prober:    &gateway.HTTPProber{Timeout: cfg.Gateway.Timeout.Duration},
		Logger:    c.Logger,
	})
	if err != nil {
		return err
	}

	if err := srv.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
