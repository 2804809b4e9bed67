package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/pkg/config"
	"github.com/matzehuels/folio/pkg/gateway"
)

// probeOptions holds flags for the probe command.
type probeOptions struct {
	previews    bool
	timeout     time.Duration
	concurrency int
	json        bool
}

// probeCommand creates the probe command.
func (c *CLI) probeCommand() *cobra.Command {
	opts := probeOptions{}

	cmd := &cobra.Command{
		Use:   "probe [url...]",
		Short: "Check whether preview targets are reachable",
		Long: `Run the gateway reachability check against one or more targets.

Without arguments the configured previews are probed. Any HTTP response
counts as reachable; the command fails when at least one target is not.`,
		Example: `  folio probe
  folio probe http://localhost:4000/ localhost:3000
  folio probe --previews https://example.com --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runProbe(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.previews, "previews", false, "also probe the configured previews")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "per-probe timeout (overrides config)")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "probes in flight at once (overrides config)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print results as JSON")

	return cmd
}

func (c *CLI) runProbe(ctx context.Context, args []string, opts probeOptions) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	targets := slices.Clone(args)
	if len(targets) == 0 || opts.previews {
		targets = append(targets, previewTargets(cfg)...)
	}
	if len(targets) == 0 {
		printInfo("Nothing to probe")
		return nil
	}

	timeout := cfg.Gateway.Timeout.Duration
	if opts.timeout > 0 {
		timeout = opts.timeout
	}
	concurrency := cfg.Gateway.Concurrency
	if opts.concurrency > 0 {
		concurrency = opts.concurrency
	}

	prog := newProgress(c.Logger)
	views := gateway.ProbeAll(ctx, &gateway.HTTPProber{Timeout: timeout}, targets, concurrency)
	if err := ctx.Err(); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Probed %d targets", len(views)))

	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(views); err != nil {
			return err
		}
	} else {
		printProbeResults(views)
	}

	if n := countUnavailable(views); n > 0 {
		return fmt.Errorf("%d of %d targets unavailable", n, len(views))
	}
	return nil
}

// previewTargets returns the configured preview URLs ordered by
// repository name.
func previewTargets(cfg *config.Config) []string {
	names := make([]string, 0, len(cfg.Previews))
	for name := range cfg.Previews {
		names = append(names, name)
	}
	slices.Sort(names)

	targets := make([]string, len(names))
	for i, name := range names {
		targets[i] = cfg.Previews[name]
	}
	return targets
}

func printProbeResults(views []gateway.View) {
	for _, v := range views {
		if v.State == gateway.Ready {
			printSuccess("%s", StyleHighlight.Render(v.Target.String()))
			continue
		}
		printError("%s", valueOr(v.Raw))
		printDetail("%s", v.Message)
	}
}

func countUnavailable(views []gateway.View) int {
	n := 0
	for _, v := range views {
		if v.State != gateway.Ready {
			n++
		}
	}
	return n
}
