package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/folio/pkg/config"
	"github.com/matzehuels/folio/pkg/feed"
	"github.com/matzehuels/folio/pkg/gateway"
	"github.com/matzehuels/folio/pkg/integrations/github"
)

// githubOptions holds flag overrides for the github command.
type githubOptions struct {
	top         int
	perPage     int
	sort        string
	timeout     time.Duration
	json        bool
	interactive bool
	noCache     bool
	refresh     bool
}

// githubCommand creates the github command.
func (c *CLI) githubCommand() *cobra.Command {
	opts := githubOptions{}

	cmd := &cobra.Command{
		Use:   "github [handle]",
		Short: "Show the profile feed for a GitHub handle",
		Long: `Load a GitHub profile and its repositories, then show the profile
header, repository statistics and the most starred repositories.

The handle defaults to the configured one. Profile and repositories are
fetched independently; a failing section is reported without hiding the
other.`,
		Example: `  folio github
  folio github octocat --top 10
  folio github octocat --json
  folio github -i`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handle := ""
			if len(args) == 1 {
				handle = args[0]
			}
			return c.runGitHub(cmd.Context(), handle, opts)
		},
	}

	cmd.Flags().IntVar(&opts.top, "top", 0, "number of top repositories to show (overrides config)")
	cmd.Flags().IntVar(&opts.perPage, "per-page", 0, "repositories to request, at most 100 (overrides config)")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "repository sort: created, updated, pushed, full_name (overrides config)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (overrides config)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the feed as JSON")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the feed and probe previews interactively")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the upstream cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached responses and store fresh ones")

	return cmd
}

func (c *CLI) runGitHub(ctx context.Context, handle string, opts githubOptions) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	applyGitHubOptions(cfg, opts)
	if handle == "" {
		handle = cfg.GitHub.Handle
	}
	if err := github.ValidateHandle(handle); err != nil {
		return err
	}

	store, err := newCache(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	orch := feed.New(newFetcher(newGitHubClient(ctx, cfg), store, cfg, opts.refresh), feedOptions(cfg, c.Logger))

	if opts.interactive {
		prober := &gateway.HTTPProber{Timeout: cfg.Gateway.Timeout.Duration}
		return runFeedTUI(ctx, orch, prober, handle)
	}

	var spinner *Spinner
	if !opts.json {
		spinner = newSpinnerWithContext(ctx, "Loading "+handle+"...")
		spinner.Start()
	}
	prog := newProgress(c.Logger)
	view, err := orch.Load(ctx, handle)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	prog.done("Loaded " + handle)

	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(view); err != nil {
			return err
		}
	} else {
		printFeed(view)
	}

	// Partial data is still a result; only a feed with nothing to show fails.
	if view.ProfileErr() != nil && view.ReposErr() != nil {
		return view.Err()
	}
	return nil
}

// applyGitHubOptions overlays non-zero flag values on cfg.
func applyGitHubOptions(cfg *config.Config, opts githubOptions) {
	if opts.top > 0 {
		cfg.GitHub.Top = opts.top
	}
	if opts.perPage > 0 {
		cfg.GitHub.PerPage = opts.perPage
	}
	if opts.sort != "" {
		cfg.GitHub.Sort = opts.sort
	}
	if opts.timeout > 0 {
		cfg.GitHub.Timeout.Duration = opts.timeout
	}
}

// feedOptions maps configuration onto orchestrator options.
func feedOptions(cfg *config.Config, logger *log.Logger) feed.Options {
	gh := cfg.GitHub
	return feed.Options{
		Limit:        gh.Top,
		PerPage:      gh.PerPage,
		Sort:         gh.Sort,
		Timeout:      gh.Timeout.Duration,
		Previews:     cfg.PreviewTable(),
		GatewayRoute: cfg.Gateway.Route,
		Logger:       logger,
	}
}

// =============================================================================
// Feed Rendering
// =============================================================================

// printFeed prints a settled feed view.
func printFeed(v feed.View) {
	fmt.Print(renderProfile(v))
	if v.ProfileError != "" {
		printWarning("profile: %s", v.ProfileError)
	}
	printNewline()

	if v.ReposError != "" {
		printWarning("repositories: %s", v.ReposError)
	}
	if len(v.Top) > 0 {
		fmt.Println(renderStats(v.Stats))
		printNewline()
		fmt.Println(renderTopTable(v, -1, nil))
	} else if v.ReposError == "" {
		printInfo("No public repositories")
	}
	printNewline()
	printNextStep("Serve it", appName+" serve")
}

// renderProfile renders the profile header, or just the handle when the
// profile is unavailable.
func renderProfile(v feed.View) string {
	var b strings.Builder
	p := v.Profile
	if p == nil {
		b.WriteString(StyleTitle.Render(v.Handle))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(StyleTitle.Render(p.DisplayName()))
	if p.Name != "" {
		b.WriteString(" " + StyleDim.Render("@"+p.Login))
	}
	b.WriteString("\n")
	if p.Bio != "" {
		b.WriteString(StyleValue.Render(p.Bio))
		b.WriteString("\n")
	}
	if p.HTMLURL != "" {
		b.WriteString(StyleLink.Render(p.HTMLURL))
		b.WriteString("\n")
	}
	return b.String()
}

// renderTopTable renders the ranked repositories. cursor highlights a row,
// -1 highlights none. status, when set, replaces the preview column with
// probe results keyed by repository name.
func renderTopTable(v feed.View, cursor int, status map[string]string) string {
	rows := make([][]string, 0, len(v.Top))
	for i, r := range v.Top {
		mark := "  "
		if i == cursor {
			mark = "▸ "
		}
		preview := iconNone
		if r.HasPreview() {
			preview = iconArrow + " " + r.PreviewHref
			if s, ok := status[r.Name]; ok {
				preview = s
			}
		}
		rows = append(rows, []string{
			mark,
			r.Name,
			iconStar + " " + strconv.Itoa(r.Stars),
			valueOr(r.Language),
			preview,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("", "Repository", "Stars", "Lang", "Preview").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			base := lipgloss.NewStyle()
			if row == cursor {
				base = base.Bold(true)
			}
			switch col {
			case 1:
				if row == cursor {
					return base.Foreground(colorCyan)
				}
				return base.Foreground(colorWhite)
			case 2:
				return StyleNumber.Inherit(base)
			case 4:
				if row < len(v.Top) && v.Top[row].HasPreview() {
					return base.Foreground(colorGreen)
				}
			}
			return base.Foreground(colorDim)
		}).
		Render()
}
