package feed

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	ferrors "github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/integrations/github"
	"github.com/matzehuels/folio/pkg/observability"
	"github.com/matzehuels/folio/pkg/showcase"
)

// ErrSuperseded is returned by [Orchestrator.Load] when a newer load
// replaced it before it settled.
var ErrSuperseded = errors.New("feed: load superseded by a newer invocation")

// Fetcher retrieves the upstream documents a feed is built from.
// *github.Client implements it.
type Fetcher interface {
	FetchProfile(ctx context.Context, handle string, timeout time.Duration) (*github.Profile, error)
	FetchRepositories(ctx context.Context, handle string, opts github.ListOptions) ([]*github.Repository, error)
}

// Options configures an [Orchestrator].
type Options struct {
	Limit        int                   // Ranked list size (default showcase.DefaultLimit)
	PerPage      int                   // Repository page size (default github.DefaultPerPage)
	Sort         string                // Repository sort field (default github.DefaultSort)
	Timeout      time.Duration         // Per-request deadline (default integrations.DefaultTimeout)
	Previews     showcase.PreviewTable // Repository name to preview URL
	GatewayRoute string                // Route used in preview links (default showcase.DefaultGatewayRoute)
	Logger       *log.Logger           // nil discards log output
}

// Orchestrator coordinates the profile and repository fetches for one
// handle and keeps the derived view.
//
// Loads are invocations: starting one cancels the previous invocation and
// bumps a generation counter, and fetch results are applied only while
// their invocation is current. The profile and repository sections are
// independent; one failing neither cancels the other nor discards the
// data the other already holds.
type Orchestrator struct {
	fetcher Fetcher
	opts    Options
	logger  *log.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	view   View
}

// New creates an Orchestrator over fetcher.
func New(fetcher Fetcher, opts Options) *Orchestrator {
	if opts.Limit <= 0 {
		opts.Limit = showcase.DefaultLimit
	}
	if opts.GatewayRoute == "" {
		opts.GatewayRoute = showcase.DefaultGatewayRoute
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Orchestrator{
		fetcher: fetcher,
		opts:    opts,
		logger:  logger,
		view:    View{State: NotStarted, Top: []showcase.Ranked{}},
	}
}

// View returns a snapshot of the current state.
func (o *Orchestrator) View() View {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.view
}

// Load fetches profile and repositories for handle concurrently and waits
// for both to settle.
//
// It returns the settled view, [ErrSuperseded] when another Load replaced
// this one first, or ctx.Err() when ctx was cancelled. Section failures do
// not fail Load; they are reported through [View.Err] and the message
// fields of the view.
func (o *Orchestrator) Load(ctx context.Context, handle string) (View, error) {
	invCtx, cancel, gen, id := o.begin(ctx, handle)
	defer cancel()

	hooks := observability.Feed()
	hooks.OnLoadStart(ctx, handle, id)
	o.logger.Debug("Loading feed", "handle", handle, "invocation", id)
	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		p, err := o.fetcher.FetchProfile(invCtx, handle, o.opts.Timeout)
		o.applyProfile(gen, p, err)
	}()
	go func() {
		defer wg.Done()
		repos, err := o.fetcher.FetchRepositories(invCtx, handle, github.ListOptions{
			PerPage: o.opts.PerPage,
			Sort:    o.opts.Sort,
			Timeout: o.opts.Timeout,
		})
		o.applyRepos(gen, repos, err)
	}()
	wg.Wait()

	view, err := o.finish(ctx, gen)
	switch {
	case errors.Is(err, ErrSuperseded):
		o.logger.Debug("Feed load superseded", "handle", handle, "invocation", id)
		hooks.OnLoadComplete(ctx, handle, id, 0, time.Since(start), err)
		return View{}, err
	case err != nil:
		hooks.OnLoadComplete(ctx, handle, id, 0, time.Since(start), err)
		return view, err
	}

	if sectionErr := view.Err(); sectionErr != nil {
		o.logger.Warn("Feed loaded with errors", "handle", handle, "error", view.Error)
	} else {
		o.logger.Debug("Feed loaded", "handle", handle, "repos", len(view.Repos), "elapsed", time.Since(start).Round(time.Millisecond))
	}
	hooks.OnLoadComplete(ctx, handle, id, len(view.Repos), time.Since(start), view.Err())
	return view, nil
}

// begin starts a new invocation, cancelling the current one.
func (o *Orchestrator) begin(ctx context.Context, handle string) (context.Context, context.CancelFunc, uint64, string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.cancel != nil {
		o.cancel()
	}
	o.gen++
	invCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	id := uuid.NewString()
	v := o.view
	if v.Handle != handle {
		v = View{Handle: handle, Top: []showcase.Ranked{}}
	}
	v.Invocation = id
	v.State = Loading
	v.ChartURL = github.ContributionsChartURL(handle)
	v.ProfileError, v.ReposError, v.Error = "", "", ""
	v.profileErr, v.reposErr = nil, nil
	o.view = v

	return invCtx, cancel, o.gen, id
}

func (o *Orchestrator) applyProfile(gen uint64, p *github.Profile, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.gen {
		return
	}
	if err != nil {
		o.view.profileErr = err
		o.view.ProfileError = sectionMessage(err)
		return
	}
	o.view.Profile = p
}

// applyRepos stores a fresh repository list and recomputes the derived
// ranking and statistics. This is the only place they are computed.
func (o *Orchestrator) applyRepos(gen uint64, repos []*github.Repository, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.gen {
		return
	}
	if err != nil {
		o.view.reposErr = err
		o.view.ReposError = sectionMessage(err)
		return
	}
	o.view.Repos = repos
	o.view.Top = showcase.Attach(showcase.Rank(repos, o.opts.Limit), o.opts.Previews, o.opts.GatewayRoute)
	o.view.Stats = showcase.Aggregate(repos)
}

// finish settles invocation gen if it is still current.
func (o *Orchestrator) finish(ctx context.Context, gen uint64) (View, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.gen {
		return View{}, ErrSuperseded
	}
	o.view.State = Settled
	o.view.Error = joinMessages(
		labelled("profile", o.view.ProfileError),
		labelled("repositories", o.view.ReposError),
	)
	o.cancel = nil
	if err := ctx.Err(); err != nil {
		return o.view, err
	}
	return o.view, nil
}

func sectionMessage(err error) string {
	if errors.Is(err, context.Canceled) {
		return "request cancelled"
	}
	return ferrors.UserMessage(err)
}

func labelled(section, msg string) string {
	if msg == "" {
		return ""
	}
	return section + ": " + msg
}
