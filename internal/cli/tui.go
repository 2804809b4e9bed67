package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/folio/pkg/feed"
	"github.com/matzehuels/folio/pkg/gateway"
)

// List styles
var (
	listDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	listErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// runFeedTUI loads handle in an interactive browser and blocks until the
// user quits.
func runFeedTUI(ctx context.Context, orch *feed.Orchestrator, prober gateway.Prober, handle string) error {
	m := NewFeedModel(ctx, orch, prober, handle)
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(FeedModel); ok && fm.Err != nil && !errors.Is(fm.Err, feed.ErrSuperseded) {
		return fm.Err
	}
	return nil
}

// =============================================================================
// FeedModel - Interactive feed browser
// =============================================================================

// feedLoadedMsg carries the result of a feed load.
type feedLoadedMsg struct {
	view feed.View
	err  error
}

// probeMsg carries the gateway result for one repository preview.
type probeMsg struct {
	name string
	view gateway.View
}

// FeedModel is the bubbletea model for browsing a feed. Enter probes the
// selected repository's preview through the gateway; r reloads the feed.
type FeedModel struct {
	ctx    context.Context
	orch   *feed.Orchestrator
	prober gateway.Prober
	handle string

	Spinner spinner.Model
	Loading bool
	Feed    feed.View
	Err     error
	Cursor  int
	Probes  map[string]gateway.View
	Probing map[string]bool
}

// NewFeedModel creates a feed model that starts loading on Init.
func NewFeedModel(ctx context.Context, orch *feed.Orchestrator, prober gateway.Prober, handle string) FeedModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleIconSpinner
	return FeedModel{
		ctx:     ctx,
		orch:    orch,
		prober:  prober,
		handle:  handle,
		Spinner: s,
		Loading: true,
		Probes:  make(map[string]gateway.View),
		Probing: make(map[string]bool),
	}
}

func (m FeedModel) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, m.load())
}

func (m FeedModel) load() tea.Cmd {
	orch, ctx, handle := m.orch, m.ctx, m.handle
	return func() tea.Msg {
		v, err := orch.Load(ctx, handle)
		return feedLoadedMsg{view: v, err: err}
	}
}

func (m FeedModel) probe(name, target string) tea.Cmd {
	prober, ctx := m.prober, m.ctx
	return func() tea.Msg {
		return probeMsg{name: name, view: gateway.Resolve(ctx, prober, target)}
	}
}

func (m FeedModel) busy() bool {
	return m.Loading || len(m.Probing) > 0
}

func (m FeedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case feedLoadedMsg:
		if errors.Is(msg.err, feed.ErrSuperseded) {
			return m, nil
		}
		m.Loading = false
		m.Err = msg.err
		if msg.err == nil {
			m.Feed = msg.view
		}
		if m.Cursor >= len(m.Feed.Top) {
			m.Cursor = max(len(m.Feed.Top)-1, 0)
		}

	case probeMsg:
		delete(m.Probing, msg.name)
		m.Probes[msg.name] = msg.view

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m FeedModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Feed.Top)-1 {
			m.Cursor++
		}
	case "r":
		if m.Loading {
			return m, nil
		}
		wasBusy := m.busy()
		m.Loading = true
		return m, m.withTick(wasBusy, m.load())
	case "enter", "p":
		if m.Cursor >= len(m.Feed.Top) {
			return m, nil
		}
		r := m.Feed.Top[m.Cursor]
		if !r.HasPreview() || m.Probing[r.Name] {
			return m, nil
		}
		wasBusy := m.busy()
		m.Probing[r.Name] = true
		return m, m.withTick(wasBusy, m.probe(r.Name, r.EmbedURL))
	}
	return m, nil
}

// withTick restarts the spinner when the model was idle.
func (m FeedModel) withTick(wasBusy bool, cmd tea.Cmd) tea.Cmd {
	if wasBusy {
		return cmd
	}
	return tea.Batch(m.Spinner.Tick, cmd)
}

func (m FeedModel) View() string {
	var b strings.Builder

	title := m.handle
	if p := m.Feed.Profile; p != nil {
		title = p.DisplayName() + " " + StyleDim.Render("@"+p.Login)
	}
	b.WriteString(StyleTitle.Render(title))
	if m.Loading {
		b.WriteString("  " + m.Spinner.View() + StyleDim.Render(" loading"))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ probe preview  r reload  q quit"))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(listErrorStyle.Render(iconError + " " + m.Err.Error()))
		b.WriteString("\n\n")
	}
	if m.Feed.Error != "" {
		b.WriteString(StyleWarning.Render(iconWarning + " " + m.Feed.Error))
		b.WriteString("\n\n")
	}

	if len(m.Feed.Top) == 0 {
		if !m.Loading {
			b.WriteString(listDimStyle.Render("  no repositories"))
			b.WriteString("\n")
		}
		return b.String()
	}

	b.WriteString(renderStats(m.Feed.Stats))
	b.WriteString("\n")
	b.WriteString(renderTopTable(m.Feed, m.Cursor, m.previewStatus()))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Feed.Top))))

	return b.String()
}

// previewStatus renders probe progress and results per repository.
func (m FeedModel) previewStatus() map[string]string {
	status := make(map[string]string, len(m.Probes)+len(m.Probing))
	for name, v := range m.Probes {
		switch v.State {
		case gateway.Ready:
			status[name] = iconSuccess + " " + v.Target.String()
		default:
			status[name] = iconError + " " + v.Message
		}
	}
	for name := range m.Probing {
		status[name] = m.Spinner.View() + " checking"
	}
	return status
}
