package gateway

import (
	"context"
	"sync"

	"github.com/google/uuid"

	ferrors "github.com/matzehuels/folio/pkg/errors"
)

// State is the availability of the current target.
type State int

const (
	Checking State = iota
	Ready
	Unavailable
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Ready:
		return "ready"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

const checkingMessage = "checking target..."

// View is a snapshot of a gateway invocation.
type View struct {
	Invocation string `json:"invocation"`
	State      State  `json:"state"`
	Raw        string `json:"raw"`
	Target     Target `json:"target,omitempty"`
	Message    string `json:"message,omitempty"`
	Embed      bool   `json:"embed"`
}

// Gateway tracks the availability of one changing target.
//
// Each [Gateway.SetTarget] starts a new invocation and cancels the probe of
// the previous one. A probe result is applied only while its invocation is
// still current, so a slow answer for an old target never overwrites the
// state of a newer one.
type Gateway struct {
	prober Prober

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	view    View
	settled chan struct{}
}

// New creates a Gateway that probes with prober.
func New(prober Prober) *Gateway {
	done := make(chan struct{})
	close(done)
	return &Gateway{
		prober:  prober,
		view:    View{State: Unavailable},
		settled: done,
	}
}

// SetTarget switches the gateway to raw.
//
// The state becomes Checking until the probe settles. A missing or invalid
// target settles as Unavailable at once without touching the network. A
// previous invocation still Checking is released: its Settled channel is
// closed and its probe result will be ignored.
func (g *Gateway) SetTarget(ctx context.Context, raw string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	if g.view.State == Checking {
		close(g.settled)
	}
	g.gen++
	gen := g.gen
	g.settled = make(chan struct{})
	g.view = View{
		Invocation: uuid.NewString(),
		State:      Checking,
		Raw:        raw,
		Message:    checkingMessage,
	}

	target, err := Normalize(raw)
	if err != nil {
		g.view.State = Unavailable
		g.view.Message = ferrors.UserMessage(err)
		close(g.settled)
		return
	}
	g.view.Target = target

	probeCtx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	go func() {
		ok := g.prober.Probe(probeCtx, target)
		g.settle(gen, ok)
	}()
}

// settle applies a probe result if gen is still the current invocation.
func (g *Gateway) settle(gen uint64, reachable bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if gen != g.gen || g.view.State != Checking {
		return
	}
	if reachable {
		g.view.State = Ready
		g.view.Message = ""
		g.view.Embed = true
	} else {
		g.view.State = Unavailable
		g.view.Message = "cannot connect to " + g.view.Target.String()
	}
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	close(g.settled)
}

// View returns a snapshot of the current invocation.
func (g *Gateway) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.view
}

// Settled returns a channel that is closed once the current invocation
// leaves the Checking state or is superseded by a later [Gateway.SetTarget].
// After a wake-up, [Gateway.View] reports the newest invocation.
func (g *Gateway) Settled() <-chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.settled
}

// Close cancels any probe in flight. The pending invocation settles as
// Unavailable once the prober observes the cancellation.
func (g *Gateway) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
	}
}

// Resolve runs a single invocation for raw and waits for it to settle.
// If ctx ends first the invocation is abandoned as Unavailable.
func Resolve(ctx context.Context, prober Prober, raw string) View {
	g := New(prober)
	g.SetTarget(ctx, raw)

	g.mu.Lock()
	gen, settled := g.gen, g.settled
	g.mu.Unlock()

	select {
	case <-settled:
	case <-ctx.Done():
		g.settle(gen, false)
	}
	return g.View()
}
