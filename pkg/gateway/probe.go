package gateway

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/folio/pkg/observability"
)

// DefaultProbeTimeout bounds a reachability probe when none is configured.
const DefaultProbeTimeout = 5 * time.Second

// Prober decides whether a target is reachable.
// Implementations must honour ctx and never block past its cancellation.
type Prober interface {
	Probe(ctx context.Context, target Target) bool
}

// ProberFunc adapts a function to the [Prober] interface.
type ProberFunc func(ctx context.Context, target Target) bool

// Probe calls f.
func (f ProberFunc) Probe(ctx context.Context, target Target) bool { return f(ctx, target) }

// HTTPProber probes a target with a single uncached GET.
//
// Any HTTP response counts as reachable, including 4xx and 5xx: the point
// is to learn whether something answers at the address, not whether the
// page is healthy. Transport errors, timeouts and cancellation count as
// unreachable. Probe never returns an error.
type HTTPProber struct {
	Client  *http.Client  // nil selects a plain client
	Timeout time.Duration // zero selects DefaultProbeTimeout
}

// Probe implements [Prober].
func (p *HTTPProber) Probe(ctx context.Context, target Target) bool {
	if target.IsZero() {
		return false
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	client := p.Client
	if client == nil {
		client = &http.Client{}
	}

	hooks := observability.Gateway()
	hooks.OnProbeStart(ctx, target.String())
	start := time.Now()
	ok := p.do(ctx, client, target, timeout)
	hooks.OnProbeComplete(ctx, target.String(), ok, time.Since(start))
	return ok
}

func (p *HTTPProber) do(ctx context.Context, client *http.Client, target Target, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return false
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
	return true
}
