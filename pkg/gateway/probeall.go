package gateway

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency caps parallel probes in [ProbeAll].
const DefaultConcurrency = 4

// ProbeAll resolves every raw target with at most concurrency probes in
// flight. Results are returned in input order. A concurrency of zero or
// less selects [DefaultConcurrency].
func ProbeAll(ctx context.Context, prober Prober, raws []string, concurrency int) []View {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	views := make([]View, len(raws))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, raw := range raws {
		g.Go(func() error {
			views[i] = Resolve(ctx, prober, raw)
			return nil
		})
	}
	g.Wait()
	return views
}
