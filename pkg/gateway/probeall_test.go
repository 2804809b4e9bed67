package gateway

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestProbeAll(t *testing.T) {
	var inFlight, peak atomic.Int32
	p := ProberFunc(func(_ context.Context, target Target) bool {
		n := inFlight.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)
		return target != "http://down.example/"
	})

	raws := []string{
		"http://a.example",
		"ftp://nope",
		"http://down.example/",
		"http://b.example",
		"http://c.example",
	}
	views := ProbeAll(context.Background(), p, raws, 2)

	if len(views) != len(raws) {
		t.Fatalf("len = %d, want %d", len(views), len(raws))
	}
	want := []State{Ready, Unavailable, Unavailable, Ready, Ready}
	for i, v := range views {
		if v.Raw != raws[i] {
			t.Errorf("views[%d].Raw = %q, order not preserved", i, v.Raw)
		}
		if v.State != want[i] {
			t.Errorf("views[%d].State = %s, want %s", i, v.State, want[i])
		}
	}
	if peak.Load() > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", peak.Load())
	}
}

func TestProbeAllEmpty(t *testing.T) {
	if views := ProbeAll(context.Background(), &HTTPProber{}, nil, 0); len(views) != 0 {
		t.Errorf("ProbeAll(nil) = %v", views)
	}
}
