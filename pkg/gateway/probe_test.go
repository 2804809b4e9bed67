package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPProber(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"ok", http.StatusOK},
		{"not found", http.StatusNotFound},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cacheControl string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				cacheControl = r.Header.Get("Cache-Control")
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			p := &HTTPProber{Client: server.Client(), Timeout: time.Second}
			if !p.Probe(context.Background(), Target(server.URL+"/")) {
				t.Errorf("Probe() = false for status %d, want true", tt.status)
			}
			if cacheControl != "no-store" {
				t.Errorf("Cache-Control = %q, want no-store", cacheControl)
			}
		})
	}
}

func TestHTTPProberUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	target := Target(server.URL + "/")
	server.Close()

	p := &HTTPProber{Timeout: time.Second}
	if p.Probe(context.Background(), target) {
		t.Error("Probe() = true for closed server")
	}
}

func TestHTTPProberTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	p := &HTTPProber{Client: server.Client(), Timeout: 30 * time.Millisecond}
	start := time.Now()
	if p.Probe(context.Background(), Target(server.URL+"/")) {
		t.Error("Probe() = true for hanging server")
	}
	if time.Since(start) > 2*time.Second {
		t.Error("probe ignored its timeout")
	}
}

func TestHTTPProberZeroTarget(t *testing.T) {
	p := &HTTPProber{}
	if p.Probe(context.Background(), "") {
		t.Error("Probe() = true for zero target")
	}
}
