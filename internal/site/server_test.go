package site

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/folio/pkg/config"
	ferrors "github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/gateway"
	"github.com/matzehuels/folio/pkg/integrations/github"
)

type stubFetcher struct {
	profileErr error
	reposErr   error
	calls      atomic.Int32
}

func (f *stubFetcher) FetchProfile(_ context.Context, handle string, _ time.Duration) (*github.Profile, error) {
	f.calls.Add(1)
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return &github.Profile{Login: handle, Name: "Mona Lisa", HTMLURL: "https://github.com/" + handle}, nil
}

func (f *stubFetcher) FetchRepositories(context.Context, string, github.ListOptions) ([]*github.Repository, error) {
	f.calls.Add(1)
	if f.reposErr != nil {
		return nil, f.reposErr
	}
	return []*github.Repository{
		{Name: "JsonCraft", Stars: 10, Language: "TypeScript", HTMLURL: "https://github.com/x/JsonCraft"},
		{Name: "plain", Stars: 3, Language: "Go"},
		{Name: "forked", Stars: 99, Fork: true},
	}, nil
}

func reachable(ok bool) gateway.Prober {
	return gateway.ProberFunc(func(context.Context, gateway.Target) bool { return ok })
}

func newTestServer(t *testing.T, f *stubFetcher, prober gateway.Prober) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.GitHub.Handle = "octocat"
	s, err := New(Options{Config: cfg, Fetcher: f, Prober: prober})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestHome(t *testing.T) {
	ts := newTestServer(t, &stubFetcher{}, reachable(true))

	status, body := get(t, ts.URL+"/")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	for _, want := range []string{
		"Mona Lisa",
		"JsonCraft",
		"/mono?target=http%3a%2f%2flocalhost%3a4000%2f",
		"2 repositories",
		"https://ghchart.rshah.org/octocat",
	} {
		if !strings.Contains(strings.ToLower(body), strings.ToLower(want)) {
			t.Errorf("home page missing %q", want)
		}
	}
	if strings.Contains(body, "forked") {
		t.Error("forks must not be listed")
	}
}

func TestHomeDegradesOnError(t *testing.T) {
	f := &stubFetcher{profileErr: ferrors.New(ferrors.ErrCodeForbidden, "rate limit / forbidden (403), try again later")}
	ts := newTestServer(t, f, reachable(true))

	status, body := get(t, ts.URL+"/")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !strings.Contains(body, "rate limit / forbidden (403)") {
		t.Error("error message not shown")
	}
	if !strings.Contains(body, "JsonCraft") {
		t.Error("repositories should still render")
	}
}

func TestAbout(t *testing.T) {
	ts := newTestServer(t, &stubFetcher{}, reachable(true))
	status, body := get(t, ts.URL+"/about")
	if status != http.StatusOK || !strings.Contains(body, "Full Stack Developer") {
		t.Errorf("status = %d, body lacks headline", status)
	}
}

func TestGatewayPage(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		ok        bool
		wantFrame bool
		wantText  string
	}{
		{"ready", "?target=http%3A%2F%2Flocalhost%3A4000%2F", true, true, "http://localhost:4000/"},
		{"unreachable", "?target=http%3A%2F%2Flocalhost%3A4000%2F", false, false, "cannot connect to http://localhost:4000/"},
		{"missing", "", true, false, "no target supplied"},
		{"empty", "?target=", true, false, "no target supplied"},
		{"bad scheme", "?target=ftp%3A%2F%2Fx", true, false, "is not http or https"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, &stubFetcher{}, reachable(tt.ok))
			status, body := get(t, ts.URL+"/mono"+tt.query)
			if status != http.StatusOK {
				t.Fatalf("status = %d", status)
			}
			if got := strings.Contains(body, "<iframe"); got != tt.wantFrame {
				t.Errorf("iframe present = %v, want %v", got, tt.wantFrame)
			}
			if !strings.Contains(htmlUnescape(body), tt.wantText) {
				t.Errorf("body missing %q", tt.wantText)
			}
		})
	}
}

func TestAPIFeed(t *testing.T) {
	ts := newTestServer(t, &stubFetcher{}, reachable(true))

	status, body := get(t, ts.URL+"/api/github/octocat")
	if status != http.StatusOK {
		t.Fatalf("status = %d: %s", status, body)
	}
	var v struct {
		Handle string `json:"handle"`
		State  string `json:"state"`
		Top    []struct {
			Name        string `json:"name"`
			EmbedURL    string `json:"embed_url"`
			PreviewHref string `json:"preview_href"`
		} `json:"top"`
		Stats struct {
			RepoCount int `json:"repo_count"`
			StarTotal int `json:"star_total"`
		} `json:"stats"`
	}
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Handle != "octocat" || v.State != "settled" {
		t.Errorf("view = %+v", v)
	}
	if len(v.Top) != 2 || v.Top[0].Name != "JsonCraft" || v.Top[0].EmbedURL == "" {
		t.Errorf("Top = %+v", v.Top)
	}
	if v.Stats.RepoCount != 2 || v.Stats.StarTotal != 13 {
		t.Errorf("Stats = %+v", v.Stats)
	}
}

func TestAPIFeedErrors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		fetcher    *stubFetcher
		wantStatus int
		wantCalls  int32
	}{
		{"invalid handle", "/api/github/-bad", &stubFetcher{}, http.StatusBadRequest, 0},
		{
			"not found",
			"/api/github/ghost",
			&stubFetcher{
				profileErr: ferrors.New(ferrors.ErrCodeNotFound, "user not found (404)"),
				reposErr:   ferrors.New(ferrors.ErrCodeNotFound, "user not found (404)"),
			},
			http.StatusNotFound,
			2,
		},
		{
			"one section failing is still ok",
			"/api/github/octocat",
			&stubFetcher{reposErr: &ferrors.UpstreamError{Status: 500}},
			http.StatusOK,
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, tt.fetcher, reachable(true))
			status, body := get(t, ts.URL+tt.path)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", status, tt.wantStatus, body)
			}
			if got := tt.fetcher.calls.Load(); got != tt.wantCalls {
				t.Errorf("upstream calls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestAPIProbe(t *testing.T) {
	ts := newTestServer(t, &stubFetcher{}, reachable(true))

	_, body := get(t, ts.URL+"/api/probe?target=HTTP%3A%2F%2FExample.com")
	var v struct {
		State  string `json:"state"`
		Target string `json:"target"`
		Embed  bool   `json:"embed"`
	}
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.State != "ready" || v.Target != "http://example.com/" || !v.Embed {
		t.Errorf("probe view = %+v", v)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, &stubFetcher{}, reachable(true))
	if status, body := get(t, ts.URL+"/healthz"); status != http.StatusOK || body != "ok\n" {
		t.Errorf("healthz = %d %q", status, body)
	}
}

func TestScheduledHomeUsesSnapshot(t *testing.T) {
	f := &stubFetcher{}
	cfg := config.Default()
	cfg.GitHub.Handle = "octocat"
	s, err := New(Options{Config: cfg, Fetcher: f, Prober: reachable(true)})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	s.scheduled = true

	ts := httptest.NewServer(s.Routes())
	defer ts.Close()

	before := f.calls.Load()
	for i := 0; i < 3; i++ {
		get(t, ts.URL+"/")
	}
	if f.calls.Load() != before {
		t.Errorf("scheduled home page fetched upstream %d times", f.calls.Load()-before)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ferrors.New(ferrors.ErrCodeInvalidInput, "x"), http.StatusBadRequest},
		{ferrors.New(ferrors.ErrCodeNotFound, "x"), http.StatusNotFound},
		{ferrors.New(ferrors.ErrCodeForbidden, "x"), http.StatusTooManyRequests},
		{ferrors.New(ferrors.ErrCodeTimeout, "x"), http.StatusGatewayTimeout},
		{&ferrors.UpstreamError{Status: 500}, http.StatusBadGateway},
		{context.Canceled, http.StatusServiceUnavailable},
		{io.EOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func htmlUnescape(s string) string {
	return strings.NewReplacer("&#34;", `"`, "&quot;", `"`, "&amp;", "&", "&#39;", "'", "&lt;", "<", "&gt;", ">").Replace(s)
}
