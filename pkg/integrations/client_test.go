package integrations

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	ferrors "github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/httputil"
)

func TestNewClient(t *testing.T) {
	headers := map[string]string{"Accept": "application/json"}
	client := NewClient(nil, headers)

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.headers["Accept"] != "application/json" {
		t.Error("NewClient() headers not set correctly")
	}
}

func TestClientGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Write([]byte(`{"message":"hello"}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), nil)

	resp, err := client.Get(context.Background(), server.URL, "thing", time.Second)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Errorf("Status = %d, want 200", resp.Status)
	}
	if !resp.Payload.IsObject() {
		t.Errorf("payload should be a JSON object, got %q", resp.Payload.Text)
	}
}

func TestClientGetSendsDefaultHeaders(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header.Get("Accept")
	}))
	defer server.Close()

	client := NewClient(server.Client(), map[string]string{"Accept": "application/vnd.github+json"})
	if _, err := client.Get(context.Background(), server.URL, "", time.Second); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if received != "application/vnd.github+json" {
		t.Errorf("Accept = %q, want %q", received, "application/vnd.github+json")
	}
}

func TestClientGetSingleAttempt(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.Client(), nil)
	_, err := client.Get(context.Background(), server.URL, "", time.Second)
	if !ferrors.Is(err, ferrors.ErrCodeUpstream) {
		t.Fatalf("Get() error = %v, want UPSTREAM_ERROR", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server saw %d calls, want exactly 1", got)
	}
}

func TestClientGetTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.Client(), nil)
	start := time.Now()
	_, err := client.Get(context.Background(), server.URL, "", 50*time.Millisecond)
	if !ferrors.Is(err, ferrors.ErrCodeTimeout) {
		t.Fatalf("Get() error = %v, want TIMEOUT", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took %v, request was not aborted", elapsed)
	}
}

func TestClientGetParentCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	client := NewClient(server.Client(), nil)
	_, err := client.Get(ctx, server.URL, "", 5*time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Get() error = %v, want context.Canceled", err)
	}
}

func TestClientGetNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(nil, nil)
	_, err := client.Get(context.Background(), url, "", time.Second)
	if !ferrors.Is(err, ferrors.ErrCodeNetwork) {
		t.Errorf("Get() error = %v, want NETWORK_ERROR", err)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name        string
		code        int
		body        string
		wantCode    ferrors.Code
		wantMessage string
	}{
		{name: "200 OK", code: 200},
		{name: "204 No Content", code: 204},
		{
			name:        "404 Not Found",
			code:        404,
			wantCode:    ferrors.ErrCodeNotFound,
			wantMessage: "user not found (404)",
		},
		{
			name:        "403 Forbidden",
			code:        403,
			body:        `{"message":"API rate limit exceeded"}`,
			wantCode:    ferrors.ErrCodeForbidden,
			wantMessage: "rate limit / forbidden (403)",
		},
		{
			name:        "429 Too Many Requests",
			code:        429,
			wantCode:    ferrors.ErrCodeRateLimited,
			wantMessage: "too many requests (429)",
		},
		{
			name:        "500 with text body",
			code:        500,
			body:        "server down",
			wantCode:    ferrors.ErrCodeUpstream,
			wantMessage: "github api error: 500 - server down",
		},
		{
			name:        "400 with json body",
			code:        400,
			body:        `{"message": "bad"}`,
			wantCode:    ferrors.ErrCodeUpstream,
			wantMessage: `github api error: 400 - {"message":"bad"}`,
		},
		{
			name:        "502 empty body",
			code:        502,
			wantCode:    ferrors.ErrCodeUpstream,
			wantMessage: "github api error: 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckStatus(tt.code, httputil.ParsePayload([]byte(tt.body)), "user")

			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("CheckStatus() unexpected error: %v", err)
				}
				return
			}
			if !ferrors.Is(err, tt.wantCode) {
				t.Fatalf("CheckStatus() error = %v, want code %s", err, tt.wantCode)
			}
			if msg := ferrors.UserMessage(err); !strings.Contains(msg, tt.wantMessage) {
				t.Errorf("message = %q, want it to contain %q", msg, tt.wantMessage)
			}
		})
	}
}

func TestCheckStatusExcerptBounded(t *testing.T) {
	body := strings.Repeat("e", 500)
	err := CheckStatus(500, httputil.ParsePayload([]byte(body)), "")

	var ue *ferrors.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %T", err)
	}
	if len(ue.Excerpt) != ferrors.MaxExcerpt {
		t.Errorf("excerpt length = %d, want %d", len(ue.Excerpt), ferrors.MaxExcerpt)
	}
	if ue.Status != 500 {
		t.Errorf("Status = %d, want 500", ue.Status)
	}
}

func TestPathEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"octocat", "octocat"},
		{"octo cat", "octo%20cat"},
		{"a/b", "a%2Fb"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := PathEscape(tt.input); got != tt.want {
			t.Errorf("PathEscape(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
