package integrations

import (
	"context"
	"errors"
	"net/http"
	"time"

	ferrors "github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/httputil"
	"github.com/matzehuels/folio/pkg/observability"
)

// Client provides shared HTTP functionality for upstream API clients.
// It applies default headers, a per-call deadline and status classification.
// Each call is a single attempt; nothing is cached or retried.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client over httpClient with the given default headers.
// Headers are applied to all requests made through this client.
// Pass nil for httpClient to use a plain client, nil for headers if no
// default headers are needed.
func NewClient(httpClient *http.Client, headers map[string]string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		http:    httpClient,
		headers: headers,
	}
}

// Response is a fully read upstream answer with a 2xx status.
type Response struct {
	Status  int
	Payload httputil.Payload
}

// Get performs an HTTP GET bounded by timeout (zero selects [DefaultTimeout]).
//
// The body is read completely before the deadline is released. A non-2xx
// status is classified by [CheckStatus] using subject to name the missing
// resource. Transport failures become NETWORK_ERROR, an expired deadline
// becomes TIMEOUT, and cancellation of ctx itself is returned unchanged so
// callers can tell a superseded call from a failed one.
func (c *Client) Get(ctx context.Context, url, subject string, timeout time.Duration) (*Response, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidInput, err, "build request")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, http.MethodGet, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodGet, host, path, err)
		return nil, classifyTransport(ctx, err, timeout)
	}
	defer resp.Body.Close()

	body, err := httputil.ReadBody(resp.Body)
	if err != nil {
		hooks.OnError(ctx, http.MethodGet, host, path, err)
		return nil, classifyTransport(ctx, err, timeout)
	}
	hooks.OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	payload := httputil.ParsePayload(body)
	if err := CheckStatus(resp.StatusCode, payload, subject); err != nil {
		return nil, err
	}
	return &Response{Status: resp.StatusCode, Payload: payload}, nil
}

// CheckStatus maps an HTTP status onto the error taxonomy.
// 2xx statuses return nil.
func CheckStatus(code int, payload httputil.Payload, subject string) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		if subject == "" {
			subject = "resource"
		}
		return ferrors.New(ferrors.ErrCodeNotFound, "%s not found (404)", subject)
	case code == http.StatusForbidden:
		return ferrors.New(ferrors.ErrCodeForbidden, "rate limit / forbidden (403), try again later")
	case code == http.StatusTooManyRequests:
		return ferrors.New(ferrors.ErrCodeRateLimited, "too many requests (429), request quota exhausted")
	default:
		return &ferrors.UpstreamError{Status: code, Excerpt: payload.Excerpt(ferrors.MaxExcerpt)}
	}
}

func classifyTransport(ctx context.Context, err error, timeout time.Duration) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ferrors.Wrap(ferrors.ErrCodeTimeout, err, "request timed out after %s", timeout)
	}
	return ferrors.Wrap(ferrors.ErrCodeNetwork, err, "network failure")
}
