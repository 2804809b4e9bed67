package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/folio/pkg/observability"
)

// logHooks reports observability events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

// registerHooks routes every hook category to logger. Events only show up
// with --verbose since they are logged at debug level.
func registerHooks(logger *log.Logger) {
	h := &logHooks{logger: logger}
	observability.SetFeedHooks(h)
	observability.SetGatewayHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h *logHooks) OnLoadStart(_ context.Context, handle, invocation string) {
	h.logger.Debug("Feed load started", "handle", handle, "invocation", invocation)
}

func (h *logHooks) OnLoadComplete(_ context.Context, handle, invocation string, repoCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Feed load settled with errors", "handle", handle, "invocation", invocation, "repos", repoCount, "duration", d.Round(time.Millisecond), "error", err)
		return
	}
	h.logger.Debug("Feed load settled", "handle", handle, "invocation", invocation, "repos", repoCount, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnProbeStart(_ context.Context, target string) {
	h.logger.Debug("Probing", "target", target)
}

func (h *logHooks) OnProbeComplete(_ context.Context, target string, reachable bool, d time.Duration) {
	h.logger.Debug("Probe finished", "target", target, "reachable", reachable, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("Cache hit", "key", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("Cache miss", "key", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("Cache set", "key", keyType, "bytes", size)
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("Request", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("Response", "method", method, "host", host, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("Request failed", "method", method, "host", host, "path", path, "error", err)
}
