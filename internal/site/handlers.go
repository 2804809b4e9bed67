package site

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/folio/pkg/config"
	ferrors "github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/feed"
	"github.com/matzehuels/folio/pkg/gateway"
	"github.com/matzehuels/folio/pkg/integrations/github"
)

type homePage struct {
	View  feed.View
	About config.About
}

type gatewayPage struct {
	View gateway.View
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	v, err := s.homeView(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.logger.Warn("Home feed unavailable", "error", err)
	}
	s.render(w, http.StatusOK, "home", homePage{View: v, About: s.cfg.About})
}

// homeView returns the scheduled snapshot when a refresh schedule runs,
// and loads a fresh feed otherwise.
func (s *Server) homeView(ctx context.Context) (feed.View, error) {
	if s.scheduled {
		if v := s.home.View(); v.State != feed.NotStarted {
			return v, nil
		}
	}
	o := feed.New(s.fetcher, s.feedOptions())
	return o.Load(ctx, s.cfg.GitHub.Handle)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "about", s.cfg.About)
}

func (s *Server) handleGateway(w http.ResponseWriter, r *http.Request) {
	v := gateway.Resolve(r.Context(), s.prober, r.URL.Query().Get("target"))
	s.render(w, http.StatusOK, "mono", gatewayPage{View: v})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func (s *Server) handleAPIFeed(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	if err := github.ValidateHandle(handle); err != nil {
		writeError(w, err)
		return
	}

	o := feed.New(s.fetcher, s.feedOptions())
	v, err := o.Load(r.Context(), handle)
	if err != nil {
		writeError(w, err)
		return
	}
	status := http.StatusOK
	if v.ProfileErr() != nil && v.ReposErr() != nil {
		status = statusFor(v.ProfileErr())
	}
	writeJSON(w, status, v)
}

func (s *Server) handleAPIProbe(w http.ResponseWriter, r *http.Request) {
	v := gateway.Resolve(r.Context(), s.prober, r.URL.Query().Get("target"))
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("Render failed", "template", name, "error", err)
	}
}

type errorBody struct {
	Code    ferrors.Code `json:"code,omitempty"`
	Message string       `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorBody{
		Code:    ferrors.GetCode(err),
		Message: ferrors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// statusFor maps an error onto the HTTP status returned to API callers.
func statusFor(err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, feed.ErrSuperseded) {
		return http.StatusServiceUnavailable
	}
	switch ferrors.GetCode(err) {
	case ferrors.ErrCodeInvalidInput, ferrors.ErrCodeInvalidTarget:
		return http.StatusBadRequest
	case ferrors.ErrCodeNotFound:
		return http.StatusNotFound
	case ferrors.ErrCodeForbidden, ferrors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ferrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ferrors.ErrCodeUpstream, ferrors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
