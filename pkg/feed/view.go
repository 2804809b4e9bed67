package feed

import (
	"errors"
	"strings"

	"github.com/matzehuels/folio/pkg/integrations/github"
	"github.com/matzehuels/folio/pkg/showcase"
)

// View is a snapshot of the orchestrator for renderers.
//
// Profile and Repos hold the latest successfully fetched data for Handle;
// a failed section keeps what was there before and records its error.
// Top and Stats are derived from Repos when it is applied.
type View struct {
	Handle     string               `json:"handle"`
	Invocation string               `json:"invocation,omitempty"`
	State      LoadState            `json:"state"`
	Profile    *github.Profile      `json:"profile,omitempty"`
	Repos      []*github.Repository `json:"-"`
	Top        []showcase.Ranked    `json:"top"`
	Stats      showcase.Stats       `json:"stats"`
	ChartURL   string               `json:"chart_url,omitempty"`

	ProfileError string `json:"profile_error,omitempty"`
	ReposError   string `json:"repos_error,omitempty"`
	Error        string `json:"error,omitempty"`

	profileErr error
	reposErr   error
}

// Err returns the section errors of the last settled load joined together,
// or nil when both sections succeeded.
func (v View) Err() error {
	return errors.Join(v.profileErr, v.reposErr)
}

// ProfileErr returns the error of the profile section, if any.
func (v View) ProfileErr() error { return v.profileErr }

// ReposErr returns the error of the repository section, if any.
func (v View) ReposErr() error { return v.reposErr }

// joinMessages combines section messages the way the page banner shows them.
func joinMessages(msgs ...string) string {
	var parts []string
	for _, m := range msgs {
		if m != "" {
			parts = append(parts, m)
		}
	}
	return strings.Join(parts, "; ")
}
