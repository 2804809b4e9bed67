package showcase

import (
	"net/url"

	"github.com/matzehuels/folio/pkg/integrations/github"
)

// DefaultGatewayRoute is the site route that embeds previews.
const DefaultGatewayRoute = "/mono"

// PreviewTable maps a repository name to the URL of a locally running
// preview of it. Lookups are exact and case-sensitive.
type PreviewTable map[string]string

// DefaultPreviews returns the preview endpoints known out of the box.
func DefaultPreviews() PreviewTable {
	return PreviewTable{
		"JsonCraft":           "http://localhost:4000/",
		"NestJs-Microservice": "http://localhost:3000/document",
	}
}

// Lookup returns the preview URL for name, or "" when none is registered.
func (t PreviewTable) Lookup(name string) string {
	return t[name]
}

// Ranked is a repository decorated for display.
type Ranked struct {
	*github.Repository
	EmbedURL    string `json:"embed_url,omitempty"`
	PreviewHref string `json:"preview_href"`
}

// HasPreview reports whether a preview URL is registered for the repository.
func (r Ranked) HasPreview() bool { return r.EmbedURL != "" }

// Attach decorates repos with their preview URLs and gateway links.
// Every entry gets a link; repositories without a preview link to an empty
// target so the gateway explains that nothing was supplied. An empty route
// selects [DefaultGatewayRoute].
func Attach(repos []*github.Repository, previews PreviewTable, route string) []Ranked {
	out := make([]Ranked, 0, len(repos))
	for _, r := range repos {
		if r == nil {
			continue
		}
		embed := previews.Lookup(r.Name)
		out = append(out, Ranked{
			Repository:  r,
			EmbedURL:    embed,
			PreviewHref: PreviewLink(route, embed),
		})
	}
	return out
}

// PreviewLink builds the internal gateway link for target.
func PreviewLink(route, target string) string {
	if route == "" {
		route = DefaultGatewayRoute
	}
	return route + "?target=" + url.QueryEscape(target)
}
