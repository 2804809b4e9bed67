package github

import "time"

// Profile is the public profile of a GitHub user.
type Profile struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
	Bio       string `json:"bio"`
}

// DisplayName returns the user's name, or the login when no name is set.
func (p *Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Login
}

// Repository summarises one public repository.
//
// Counts missing from the upstream payload decode as zero.
type Repository struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	HTMLURL     string `json:"html_url"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
	Language    string `json:"language"`
	Fork        bool   `json:"fork"`
}

// ListOptions controls a repository listing request.
type ListOptions struct {
	PerPage int           // Page size, 1-100 (default 100)
	Sort    string        // One of created, updated, pushed, full_name (default updated)
	Timeout time.Duration // Per-request deadline (default integrations.DefaultTimeout)
}
