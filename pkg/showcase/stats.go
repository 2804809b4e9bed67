package showcase

import "github.com/matzehuels/folio/pkg/integrations/github"

// Stats summarises a repository list for the profile header.
type Stats struct {
	RepoCount       int    `json:"repo_count"`
	StarTotal       int    `json:"star_total"`
	ForkTotal       int    `json:"fork_total"`
	PrimaryLanguage string `json:"primary_language"`
}

// Aggregate computes [Stats] over every non-nil, non-fork repository.
//
// The primary language is the one declared by the most repositories; a tie
// goes to the language seen first. Repositories without a language do not
// count towards it.
func Aggregate(repos []*github.Repository) Stats {
	var s Stats
	counts := make(map[string]int)
	var order []string
	for _, r := range repos {
		if r == nil || r.Fork {
			continue
		}
		s.RepoCount++
		s.StarTotal += r.Stars
		s.ForkTotal += r.Forks
		if r.Language == "" {
			continue
		}
		if counts[r.Language] == 0 {
			order = append(order, r.Language)
		}
		counts[r.Language]++
	}

	best := 0
	for _, lang := range order {
		if counts[lang] > best {
			best = counts[lang]
			s.PrimaryLanguage = lang
		}
	}
	return s
}
