package showcase

import (
	"sort"

	"github.com/matzehuels/folio/pkg/integrations/github"
)

// DefaultLimit is how many repositories the home feed shows.
const DefaultLimit = 6

// Rank returns at most limit original (non-fork) repositories ordered by
// star count, highest first. Ties keep their input order. Nil entries are
// skipped and repos itself is left untouched. A limit of zero or less
// yields an empty result.
func Rank(repos []*github.Repository, limit int) []*github.Repository {
	if limit <= 0 {
		return []*github.Repository{}
	}
	out := make([]*github.Repository, 0, len(repos))
	for _, r := range repos {
		if r == nil || r.Fork {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Stars > out[j].Stars
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Top ranks repos with [DefaultLimit].
func Top(repos []*github.Repository) []*github.Repository {
	return Rank(repos, DefaultLimit)
}
