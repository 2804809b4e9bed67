package showcase

import (
	"testing"

	"github.com/matzehuels/folio/pkg/integrations/github"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name  string
		repos []*github.Repository
		want  Stats
	}{
		{
			name: "forks excluded",
			repos: []*github.Repository{
				{Name: "a", Stars: 50, Forks: 3, Language: "Go"},
				{Name: "b", Stars: 5, Forks: 1, Language: "Go"},
				{Name: "c", Stars: 500, Forks: 90, Language: "Rust", Fork: true},
			},
			want: Stats{RepoCount: 2, StarTotal: 55, ForkTotal: 4, PrimaryLanguage: "Go"},
		},
		{
			name: "language tie goes to first seen",
			repos: []*github.Repository{
				{Language: "TypeScript"},
				{Language: "Go"},
				{Language: "Go"},
				{Language: "TypeScript"},
			},
			want: Stats{RepoCount: 4, PrimaryLanguage: "TypeScript"},
		},
		{
			name: "undeclared languages ignored",
			repos: []*github.Repository{
				{Stars: 1},
				{Stars: 2},
				{Stars: 3, Language: "C"},
			},
			want: Stats{RepoCount: 3, StarTotal: 6, PrimaryLanguage: "C"},
		},
		{
			name:  "no language",
			repos: []*github.Repository{{Stars: 1}},
			want:  Stats{RepoCount: 1, StarTotal: 1},
		},
		{
			name:  "nil entries skipped",
			repos: []*github.Repository{nil, {Stars: 2}},
			want:  Stats{RepoCount: 1, StarTotal: 2},
		},
		{
			name: "empty",
			want: Stats{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Aggregate(tt.repos); got != tt.want {
				t.Errorf("Aggregate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
