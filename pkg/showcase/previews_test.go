package showcase

import (
	"testing"

	"github.com/matzehuels/folio/pkg/integrations/github"
)

func TestPreviewLink(t *testing.T) {
	tests := []struct {
		route, target, want string
	}{
		{"/mono", "http://localhost:4000/", "/mono?target=http%3A%2F%2Flocalhost%3A4000%2F"},
		{"", "http://localhost:3000/document", "/mono?target=http%3A%2F%2Flocalhost%3A3000%2Fdocument"},
		{"/mono", "", "/mono?target="},
		{"/gw", "https://x.dev/a b?q=1&r=2", "/gw?target=https%3A%2F%2Fx.dev%2Fa+b%3Fq%3D1%26r%3D2"},
	}

	for _, tt := range tests {
		if got := PreviewLink(tt.route, tt.target); got != tt.want {
			t.Errorf("PreviewLink(%q, %q) = %q, want %q", tt.route, tt.target, got, tt.want)
		}
	}
}

func TestAttach(t *testing.T) {
	repos := []*github.Repository{
		{Name: "JsonCraft", Stars: 9},
		nil,
		{Name: "jsoncraft", Stars: 1},
		{Name: "other", Stars: 3},
	}

	got := Attach(repos, DefaultPreviews(), "")
	if len(got) != 3 {
		t.Fatalf("len(Attach()) = %d, want 3", len(got))
	}

	if !got[0].HasPreview() || got[0].EmbedURL != "http://localhost:4000/" {
		t.Errorf("JsonCraft EmbedURL = %q", got[0].EmbedURL)
	}
	if got[0].PreviewHref != "/mono?target=http%3A%2F%2Flocalhost%3A4000%2F" {
		t.Errorf("JsonCraft PreviewHref = %q", got[0].PreviewHref)
	}
	if got[1].HasPreview() {
		t.Error("lookup must be case-sensitive")
	}
	if got[2].PreviewHref != "/mono?target=" {
		t.Errorf("no-preview PreviewHref = %q, want empty target", got[2].PreviewHref)
	}
	if got[2].Name != "other" {
		t.Errorf("embedded repository not promoted: %q", got[2].Name)
	}
}

func TestPreviewTableNil(t *testing.T) {
	var table PreviewTable
	if got := table.Lookup("JsonCraft"); got != "" {
		t.Errorf("nil table Lookup() = %q", got)
	}
}
