package config

// About is the content of the résumé page.
type About struct {
	Name       string       `toml:"name"`
	Headline   string       `toml:"headline"`
	Summary    string       `toml:"summary"`
	Links      []Link       `toml:"links"`
	Experience []Experience `toml:"experience"`
	Skills     []string     `toml:"skills"`
}

// Link is a labelled external link.
type Link struct {
	Label string `toml:"label"`
	URL   string `toml:"url"`
}

// Experience is one position on the résumé.
type Experience struct {
	Title        string   `toml:"title"`
	Organization string   `toml:"organization"`
	Summary      string   `toml:"summary"`
	Bullets      []string `toml:"bullets"`
}

// DefaultAbout returns placeholder résumé content.
func DefaultAbout() About {
	return About{
		Name:     "Kornpak Sittikool",
		Headline: "Full Stack Developer",
		Summary: "Backend-focused full-stack developer experienced in designing and implementing " +
			"reliable web systems and business workflows.",
		Links: []Link{
			{Label: "GitHub", URL: "https://github.com/kornpakSittikool"},
			{Label: "LinkedIn", URL: "https://www.linkedin.com/in/kornpak-sittikool-528b39239/"},
		},
		Skills: []string{"TypeScript", "Next.js", "NestJS", "Docker", "Postgres", "MongoDB"},
	}
}
