package site

import (
	"embed"
	"html/template"
	"strings"

	"github.com/matzehuels/folio/pkg/buildinfo"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"version": func() string { return buildinfo.Version },
	"join":    strings.Join,
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}
