package web

import (
	"embed"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses the embedded pages. Every page includes the shared
// "header" and "footer" partials.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "templates/*.html")
}

// MustTemplates panics if the embedded templates do not parse.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"datetime": func(t time.Time) string {
			return t.Local().Format("2006-01-02 15:04")
		},
		"label": func(s string) string {
			return strings.ReplaceAll(s, "_", " ")
		},
	}
}
