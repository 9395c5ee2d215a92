package site

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"label": func(p page, key string) string { return p.Locale.Label(key) },
}).ParseFS(templateFS, "templates/*.html"))
