package web

import (
	"fmt"
	"html/template"
)

const layoutTemplate = "templates/layout.html"

// pageTemplates lists the page files parsed together with the layout.
var pageTemplates = []string{"home", "problem", "error", "search", "stats"}

// loadTemplates parses every page once with the shared layout
func loadTemplates() (map[string]*template.Template, error) {
	out := make(map[string]*template.Template, len(pageTemplates))
	for _, name := range pageTemplates {
		tmpl, err := template.New(name).ParseFS(EmbeddedTemplatesFS, layoutTemplate, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		out[name] = tmpl
	}
	return out, nil
}
