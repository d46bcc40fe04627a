// Package views turns query results into page view models and renders them
// through gin with the embedded HTML templates.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"github.com/JonasLeetTheWay/fyyur-go/internal/timefmt"
	"github.com/gin-gonic/gin/render"
)

//go:embed templates
var templateFS embed.FS

const layout = "templates/layouts/main.html"

// Renderer is a gin HTMLRender with one template set per page, each made of
// the shared layout plus the page's "content" block.
type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"datetime": datetime,
		"join":     strings.Join,
		"has":      has,
	}

	r := &Renderer{templates: make(map[string]*template.Template)}
	for _, dir := range []string{"pages", "forms", "errors"} {
		pages, err := fs.Glob(templateFS, "templates/"+dir+"/*.html")
		if err != nil {
			return nil, err
		}
		for _, page := range pages {
			t, err := template.New("main.html").Funcs(funcs).ParseFS(templateFS, layout, page)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", page, err)
			}
			r.templates[strings.TrimPrefix(page, "templates/")] = t
		}
	}
	return r, nil
}

func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.templates[name]
	if !ok {
		panic("views: unknown template " + name)
	}
	return render.HTML{Template: t, Name: "main.html", Data: data}
}

// datetime is the template filter: {{datetime .StartTime "full"}}.
func datetime(value string, format ...string) string {
	preset := timefmt.Medium
	if len(format) > 0 {
		preset = format[0]
	}
	out, err := timefmt.Format(value, preset)
	if err != nil {
		return value
	}
	return out
}

func has(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
