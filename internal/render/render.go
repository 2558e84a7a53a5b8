// FilePath: internal/render/render.go

// Package render wraps html/template with a per-page layout composition so
// handlers stay free of template plumbing.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"time"
)

const layoutFile = "templates/layout.html"

var funcs = template.FuncMap{
	"fmtTime": func(t time.Time) string {
		if t.IsZero() {
			return "N/A"
		}
		return t.Format("02/01/2006 15:04")
	},
	"fmtHour": func(t time.Time) string {
		return t.Format("2006-01-02 15:00")
	},
	"pct": func(f float64) string {
		return fmt.Sprintf("%.1f%%", f*100)
	},
}

// Renderer holds one compiled template set per page, each page parsed
// against the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page template under templates/pages against the layout.
func New(fsys fs.FS) (*Renderer, error) {
	entries, err := fs.Glob(fsys, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list page templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(entries))
	for _, entry := range entries {
		name := path.Base(entry)
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(fsys, layoutFile, entry)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{pages: pages}, nil
}

// Render executes the named page into a buffer first so a template error
// never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page template %q", page)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, data); err != nil {
		return fmt.Errorf("failed to execute %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
