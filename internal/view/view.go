// Package view renders the catalog pages from embedded html/template files.
//
// Every page is parsed together with layout.html into its own template set,
// so pages can all define "content" without clashing. Text fields that were
// escaped by the validation pipeline are written with the safe function.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/forgo/library/internal/model"
)

// ViewError is the name of the error page
const ViewError = "error"

//go:embed templates
var templateFS embed.FS

// Renderer renders named views
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every embedded page
func New() (*Renderer, error) {
	return NewFromFS(templateFS)
}

// NewFromFS parses the pages under templates/ in fsys
func NewFromFS(fsys fs.FS) (*Renderer, error) {
	names, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range names {
		base := strings.TrimSuffix(path.Base(name), ".html")
		if base == "layout" {
			continue
		}

		tmpl, err := template.New(base).Funcs(funcs).ParseFS(fsys, "templates/layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		r.pages[base] = tmpl
	}

	if _, ok := r.pages[ViewError]; !ok {
		return nil, fmt.Errorf("missing %s template", ViewError)
	}
	return r, nil
}

// Has reports whether a view exists
func (r *Renderer) Has(view string) bool {
	_, ok := r.pages[view]
	return ok
}

// Render writes the view with its view-model to w. The page is rendered
// into a buffer first so a failing template writes nothing.
func (r *Renderer) Render(w io.Writer, view string, data map[string]any) error {
	tmpl, ok := r.pages[view]
	if !ok {
		return fmt.Errorf("unknown view %q", view)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("rendering %s: %w", view, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// RenderError writes the error page for a failed request
func (r *Renderer) RenderError(w io.Writer, problem *model.ProblemDetails) error {
	return r.Render(w, ViewError, map[string]any{
		"title": problem.Title,
		"error": problem,
	})
}

var funcs = template.FuncMap{
	// safe marks text that was escaped when it was submitted
	"safe": func(s string) template.HTML {
		return template.HTML(s) // #nosec G203
	},
	"same": func(a, b any) bool {
		return fmt.Sprint(a) == fmt.Sprint(b)
	},
	"statusClass": func(s model.BookInstanceStatus) string {
		switch s {
		case model.StatusAvailable:
			return "text-success"
		case model.StatusMaintenance:
			return "text-danger"
		default:
			return "text-warning"
		}
	},
}
