// Package web renders the embedded HTML pages. Templates are presentation
// glue only, the handlers decide what data and errors they show.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/todoweb/todoweb/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Form carries submitted values and their errors back into a re-rendered
// page. Values lets a failed form keep the user's input.
type Form struct {
	Values      map[string]string
	FieldErrors model.FieldErrors
	FormErrors  []string
}

// NewForm creates an empty form state.
func NewForm() Form {
	return Form{Values: map[string]string{}}
}

// FieldError returns the first error message for the named field.
func (f Form) FieldError(field string) string {
	if msgs := f.FieldErrors[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Renderer renders named page templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: templates}, nil
}

// Render writes the named page to the response. The template executes into
// a buffer first so a rendering failure becomes a 500 instead of a torn
// page.
func (r *Renderer) Render(w http.ResponseWriter, name string, data any) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}
