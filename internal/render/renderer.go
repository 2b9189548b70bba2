package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/lox/skycast/internal/htmlutil"
	"github.com/lox/skycast/internal/metrics"
)

//go:embed templates/*
var templateFS embed.FS

// Partials that can be rendered on their own.
var partials = map[string]string{
	"current":  "current.html",
	"forecast": "forecast.html",
	"map":      "map.html",
}

var ErrUnknownPartial = errors.New("unknown partial")

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() *Renderer {
	funcs := template.FuncMap{
		"upper": strings.ToUpper,
	}
	return &Renderer{
		tmpl: template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")),
	}
}

// Page writes the full HTML document.
func (r *Renderer) Page(w io.Writer, p Page) error {
	return r.execute(w, "index.html", p)
}

// Partial writes one fragment by short name ("current", "forecast", "map").
func (r *Renderer) Partial(w io.Writer, name string, p Page) error {
	file, ok := partials[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPartial, name)
	}
	return r.execute(w, file, p)
}

// Text renders the summary as plain text.
func (r *Renderer) Text(p Page) (string, error) {
	var buf bytes.Buffer
	if err := r.execute(&buf, "summary.html", p); err != nil {
		return "", err
	}
	return htmlutil.ToText(buf.String()), nil
}

func (r *Renderer) execute(w io.Writer, name string, p Page) error {
	if err := r.tmpl.ExecuteTemplate(w, name, p); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	metrics.PageRenders.WithLabelValues(name).Inc()
	return nil
}
