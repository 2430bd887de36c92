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

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/fitflow/fitflow-web/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Renderer implements echo.Renderer. Each page template is parsed together with
// the shared layout once at start-up.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough))

	funcs := template.FuncMap{
		"money": formatMoney,
		"date": func(t domain.Timestamp) string {
			if d := t.Date(); d != "" {
				return d
			}
			return "N/A"
		},
		"markdown": func(src string) (template.HTML, error) {
			var buf bytes.Buffer
			if err := md.Convert([]byte(src), &buf); err != nil {
				return "", err
			}
			// goldmark drops raw HTML unless html.WithUnsafe is set.
			return template.HTML(buf.String()), nil
		},
		"add":   func(a, b int) int { return a + b },
		"lower": strings.ToLower,
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, f := range files {
		if f == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(f), ".html")
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, layoutFile, f)
		if err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", f, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes the named page inside the layout.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

func formatMoney(v any) string {
	switch d := v.(type) {
	case decimal.Decimal:
		return "KES " + d.StringFixed(2)
	case decimal.NullDecimal:
		if !d.Valid {
			return "N/A"
		}
		return "KES " + d.Decimal.StringFixed(2)
	}
	return fmt.Sprint(v)
}
