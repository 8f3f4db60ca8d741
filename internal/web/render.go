package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/foti-africa/foti-web/internal/catalog"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticFS returns the embedded stylesheet and scripts rooted at static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Renderer implements gin's render.HTMLRender with one template set per
// page, each combining the shared layout and partials with the page body.
type Renderer struct {
	pages map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

// NewRenderer parses every page under templates/pages.
func NewRenderer() (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("list page templates: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".html")
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			file,
		)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Instance implements render.HTMLRender. An unknown page name panics,
// which gin.Recovery turns into a 500.
func (r *Renderer) Instance(name string, data any) render.Render {
	tmpl, ok := r.pages[name]
	if !ok {
		panic(fmt.Sprintf("web: unknown page template %q", name))
	}
	return render.HTML{Template: tmpl, Name: "layout", Data: data}
}

var usdPrinter = message.NewPrinter(language.AmericanEnglish)

// formatUSD renders whole dollars with thousands separators, e.g. $1,200.
func formatUSD(amount int) string {
	return usdPrinter.Sprintf("$%d", amount)
}

// Raw HTML in model output is dropped and dangerous link schemes are
// stripped by goldmark's default renderer.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// renderMarkdown converts assistant replies to HTML.
func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src)) //nolint:gosec // escaped
	}
	return template.HTML(buf.String()) //nolint:gosec // goldmark output without WithUnsafe
}

// studentName returns the student's name or the anonymous placeholder.
func studentName(s *catalog.Student) string {
	if s == nil {
		return "FoTI Scholar"
	}
	return s.Name
}

var templateFuncs = template.FuncMap{
	"usd":         formatUSD,
	"markdown":    renderMarkdown,
	"studentName": studentName,
	"date":        func(t time.Time) string { return t.Format(time.DateOnly) },
}
