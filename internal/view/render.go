package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Template names
const (
	TemplatePage           = "page"
	TemplateResults        = "results"
	TemplateResultsPartial = "results-partial"
	TemplateGrid           = "grid"
	TemplateGridPartial    = "grid-partial"
	TemplateQuote          = "quote"
)

// Renderer executes the page templates. html/template escapes every value,
// so backend text never becomes markup.
type Renderer struct {
	tpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tpl, err := template.New("").Funcs(template.FuncMap{
		"placeholder": func() string { return PlaceholderPoster },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tpl: tpl}, nil
}

// Render executes template name with data.
func (r *Renderer) Render(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// StaticFS returns the embedded static assets rooted at static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
