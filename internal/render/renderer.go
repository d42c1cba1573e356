// Package render turns a site page into an HTML document. Renderer is the capability the
// generator depends on; TemplateRenderer is the built-in implementation backed by embedded
// html/template files.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

// PageTemplate is the name of the full-document template.
const PageTemplate = "page"

// Keys of the render context passed to PageTemplate.
const (
	KeySite     = "site"
	KeyPage     = "page"
	KeySections = "sections"
)

// Renderer renders a named template with a context map into a string.
type Renderer interface {
	Render(templateName string, data map[string]any) (string, error)
}

//go:embed templates/*.html
var templateFS embed.FS

// TemplateRenderer renders pages with the embedded templates.
type TemplateRenderer struct {
	tmpl     *template.Template
	md       goldmark.Markdown
	titler   cases.Caser
	titlerMu sync.Mutex
}

// NewTemplateRenderer parses the embedded templates.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	r := &TemplateRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
		titler: cases.Title(language.English),
	}
	tmpl, err := template.New("sitebuilder").Funcs(template.FuncMap{
		"section":   r.renderSection,
		"markdown":  r.markdown,
		"heading":   r.heading,
		"label":     r.label,
		"inputType": inputType,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to parse page templates").Build()
	}
	r.tmpl = tmpl
	return r, nil
}

// Render executes templateName with data. For PageTemplate the result is additionally checked
// to be a complete HTML document.
func (r *TemplateRenderer) Render(templateName string, data map[string]any) (string, error) {
	if r.tmpl.Lookup(templateName) == nil {
		return "", errors.RenderError(fmt.Sprintf("unknown template: %s", templateName)).Build()
	}
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, templateName, data); err != nil {
		return "", errors.WrapError(err, errors.CategoryRender, "failed to execute template").
			WithContext("template", templateName).
			Build()
	}
	out := buf.String()
	if templateName == PageTemplate {
		if err := VerifyDocument(out); err != nil {
			return "", err
		}
	}
	return out, nil
}

// PageContext builds the context map for rendering page of site.
func PageContext(site *content.Site, page content.Page) map[string]any {
	return map[string]any{
		KeySite:     site,
		KeyPage:     page,
		KeySections: page.Sections(),
	}
}

func (r *TemplateRenderer) renderSection(s content.Section) (template.HTML, error) {
	name := "section-" + string(s.Type())
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, s); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil //nolint:gosec // produced by html/template
}

func (r *TemplateRenderer) markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil //nolint:gosec // goldmark escapes raw HTML unless WithUnsafe
}

// heading returns h, or a title-cased fallback derived from the section type.
func (r *TemplateRenderer) heading(h string, sectionType string) string {
	if strings.TrimSpace(h) != "" {
		return h
	}
	return r.title(sectionType)
}

// label turns a field or detail key such as "first_name" into "First Name".
func (r *TemplateRenderer) label(key string) string {
	return r.title(strings.NewReplacer("_", " ", "-", " ").Replace(key))
}

// title serializes access to the caser, which keeps internal state.
func (r *TemplateRenderer) title(s string) string {
	r.titlerMu.Lock()
	defer r.titlerMu.Unlock()
	return r.titler.String(s)
}

func inputType(field string) string {
	switch strings.ToLower(field) {
	case "email":
		return "email"
	case "phone", "tel":
		return "tel"
	case "website", "url":
		return "url"
	default:
		return "text"
	}
}
