package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

func testSite(t *testing.T) *content.Site {
	t.Helper()
	site, err := content.NewSite(&content.SiteDescriptor{
		SiteName: "TestPortfolio",
		Pages: []content.PageDescriptor{
			{
				Title: "Home",
				Slug:  "index",
				Sections: []content.SectionDescriptor{
					{Type: "hero", Heading: "Welcome <friends>", Text: "Hello"},
					{Type: "skills", Items: []string{"Go", "SQL"}},
					{Type: "text", Text: "Some **bold** words"},
				},
			},
			{
				Title: "Contact",
				Slug:  "contact",
				Sections: []content.SectionDescriptor{
					{Type: "form", Fields: []string{"full_name", "email", "message"}},
					{Type: "contact", Content: map[string]any{"phone": "555-0100"}},
					{Type: "image", Content: map[string]any{"src": "me.png", "alt": "Me"}},
				},
			},
		},
	})
	require.NoError(t, err)
	return site
}

func renderPage(t *testing.T, site *content.Site, idx int) string {
	t.Helper()
	r, err := NewTemplateRenderer()
	require.NoError(t, err)
	out, err := r.Render(PageTemplate, PageContext(site, site.Pages()[idx]))
	require.NoError(t, err)
	return out
}

func TestRenderHomePage(t *testing.T) {
	out := renderPage(t, testSite(t), 0)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Home - TestPortfolio</title>")
	assert.Contains(t, out, `href="assets/styles.css"`)
	assert.Contains(t, out, `src="assets/script.js"`)
	assert.Contains(t, out, "Welcome &lt;friends&gt;", "headings must be escaped")
	assert.Contains(t, out, "<h2>Skills</h2>", "missing heading falls back to the section type")
	assert.Contains(t, out, "<li>Go</li>")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, `<a href="contact.html">Contact</a>`)

	hero := strings.Index(out, `class="hero"`)
	skills := strings.Index(out, `class="section skills"`)
	text := strings.Index(out, `class="section text"`)
	assert.True(t, hero < skills && skills < text, "sections must render in input order")
}

func TestRenderContactPage(t *testing.T) {
	out := renderPage(t, testSite(t), 1)

	assert.Contains(t, out, `<label for="full_name">Full Name</label>`)
	assert.Contains(t, out, `<input type="email" id="email" name="email">`)
	assert.Contains(t, out, `<textarea id="message" name="message"></textarea>`)
	assert.Contains(t, out, "<dt>Phone</dt>")
	assert.Contains(t, out, "<dd>555-0100</dd>")
	assert.Contains(t, out, `<img src="me.png" alt="Me">`)
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	_, err = r.Render("missing", nil)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryRender))
}

func TestMarkdownDoesNotPassRawHTML(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	out, err := r.markdown("<script>alert(1)</script>\n\ntext")
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
}

func TestVerifyDocument(t *testing.T) {
	require.NoError(t, VerifyDocument("<!DOCTYPE html><html><head></head><body></body></html>"))

	err := VerifyDocument("<div>fragment</div>")
	require.Error(t, err)
	assert.Contains(t, errors.MessageOf(err), "<html>")
}
