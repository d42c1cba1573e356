package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

const portfolioJSON = `{
  "siteName": "TestPortfolio",
  "pages": [
    {"title": "Home", "slug": "index", "sections": [
      {"type": "hero", "heading": "Welcome", "text": "Hi"},
      {"type": "skills", "items": ["Go", "SQL"]}
    ]},
    {"title": "Contact", "slug": "contact", "sections": [{"type": "form", "fields": ["name"]}]}
  ]
}`

const portfolioYAML = `siteName: TestPortfolio
pages:
  - title: Home
    slug: index
    sections:
      - type: hero
        heading: Welcome
        text: Hi
      - type: skills
        items: [Go, SQL]
  - title: Contact
    slug: contact
    sections:
      - type: form
        fields: [name]
`

func TestDecodeJSONAndYAMLAgree(t *testing.T) {
	fromJSON, err := Decode(strings.NewReader(portfolioJSON), FormatJSON)
	require.NoError(t, err)
	fromYAML, err := Decode(strings.NewReader(portfolioYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
	assert.NoError(t, Validate(fromJSON))
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"siteName":"x","theme":"dark"}`), FormatJSON)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	_, err = Decode(strings.NewReader("siteName: x\ntheme: dark\n"), FormatYAML)
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "site.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(portfolioJSON), 0o600))

	desc, err := Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "TestPortfolio", desc.SiteName)
	assert.Len(t, desc.Pages, 2)

	_, err = Load(filepath.Join(dir, "missing.yml"))
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))

	_, err = Load(filepath.Join(dir, "site.toml"))
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}
