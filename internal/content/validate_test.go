package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

// portfolio returns a well-formed two page site.
func portfolio() *SiteDescriptor {
	return &SiteDescriptor{
		SiteName: "TestPortfolio",
		Pages: []PageDescriptor{
			{
				Title: "Home",
				Slug:  "index",
				Sections: []SectionDescriptor{
					{Type: "hero", Heading: "Welcome", Text: "Hi there"},
					{Type: "skills", Heading: "Skills", Items: []string{"Go", "SQL"}},
				},
			},
			{
				Title:    "Contact",
				Slug:     "contact",
				Sections: []SectionDescriptor{{Type: "form", Fields: []string{"name", "email"}}},
			},
		},
	}
}

func TestValidateAcceptsWellFormedSite(t *testing.T) {
	require.NoError(t, Validate(portfolio()))
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SiteDescriptor) *SiteDescriptor
		want   string
	}{
		{"nil site", func(*SiteDescriptor) *SiteDescriptor { return nil }, "site cannot be nil"},
		{"blank name", func(d *SiteDescriptor) *SiteDescriptor { d.SiteName = "   "; return d }, "site name cannot be blank"},
		{"long name", func(d *SiteDescriptor) *SiteDescriptor { d.SiteName = strings.Repeat("n", 101); return d }, "site name must be at most 100 characters"},
		{"parent name", func(d *SiteDescriptor) *SiteDescriptor { d.SiteName = ".."; return d }, "site name must be a single directory name"},
		{"dot name", func(d *SiteDescriptor) *SiteDescriptor { d.SiteName = "."; return d }, "site name must be a single directory name"},
		{"traversal name", func(d *SiteDescriptor) *SiteDescriptor { d.SiteName = "../escaped"; return d }, "site name must be a single directory name"},
		{"nested name", func(d *SiteDescriptor) *SiteDescriptor { d.SiteName = "a/b"; return d }, "site name must be a single directory name"},
		{"backslash name", func(d *SiteDescriptor) *SiteDescriptor { d.SiteName = `a\b`; return d }, "site name must be a single directory name"},
		{"no pages", func(d *SiteDescriptor) *SiteDescriptor { d.Pages = nil; return d }, "site must have at least one page"},
		{"blank title", func(d *SiteDescriptor) *SiteDescriptor { d.Pages[1].Title = ""; return d }, "page title cannot be blank"},
		{"blank slug", func(d *SiteDescriptor) *SiteDescriptor { d.Pages[0].Slug = ""; return d }, "page slug cannot be blank"},
		{"slug pattern", func(d *SiteDescriptor) *SiteDescriptor { d.Pages[0].Slug = "About_Me"; return d }, "page slug can only contain lowercase letters, numbers, and hyphens"},
		{"no sections", func(d *SiteDescriptor) *SiteDescriptor { d.Pages[1].Sections = nil; return d }, "page must have at least one section"},
		{"blank section type", func(d *SiteDescriptor) *SiteDescriptor { d.Pages[0].Sections[1].Type = " "; return d }, "section type cannot be blank"},
		{
			"unsupported type",
			func(d *SiteDescriptor) *SiteDescriptor { d.Pages[0].Sections[0].Type = "carousel"; return d },
			"unsupported section type: carousel. Supported types: [hero, skills, form, text, image, contact, about]",
		},
		{"duplicate slug", func(d *SiteDescriptor) *SiteDescriptor { d.Pages[1].Slug = "index"; return d }, "page slugs must be unique"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.mutate(portfolio()))
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryValidation), "expected validation category, got %v", err)
			assert.Equal(t, tt.want, errors.MessageOf(err))
		})
	}
}

func TestValidateFirstFailureWins(t *testing.T) {
	d := portfolio()
	d.Pages[0].Title = ""
	d.Pages[1].Slug = "index"

	err := Validate(d)
	require.Error(t, err)
	assert.Equal(t, "page title cannot be blank", errors.MessageOf(err))
}

func TestValidateSectionWithoutOptionalFields(t *testing.T) {
	d := portfolio()
	d.Pages[0].Sections = []SectionDescriptor{{Type: "hero"}}
	assert.NoError(t, Validate(d))
}

func TestValidateSlugsAreCaseSensitive(t *testing.T) {
	d := portfolio()
	d.Pages[1].Slug = "index-2"
	assert.NoError(t, Validate(d))
}

func TestValidateErrorContext(t *testing.T) {
	d := portfolio()
	d.Pages[1].Sections[0].Type = "video"

	err := Validate(d)
	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	page, _ := ce.Context().Get("page")
	section, _ := ce.Context().Get("section")
	slug, _ := ce.Context().GetString("slug")
	assert.Equal(t, 1, page)
	assert.Equal(t, 0, section)
	assert.Equal(t, "contact", slug)
}

func TestValidateIsDeterministic(t *testing.T) {
	d := portfolio()
	d.Pages[0].Sections[0].Type = "banner"
	first := Validate(d)
	second := Validate(d)
	require.Error(t, first)
	assert.Equal(t, first.Error(), second.Error())
}

func TestValidateSiteNameAllowsSpacesAndCase(t *testing.T) {
	require.NoError(t, ValidateSiteName("My Portfolio"))
	require.NoError(t, ValidateSiteName("site.v2"))
}
