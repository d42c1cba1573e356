package content

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

// Structural limits on descriptor fields.
const (
	MaxSiteNameLength    = 100
	MaxPageTitleLength   = 200
	MaxSlugLength        = 100
	MaxSectionTypeLength = 50
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Validate checks desc and returns the first violation as a validation error. Checks run in a
// fixed order: site, pages, each page with its sections, then slug uniqueness.
func Validate(desc *SiteDescriptor) error {
	if desc == nil {
		return invalid("site cannot be nil").Build()
	}
	if err := ValidateSiteName(desc.SiteName); err != nil {
		return err
	}
	if len(desc.Pages) == 0 {
		return invalid("site must have at least one page").Build()
	}

	for i := range desc.Pages {
		if err := validatePage(i, &desc.Pages[i]); err != nil {
			return err
		}
	}

	slugs := make(map[string]struct{}, len(desc.Pages))
	for _, p := range desc.Pages {
		slugs[p.Slug] = struct{}{}
	}
	if len(slugs) != len(desc.Pages) {
		return invalid("page slugs must be unique").Build()
	}
	return nil
}

// ValidateSiteName checks that name is usable as a single directory below a root. Every
// component that joins a site name onto a root calls this first.
func ValidateSiteName(name string) error {
	if isBlank(name) {
		return invalid("site name cannot be blank").Build()
	}
	if utf8.RuneCountInString(name) > MaxSiteNameLength {
		return invalid(fmt.Sprintf("site name must be at most %d characters", MaxSiteNameLength)).Build()
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || !filepath.IsLocal(name) {
		return invalid("site name must be a single directory name").
			WithContext("site", name).
			Build()
	}
	return nil
}

func validatePage(idx int, p *PageDescriptor) error {
	fail := func(msg string) error {
		return invalid(msg).WithContext("page", idx).WithContext("slug", p.Slug).Build()
	}
	switch {
	case isBlank(p.Title):
		return fail("page title cannot be blank")
	case utf8.RuneCountInString(p.Title) > MaxPageTitleLength:
		return fail(fmt.Sprintf("page title must be at most %d characters", MaxPageTitleLength))
	case isBlank(p.Slug):
		return fail("page slug cannot be blank")
	case utf8.RuneCountInString(p.Slug) > MaxSlugLength:
		return fail(fmt.Sprintf("page slug must be at most %d characters", MaxSlugLength))
	case !slugPattern.MatchString(p.Slug):
		return fail("page slug can only contain lowercase letters, numbers, and hyphens")
	case len(p.Sections) == 0:
		return fail("page must have at least one section")
	}
	for j, s := range p.Sections {
		if msg := sectionProblem(s); msg != "" {
			return invalid(msg).
				WithContext("page", idx).
				WithContext("slug", p.Slug).
				WithContext("section", j).
				Build()
		}
	}
	return nil
}

func sectionProblem(s SectionDescriptor) string {
	if isBlank(s.Type) {
		return "section type cannot be blank"
	}
	if utf8.RuneCountInString(s.Type) > MaxSectionTypeLength {
		return fmt.Sprintf("section type must be at most %d characters", MaxSectionTypeLength)
	}
	if !SectionType(s.Type).IsSupported() {
		return fmt.Sprintf("unsupported section type: %s. Supported types: %s", s.Type, supportedList())
	}
	return ""
}

func supportedList() string {
	names := make([]string, len(supportedTypes))
	for i, t := range supportedTypes {
		names[i] = string(t)
	}
	return "[" + strings.Join(names, ", ") + "]"
}

func invalid(msg string) *errors.ErrorBuilder {
	return errors.ValidationError(msg)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
