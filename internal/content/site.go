package content

// Site is a validated site: a name and its ordered pages.
type Site struct {
	name  string
	pages []Page
}

// Page is one validated page.
type Page struct {
	title    string
	slug     string
	sections []Section
}

// IndexSlug is the slug rendered to index.html.
const IndexSlug = "index"

// NewSite validates desc and converts it into an immutable Site.
func NewSite(desc *SiteDescriptor) (*Site, error) {
	if err := Validate(desc); err != nil {
		return nil, err
	}
	site := &Site{name: desc.SiteName, pages: make([]Page, 0, len(desc.Pages))}
	for _, pd := range desc.Pages {
		page := Page{title: pd.Title, slug: pd.Slug, sections: make([]Section, 0, len(pd.Sections))}
		for _, sd := range pd.Sections {
			page.sections = append(page.sections, newSection(sd))
		}
		site.pages = append(site.pages, page)
	}
	return site, nil
}

// Name returns the site name.
func (s *Site) Name() string { return s.name }

// Pages returns a copy of the pages in input order.
func (s *Site) Pages() []Page { return append([]Page(nil), s.pages...) }

// PageCount returns the number of pages.
func (s *Site) PageCount() int { return len(s.pages) }

func (p Page) Title() string { return p.title }
func (p Page) Slug() string  { return p.slug }

// Sections returns a copy of the sections in input order.
func (p Page) Sections() []Section { return append([]Section(nil), p.sections...) }

// FileName is index.html for the index slug, otherwise <slug>.html.
func (p Page) FileName() string {
	return FileNameForSlug(p.slug)
}

// FileNameForSlug maps a page slug to its output file name.
func FileNameForSlug(slug string) string {
	if slug == IndexSlug {
		return "index.html"
	}
	return slug + ".html"
}
