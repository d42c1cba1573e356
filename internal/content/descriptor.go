package content

// SiteDescriptor is the caller-supplied description of a site.
type SiteDescriptor struct {
	SiteName string           `json:"siteName" yaml:"siteName"`
	Pages    []PageDescriptor `json:"pages" yaml:"pages"`
}

// PageDescriptor describes one page of a site.
type PageDescriptor struct {
	Title    string              `json:"title" yaml:"title"`
	Slug     string              `json:"slug" yaml:"slug"`
	Sections []SectionDescriptor `json:"sections" yaml:"sections"`
}

// SectionDescriptor is the loosely typed wire form of a section. Which fields are meaningful
// depends on Type; NewSite keeps only those.
type SectionDescriptor struct {
	Type    string         `json:"type" yaml:"type"`
	Heading string         `json:"heading,omitempty" yaml:"heading,omitempty"`
	Text    string         `json:"text,omitempty" yaml:"text,omitempty"`
	Items   []string       `json:"items,omitempty" yaml:"items,omitempty"`
	Fields  []string       `json:"fields,omitempty" yaml:"fields,omitempty"`
	Content map[string]any `json:"content,omitempty" yaml:"content,omitempty"`
}
