package content

import (
	"fmt"
	"sort"
)

// SectionType names a section variant.
type SectionType string

const (
	SectionHero    SectionType = "hero"
	SectionSkills  SectionType = "skills"
	SectionForm    SectionType = "form"
	SectionText    SectionType = "text"
	SectionImage   SectionType = "image"
	SectionContact SectionType = "contact"
	SectionAbout   SectionType = "about"
)

// supportedTypes is ordered as it appears in validation messages.
var supportedTypes = []SectionType{
	SectionHero, SectionSkills, SectionForm, SectionText, SectionImage, SectionContact, SectionAbout,
}

// SupportedSectionTypes returns the accepted section types in canonical order.
func SupportedSectionTypes() []SectionType {
	return append([]SectionType(nil), supportedTypes...)
}

// IsSupported reports whether t is one of the accepted section types.
func (t SectionType) IsSupported() bool {
	for _, s := range supportedTypes {
		if s == t {
			return true
		}
	}
	return false
}

// Section is a validated, typed page section. The set of implementations is closed.
type Section interface {
	Type() SectionType
	sealed()
}

// Hero is a page banner with a heading and lead text.
type Hero struct {
	Heading string
	Text    string
}

// Skills is a heading over a list of short labels.
type Skills struct {
	Heading string
	items   []string
}

// Form is a contact form with one input per field name.
type Form struct {
	Heading string
	fields  []string
}

// Text is a block of Markdown prose.
type Text struct {
	Heading string
	Body    string
}

// Image is a single figure.
type Image struct {
	Heading string
	Src     string
	Alt     string
	Caption string
}

// Detail is one labelled contact entry.
type Detail struct {
	Label string
	Value string
}

// Contact is a heading, intro text and labelled contact details.
type Contact struct {
	Heading string
	Text    string
	details []Detail
}

// About is a biography paragraph with optional highlights.
type About struct {
	Heading string
	Text    string
	items   []string
}

func (Hero) Type() SectionType    { return SectionHero }
func (Skills) Type() SectionType  { return SectionSkills }
func (Form) Type() SectionType    { return SectionForm }
func (Text) Type() SectionType    { return SectionText }
func (Image) Type() SectionType   { return SectionImage }
func (Contact) Type() SectionType { return SectionContact }
func (About) Type() SectionType   { return SectionAbout }

func (Hero) sealed()    {}
func (Skills) sealed()  {}
func (Form) sealed()    {}
func (Text) sealed()    {}
func (Image) sealed()   {}
func (Contact) sealed() {}
func (About) sealed()   {}

// Items returns a copy of the skill labels.
func (s Skills) Items() []string { return cloneStrings(s.items) }

// Fields returns a copy of the form field names.
func (f Form) Fields() []string { return cloneStrings(f.fields) }

// Details returns a copy of the contact details, sorted by label.
func (c Contact) Details() []Detail { return append([]Detail(nil), c.details...) }

// Items returns a copy of the highlights.
func (a About) Items() []string { return cloneStrings(a.items) }

// newSection converts a descriptor whose type has already been validated.
func newSection(d SectionDescriptor) Section {
	switch SectionType(d.Type) {
	case SectionHero:
		return Hero{Heading: d.Heading, Text: d.Text}
	case SectionSkills:
		return Skills{Heading: d.Heading, items: cloneStrings(d.Items)}
	case SectionForm:
		return Form{Heading: d.Heading, fields: cloneStrings(d.Fields)}
	case SectionText:
		return Text{Heading: d.Heading, Body: d.Text}
	case SectionImage:
		return Image{
			Heading: d.Heading,
			Src:     stringValue(d.Content, "src"),
			Alt:     stringValue(d.Content, "alt"),
			Caption: stringValue(d.Content, "caption"),
		}
	case SectionContact:
		return Contact{Heading: d.Heading, Text: d.Text, details: details(d.Content)}
	case SectionAbout:
		return About{Heading: d.Heading, Text: d.Text, items: cloneStrings(d.Items)}
	default:
		panic(fmt.Sprintf("content: unvalidated section type %q", d.Type))
	}
}

func details(m map[string]any) []Detail {
	if len(m) == 0 {
		return nil
	}
	out := make([]Detail, 0, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		out = append(out, Detail{Label: k, Value: fmt.Sprint(v)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

func stringValue(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
