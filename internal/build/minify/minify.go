// Package minify holds the whitespace-collapsing text transforms applied to built files.
// They are regular-expression heuristics, not syntax-aware minifiers: whitespace inside string
// literals or <pre> blocks is collapsed too.
package minify

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Transform rewrites file content.
type Transform func(string) string

// space is ASCII whitespace including vertical tab, which RE2's \s leaves out.
const space = `[\t\n\v\f\r ]`

var (
	whitespace       = regexp.MustCompile(space + `+`)
	betweenTags      = regexp.MustCompile(`>` + space + `+<`)
	semicolonBrace   = regexp.MustCompile(`;` + space + `*}`)
	aroundOpenBrace  = regexp.MustCompile(space + `*{` + space + `*`)
	aroundCloseBrace = regexp.MustCompile(space + `*}` + space + `*`)
)

// HTML collapses whitespace runs, then drops whitespace between adjacent tags.
func HTML(s string) string {
	s = whitespace.ReplaceAllString(s, " ")
	return betweenTags.ReplaceAllString(s, "><")
}

// CSS collapses whitespace, drops a semicolon before a closing brace and trims whitespace
// around braces.
func CSS(s string) string {
	s = whitespace.ReplaceAllString(s, " ")
	s = semicolonBrace.ReplaceAllString(s, "}")
	s = aroundOpenBrace.ReplaceAllString(s, "{")
	return aroundCloseBrace.ReplaceAllString(s, "}")
}

// JS collapses whitespace and drops a semicolon before a closing brace.
func JS(s string) string {
	s = whitespace.ReplaceAllString(s, " ")
	return semicolonBrace.ReplaceAllString(s, "}")
}

var byExtension = map[string]Transform{
	".html": HTML,
	".css":  CSS,
	".js":   JS,
}

// ForExtension returns the transform for a file extension (case-insensitive, with leading dot),
// or false when files of that type are copied unchanged.
func ForExtension(ext string) (Transform, bool) {
	t, ok := byExtension[strings.ToLower(ext)]
	return t, ok
}

// ForPath is ForExtension applied to the extension of path.
func ForPath(path string) (Transform, bool) {
	return ForExtension(filepath.Ext(path))
}
