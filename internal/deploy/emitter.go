// Package deploy writes the platform manifests that accompany a built site: Apache rewrite and
// cache rules, a Netlify configuration and a README with deployment instructions.
package deploy

import (
	"bytes"
	"embed"
	"os"
	"path/filepath"
	"text/template"

	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

// Manifest file names, in emission order.
const (
	HtaccessFile = ".htaccess"
	NetlifyFile  = "netlify.toml"
	ReadmeFile   = "README.md"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var manifests = []struct {
	file     string
	template string
}{
	{HtaccessFile, "htaccess.tmpl"},
	{NetlifyFile, "netlify.toml.tmpl"},
	{ReadmeFile, "README.md.tmpl"},
}

var templates = template.Must(template.New("deploy").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).ParseFS(templateFS, "templates/*.tmpl"))

// Files returns the manifest file names Emit writes.
func Files() []string {
	out := make([]string, len(manifests))
	for i, m := range manifests {
		out[i] = m.file
	}
	return out
}

// Emit writes every manifest into buildPath, interpolating siteName where a manifest mentions
// it. The first failing write aborts.
func Emit(buildPath, siteName string) error {
	data := struct {
		SiteName  string
		Platforms []Platform
	}{siteName, platforms}

	for _, m := range manifests {
		var buf bytes.Buffer
		if err := templates.ExecuteTemplate(&buf, m.template, data); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "failed to render deployment manifest").
				WithContext("file", m.file).
				Build()
		}
		path := filepath.Join(buildPath, m.file)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to write deployment manifest").
				WithContext("path", path).
				Build()
		}
	}
	return nil
}
