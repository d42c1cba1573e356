package content

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

// Format identifies a descriptor encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath infers the descriptor format from a file extension.
func FormatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// Load reads and decodes the descriptor file at path.
func Load(path string) (*SiteDescriptor, error) {
	format, ok := FormatForPath(path)
	if !ok {
		return nil, errors.ValidationError("unsupported descriptor file extension").
			WithContext("path", path).
			Build()
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError(fmt.Sprintf("descriptor file not found: %s", path)).
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open descriptor").
			WithContext("path", path).
			Build()
	}
	defer func() { _ = f.Close() }()
	return Decode(f, format)
}

// Decode parses a descriptor from r. Unknown fields are rejected in both formats.
func Decode(r io.Reader, format Format) (*SiteDescriptor, error) {
	var desc SiteDescriptor
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&desc); err != nil {
			return nil, decodeError(err, format)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&desc); err != nil {
			if stdErrors.Is(err, io.EOF) {
				return &desc, nil
			}
			return nil, decodeError(err, format)
		}
	default:
		return nil, errors.ValidationError(fmt.Sprintf("unsupported descriptor format: %s", format)).Build()
	}
	return &desc, nil
}

func decodeError(err error, format Format) error {
	return errors.WrapError(err, errors.CategoryValidation, "invalid site descriptor").
		WithContext("format", string(format)).
		UserAction().
		Build()
}
