// Package inventory answers read-only questions about the generation and build roots: which
// sites have been generated and whether a site has been built.
package inventory

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

// BuildState is the build status of a site.
type BuildState string

const (
	StateNotBuilt BuildState = "NOT_BUILT"
	StateBuilt    BuildState = "BUILT"
)

// Status messages.
const (
	MessageNotBuilt = "Site has not been built yet"
	MessageBuilt    = "Site is ready for deployment"
)

// Status describes the build of one site.
type Status struct {
	SiteName  string     `json:"siteName"`
	BuildPath *string    `json:"buildPath"`
	Status    BuildState `json:"status"`
	Message   string     `json:"message"`
	FileCount int        `json:"fileCount"`
}

// Inventory inspects a generation root and a build root.
type Inventory struct {
	generationRoot string
	buildRoot      string
}

// New returns an Inventory over the given roots.
func New(generationRoot, buildRoot string) *Inventory {
	return &Inventory{generationRoot: generationRoot, buildRoot: buildRoot}
}

// ListAvailableSites returns the names of the immediate subdirectories of the generation root,
// sorted. An absent or empty root yields an empty slice.
func (i *Inventory) ListAvailableSites() ([]string, error) {
	entries, err := os.ReadDir(i.generationRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to list sites").
			WithContext("path", i.generationRoot).
			Build()
	}
	sites := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			sites = append(sites, e.Name())
		}
	}
	sort.Strings(sites)
	return sites, nil
}

// BuildStatus reports whether siteName has a build directory and, if so, how many files it
// holds (manifests included). It never creates anything.
func (i *Inventory) BuildStatus(siteName string) (*Status, error) {
	if err := content.ValidateSiteName(siteName); err != nil {
		return nil, err
	}
	path := filepath.Join(i.buildRoot, siteName)
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		if err != nil && !os.IsNotExist(err) {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to stat build directory").
				WithContext("path", path).
				Build()
		}
		return &Status{SiteName: siteName, Status: StateNotBuilt, Message: MessageNotBuilt}, nil
	}
	n, err := CountFiles(path)
	if err != nil {
		return nil, err
	}
	return &Status{SiteName: siteName, BuildPath: &path, Status: StateBuilt, Message: MessageBuilt, FileCount: n}, nil
}

// CountFiles counts the regular files below root, recursively.
func CountFiles(root string) (int, error) {
	count := 0
	err := filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, errors.WrapError(err, errors.CategoryFileSystem, "failed to count files").
			WithContext("path", root).
			Build()
	}
	return count, nil
}
