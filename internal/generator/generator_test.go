package generator

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/events"
	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
)

func portfolio() *content.SiteDescriptor {
	return &content.SiteDescriptor{
		SiteName: "TestPortfolio",
		Pages: []content.PageDescriptor{
			{
				Title: "Home",
				Slug:  "index",
				Sections: []content.SectionDescriptor{
					{Type: "hero", Heading: "Welcome"},
					{Type: "skills", Items: []string{"Go"}},
				},
			},
			{
				Title:    "Contact",
				Slug:     "contact",
				Sections: []content.SectionDescriptor{{Type: "form", Fields: []string{"email"}}},
			},
		},
	}
}

func newGenerator(t *testing.T, root string) *Generator {
	t.Helper()
	r, err := render.NewTemplateRenderer()
	require.NoError(t, err)
	return New(root, r)
}

func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(root, path)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	sort.Strings(files)
	return files
}

func TestGenerateWritesTree(t *testing.T) {
	root := t.TempDir()
	fixed := time.UnixMilli(1_700_000_000_123)
	g := newGenerator(t, root).WithClock(func() time.Time { return fixed })

	res, err := g.Generate(context.Background(), portfolio())
	require.NoError(t, err)

	sitePath := filepath.Join(root, "TestPortfolio")
	assert.Equal(t, &Result{
		SiteName:       "TestPortfolio",
		OutputPath:     sitePath,
		PagesGenerated: 2,
		Message:        "Site generated successfully",
	}, res)
	assert.Equal(t, []string{"assets/script.js", "assets/styles.css", "config.json", "contact.html", "index.html"}, listFiles(t, sitePath))

	raw, err := os.ReadFile(filepath.Join(sitePath, ConfigFile))
	require.NoError(t, err)
	var cfg map[string]any
	require.NoError(t, json.Unmarshal(raw, &cfg))
	assert.Equal(t, "TestPortfolio", cfg["siteName"])
	assert.InDelta(t, 2, cfg["pages"], 0)
	assert.InDelta(t, 1_700_000_000_123, cfg["generatedAt"], 0)

	css, err := os.ReadFile(filepath.Join(sitePath, AssetsDir, StylesFile))
	require.NoError(t, err)
	assert.Contains(t, string(css), ".hero {")
	js, err := os.ReadFile(filepath.Join(sitePath, AssetsDir, ScriptFile))
	require.NoError(t, err)
	assert.Contains(t, string(js), "DOMContentLoaded")

	index, err := os.ReadFile(filepath.Join(sitePath, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "<title>Home - TestPortfolio</title>")
}

func TestGenerateIsIdempotent(t *testing.T) {
	root := t.TempDir()
	g := newGenerator(t, root)

	first, err := g.Generate(context.Background(), portfolio())
	require.NoError(t, err)
	filesFirst := listFiles(t, first.OutputPath)

	second, err := g.Generate(context.Background(), portfolio())
	require.NoError(t, err)

	assert.Equal(t, first.PagesGenerated, second.PagesGenerated)
	assert.Equal(t, filesFirst, listFiles(t, second.OutputPath))
}

func TestGenerateSlugToFileName(t *testing.T) {
	root := t.TempDir()
	d := portfolio()
	d.Pages[1].Slug = "about-me"

	res, err := newGenerator(t, root).Generate(context.Background(), d)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(res.OutputPath, "index.html"))
	assert.FileExists(t, filepath.Join(res.OutputPath, "about-me.html"))
	assert.NoFileExists(t, filepath.Join(res.OutputPath, "index.html.html"))
}

func TestGenerateValidationFailureWritesNothing(t *testing.T) {
	root := t.TempDir()
	d := portfolio()
	d.Pages[1].Sections[0].Type = "carousel"
	sink := &recordingSink{}

	res, err := newGenerator(t, root).WithSink(sink).Generate(context.Background(), d)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))

	entries, rerr := os.ReadDir(root)
	require.NoError(t, rerr)
	assert.Empty(t, entries, "no output may be created when validation fails")

	require.Len(t, sink.got, 1)
	assert.Equal(t, events.TypeSiteGenerateFailed, sink.got[0].Type)
}

type failingRenderer struct{}

func (failingRenderer) Render(string, map[string]any) (string, error) {
	return "", errors.New("template exploded")
}

func TestGenerateRenderFailureIsGenerationError(t *testing.T) {
	root := t.TempDir()
	_, err := New(root, failingRenderer{}).Generate(context.Background(), portfolio())
	require.Error(t, err)

	ce, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, ferrors.CategoryGeneration, ce.Category())
	phase, _ := ce.Context().GetString("phase")
	assert.Equal(t, StagePages, phase)
	assert.ErrorContains(t, err, "template exploded")
}

func TestGenerateFilesystemFailure(t *testing.T) {
	root := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(root, []byte("not a directory"), 0o600))

	_, err := newGenerator(t, root).Generate(context.Background(), portfolio())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryGeneration))
}

type recordingSink struct{ got []events.Event }

func (r *recordingSink) Publish(_ context.Context, e events.Event) error {
	r.got = append(r.got, e)
	return nil
}

func TestGeneratePublishesEvent(t *testing.T) {
	sink := &recordingSink{}
	res, err := newGenerator(t, t.TempDir()).WithSink(sink).Generate(context.Background(), portfolio())
	require.NoError(t, err)

	require.Len(t, sink.got, 1)
	e := sink.got[0]
	assert.Equal(t, events.TypeSiteGenerated, e.Type)
	assert.Equal(t, "TestPortfolio", e.Site)
	assert.Equal(t, res.OutputPath, e.Path)
	assert.Equal(t, 2, e.Files)
	assert.NotEmpty(t, e.OpID)
}

func TestGenerateRejectsEscapingSiteName(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "output")
	g := newGenerator(t, root)

	for _, name := range []string{"../escaped", "..", "nested/site"} {
		desc := portfolio()
		desc.SiteName = name
		_, err := g.Generate(context.Background(), desc)
		require.Error(t, err, name)
		assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation), name)
	}
	assert.NoDirExists(t, filepath.Join(parent, "escaped"))
	assert.NoDirExists(t, root)
}
