package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/build"
	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/events"
	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/inventory"
	"git.home.luguber.info/inful/sitebuilder/internal/schedule"
)

const descriptor = `siteName: Portfolio
pages:
  - title: Home
    slug: index
    sections:
      - type: hero
        heading: Welcome
      - type: skills
        items: [Go, SQL]
  - title: Contact
    slug: contact
    sections:
      - type: form
        fields: [name, email]
`

func testConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.Output = filepath.Join(dir, "output")
	cfg.Paths.BuildInput = cfg.Paths.Output
	cfg.Paths.Build = filepath.Join(dir, "build")
	cfg.History.Enabled = true
	cfg.History.Path = filepath.Join(dir, "history.db")
	cfg.Metrics.Enabled = true
	return cfg, dir
}

func writeDescriptor(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(descriptor), 0o600))
	return path
}

func TestGenerateBuildStatusAndHistory(t *testing.T) {
	cfg, dir := testConfig(t)
	rt, err := NewRuntime(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	var out bytes.Buffer
	g := &Global{Out: &out}
	ctx := context.Background()

	require.NoError(t, RunGenerate(ctx, g, rt, writeDescriptor(t, dir), true, false))
	assert.Contains(t, out.String(), "Portfolio: Site generated successfully (2 pages)")
	assert.Contains(t, out.String(), "Portfolio: "+build.SuccessMessage)

	out.Reset()
	require.NoError(t, RunSites(g, rt.Inventory))
	assert.Equal(t, "Portfolio\n", out.String())

	out.Reset()
	require.NoError(t, RunStatus(g, rt.Inventory, "Portfolio", true))
	var st inventory.Status
	require.NoError(t, json.Unmarshal(out.Bytes(), &st))
	assert.Equal(t, inventory.StateBuilt, st.Status)
	require.NotNil(t, st.BuildPath)
	assert.Equal(t, filepath.Join(cfg.Paths.Build, "Portfolio"), *st.BuildPath)

	out.Reset()
	require.NoError(t, RunHistory(ctx, g, rt.History(), "Portfolio", 10, true))
	var ops []events.Event
	require.NoError(t, json.Unmarshal(out.Bytes(), &ops))
	require.Len(t, ops, 2)
	assert.Equal(t, events.TypeSiteBuilt, ops[0].Type)
	assert.Equal(t, events.TypeSiteGenerated, ops[1].Type)

	out.Reset()
	require.NoError(t, RunHistory(ctx, g, rt.History(), "", 10, false))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "TIME"))
}

func TestStatusOfUnbuiltSite(t *testing.T) {
	cfg, _ := testConfig(t)
	var out bytes.Buffer

	require.NoError(t, RunStatus(&Global{Out: &out}, inventory.New(cfg.Paths.Output, cfg.Paths.Build), "Nope", false))
	assert.Contains(t, out.String(), "NOT_BUILT")
	assert.Contains(t, out.String(), inventory.MessageNotBuilt)
}

func TestBuildUnknownSite(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg.History.Enabled = false
	rt, err := NewRuntime(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	err = RunBuild(context.Background(), &Global{Out: &bytes.Buffer{}}, rt, "Ghost", false)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
	assert.Equal(t, 4, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestGenerateInvalidDescriptorExitCode(t *testing.T) {
	cfg, dir := testConfig(t)
	cfg.History.Enabled = false
	rt, err := NewRuntime(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"siteName":"","pages":[]}`), 0o600))

	err = RunGenerate(context.Background(), &Global{Out: &bytes.Buffer{}}, rt, path, false, false)
	require.Error(t, err)
	assert.Equal(t, 2, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
	assert.NoDirExists(t, cfg.Paths.Output)
}

func TestRegenerateHandler(t *testing.T) {
	cfg, dir := testConfig(t)
	cfg.History.Enabled = false
	rt, err := NewRuntime(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	Regenerate(rt, true)(context.Background(), writeDescriptor(t, dir))

	assert.FileExists(t, filepath.Join(cfg.Paths.Output, "Portfolio", "index.html"))
	assert.FileExists(t, filepath.Join(cfg.Paths.Build, "Portfolio", "netlify.toml"))
}

func TestInitWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitebuilder.yaml")
	var out bytes.Buffer

	require.NoError(t, RunInit(&Global{Out: &out}, path, false))
	assert.Contains(t, out.String(), "initialized successfully")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.CurrentVersion, cfg.Version)

	err = RunInit(&Global{Out: &out}, path, false)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestNewLoggerHonorsFormatAndVerbose(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = config.LogFormatJSON
	cfg.Logging.Level = config.LogLevelWarn

	var buf bytes.Buffer
	logger := NewLogger(cfg, false, &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	NewLogger(cfg, true, &buf).Debug("debug line")
	assert.Contains(t, buf.String(), "debug line")
}

// Scheduled rebuilds take their site list from the build input root, not the generation root.
func TestScheduledRebuildUsesBuildInputRoot(t *testing.T) {
	cfg, dir := testConfig(t)
	cfg.History.Enabled = false
	cfg.Paths.Output = filepath.Join(dir, "gen-only")
	cfg.Paths.BuildInput = filepath.Join(dir, "staged")
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.Paths.Output, "draft"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.Paths.BuildInput, "staged-site"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Paths.BuildInput, "staged-site", "index.html"), []byte("<p>x</p>"), 0o600))

	rt, err := NewRuntime(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	s, err := schedule.New(rt.BuildSources, rt.Builder)
	require.NoError(t, err)
	summary := s.RebuildAll(context.Background())

	assert.Equal(t, 1, summary.Built)
	assert.Equal(t, 0, summary.Failed)
	assert.FileExists(t, filepath.Join(cfg.Paths.Build, "staged-site", "index.html"))
	assert.NoDirExists(t, filepath.Join(cfg.Paths.Build, "draft"))
}
