package schedule

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/build"
)

type staticSites []string

func (s staticSites) ListAvailableSites() ([]string, error) { return s, nil }

type fakeBuilder struct {
	mu    sync.Mutex
	built []string
	fail  map[string]bool
	calls chan string
}

func (f *fakeBuilder) Build(_ context.Context, name string) (*build.Result, error) {
	f.mu.Lock()
	f.built = append(f.built, name)
	f.mu.Unlock()
	if f.calls != nil {
		select {
		case f.calls <- name:
		default:
		}
	}
	if f.fail[name] {
		return nil, errors.New("boom")
	}
	return &build.Result{SiteName: name, Status: build.StatusSuccess}, nil
}

func TestRebuildAllContinuesAfterFailure(t *testing.T) {
	b := &fakeBuilder{fail: map[string]bool{"b": true}}
	s, err := New(staticSites{"a", "b", "c"}, b)
	require.NoError(t, err)

	sum := s.RebuildAll(context.Background())
	assert.Equal(t, Summary{Built: 2, Failed: 1}, sum)
	assert.Equal(t, []string{"a", "b", "c"}, b.built)
}

func TestScheduledRebuildRuns(t *testing.T) {
	b := &fakeBuilder{calls: make(chan string, 10)}
	s, err := New(staticSites{"portfolio"}, b)
	require.NoError(t, err)

	id, err := s.ScheduleRebuild(context.Background(), 50*time.Millisecond)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	s.Start()
	defer func() { _ = s.Stop() }()

	select {
	case name := <-b.calls:
		assert.Equal(t, "portfolio", name)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduled rebuild did not run")
	}
}
