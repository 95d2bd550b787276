package core_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aretw0/ddc/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRepository implements core.Repository in memory.
type MockRepository struct {
	listing    core.Listing
	records    map[string]core.Record
	collectErr error
	parsed     bool
}

func (m *MockRepository) Collect(ctx context.Context, root string) (core.Listing, error) {
	if m.collectErr != nil {
		return core.Listing{}, m.collectErr
	}
	m.listing.Root = root
	return m.listing, nil
}

func (m *MockRepository) Parse(ctx context.Context, listing core.Listing) (core.Catalog, []core.ParseFailure, error) {
	m.parsed = true
	cat := core.NewCatalog()
	var failures []core.ParseFailure
	for _, dir := range listing.Found {
		rec, ok := m.records[dir]
		if !ok {
			failures = append(failures, core.ParseFailure{Dir: dir, Path: dir + "/README.yaml", Err: errors.New("boom")})
			rec = core.Record{}
		}
		cat.Put(dir, rec)
	}
	return cat, failures, nil
}

// recordingRenderer keeps the report it was given.
type recordingRenderer struct {
	got core.Report
}

func (r *recordingRenderer) Render(w io.Writer, report core.Report) error {
	r.got = report
	_, err := io.WriteString(w, "rendered")
	return err
}

func newService(repo core.Repository, renderer core.Renderer) *core.Service {
	return core.NewService(repo, renderer, core.ServiceConfig{
		Title:     "Data Directory Cataloger",
		Generator: "ddc",
		Version:   "1.2.3",
		Filename:  "README.yaml",
		Columns:   []string{"Title"},
		DenyList:  core.DefaultDenyList(),
		Clock:     func() time.Time { return time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC) },
	})
}

func TestService_Run(t *testing.T) {
	repo := &MockRepository{
		listing: core.Listing{Found: []string{"a", "c"}, Missing: []string{"b"}},
		records: map[string]core.Record{
			"a": {"Title": "A<b>", "Owner": "me"},
		},
	}
	renderer := &recordingRenderer{}
	svc := newService(repo, renderer)

	var buf bytes.Buffer
	report, err := svc.Run(context.Background(), "root", &buf)
	require.NoError(t, err)
	assert.Equal(t, "rendered", buf.String())

	assert.Equal(t, "root", report.Listing.Root)
	assert.Equal(t, []string{"a", "c"}, report.Catalog.Dirs())
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "c", report.Failures[0].Dir)

	a, _ := report.Catalog.Get("a")
	assert.Equal(t, "A&lt;b&gt;", a["Title"])
	assert.True(t, report.Warnings.Has("a/README.yaml"))

	assert.Equal(t, []string{"Owner", "Title"}, report.Vocabulary.Sorted())
	require.Len(t, report.Drift, 1)
	assert.Equal(t, "c/README.yaml", report.Drift[0].Path)
	assert.Equal(t, []string{"Owner", "Title"}, report.Drift[0].Missing)

	assert.Equal(t, "1.2.3", renderer.got.Version)
	assert.Equal(t, 2026, renderer.got.GeneratedAt.Year())
}

func TestService_NoMetadataStopsBeforeParsing(t *testing.T) {
	repo := &MockRepository{listing: core.Listing{Missing: []string{"x"}}}
	svc := newService(repo, &recordingRenderer{})

	report, err := svc.Run(context.Background(), "root", io.Discard)
	require.NoError(t, err)
	assert.True(t, report.Empty())
	assert.False(t, repo.parsed, "parse must not run when nothing was found")
	assert.Equal(t, 0, report.Catalog.Len())
}

func TestService_InvalidRoot(t *testing.T) {
	repo := &MockRepository{collectErr: &core.InvalidRootError{Path: "nope"}}
	renderer := &recordingRenderer{}
	svc := newService(repo, renderer)

	var buf bytes.Buffer
	_, err := svc.Run(context.Background(), "nope", &buf)
	require.Error(t, err)

	var invalid *core.InvalidRootError
	assert.True(t, errors.As(err, &invalid))
	assert.Equal(t, "nope", invalid.Path)
	assert.Empty(t, buf.String(), "no report may be produced for an invalid root")
}

func TestService_State(t *testing.T) {
	repo := &MockRepository{
		listing: core.Listing{Found: []string{"a"}},
		records: map[string]core.Record{"a": {"Title": "x;"}},
	}
	svc := newService(repo, &recordingRenderer{})

	before := svc.State().(core.ServiceState)
	assert.Equal(t, "repository", before.RepositoryType)
	assert.Nil(t, before.Records)

	_, err := svc.Build(context.Background(), "root")
	require.NoError(t, err)

	after := svc.State().(core.ServiceState)
	assert.Equal(t, "root", after.Root)
	assert.Equal(t, core.Record{"Title": "x"}, after.Records["a"])
	assert.Equal(t, []string{"a/README.yaml"}, after.Sanitized)
	assert.Equal(t, "service", svc.ComponentType())
}
