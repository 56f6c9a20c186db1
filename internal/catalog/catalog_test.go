package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/gridpath/internal/core"
	"github.com/vovakirdan/gridpath/internal/layout"
	"github.com/vovakirdan/gridpath/internal/storage"
)

func newCatalog(t *testing.T) (*Catalog, string) {
	t.Helper()
	dir := t.TempDir()

	store, err := storage.Open(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	layoutsDir := filepath.Join(dir, "layouts")
	require.NoError(t, os.MkdirAll(layoutsDir, 0o755))
	return New(store, layoutsDir), layoutsDir
}

func TestListMergesSources(t *testing.T) {
	c, dir := newCatalog(t)
	require.NoError(t, c.Store.SaveLayout(layout.Layout{ID: "saved-one", Name: "Saved", Rows: []string{"S.T"}}))
	// Shadowed by the builtin of the same ID
	require.NoError(t, c.Store.SaveLayout(layout.Layout{ID: "maze", Rows: []string{"ST"}}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.yaml"), []byte("id: file-one\nrows: [\"S#T\"]\n"), 0o644))

	sources := map[string]Source{}
	count := map[string]int{}
	for _, e := range c.List() {
		sources[e.ID] = e.Source
		count[e.ID]++
	}

	assert.Equal(t, SourceBuiltin, sources["maze"])
	assert.Equal(t, 1, count["maze"])
	assert.Equal(t, SourceSaved, sources["saved-one"])
	assert.Equal(t, SourceFile, sources["file-one"])
}

func TestGridResolution(t *testing.T) {
	c, dir := newCatalog(t)
	require.NoError(t, c.Store.SaveLayout(layout.Layout{ID: "saved-one", Rows: []string{"S..T"}}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.yaml"), []byte("id: file-one\nrows: [\"S#T\", \"...\"]\n"), 0o644))

	size := core.Size{W: 7, H: 3}

	g, err := c.Grid("empty", core.RuntimeConfig{}, size)
	require.NoError(t, err)
	assert.Equal(t, 7, g.Width())

	g, err = c.Grid("saved-one", core.RuntimeConfig{}, size)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Width())

	g, err = c.Grid("file-one", core.RuntimeConfig{}, size)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Height())

	_, err = c.Grid("nowhere", core.RuntimeConfig{}, size)
	assert.ErrorIs(t, err, ErrUnknownLayout)
}

func TestResolveFilePath(t *testing.T) {
	c, dir := newCatalog(t)
	path := filepath.Join(dir, "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("id: custom\nrows: [\"S.T\"]\n"), 0o644))

	g, id, err := c.Resolve(path, core.RuntimeConfig{}, core.Size{W: 1, H: 1})
	require.NoError(t, err)
	assert.Equal(t, "custom", id)
	assert.Equal(t, 3, g.Width())

	_, id, err = c.Resolve("detour", core.RuntimeConfig{}, core.Size{W: 1, H: 1})
	require.NoError(t, err)
	assert.Equal(t, "detour", id)
}

func TestCatalogWithoutStore(t *testing.T) {
	c := New(nil, "")
	assert.NotEmpty(t, c.List())

	_, err := c.Layout("scatter")
	assert.ErrorIs(t, err, ErrUnknownLayout, "generated scenarios have no fixed rows")

	l, err := c.Layout("open")
	require.NoError(t, err)
	assert.Len(t, l.Rows, 5)
}
