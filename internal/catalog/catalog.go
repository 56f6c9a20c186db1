// Package catalog resolves layout IDs across every place layouts live:
// registered scenarios, layouts saved in the database, and layout files in
// the user's layout directory.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/vovakirdan/gridpath/internal/core"
	"github.com/vovakirdan/gridpath/internal/layout"
	"github.com/vovakirdan/gridpath/internal/pathfind"
	"github.com/vovakirdan/gridpath/internal/registry"
	"github.com/vovakirdan/gridpath/internal/storage"
)

// ErrUnknownLayout is returned when no source knows an ID.
var ErrUnknownLayout = errors.New("catalog: unknown layout")

// Source tells where a layout came from.
type Source string

const (
	SourceBuiltin Source = "builtin"
	SourceSaved   Source = "saved"
	SourceFile    Source = "file"
)

// Entry describes one resolvable layout.
type Entry struct {
	ID     string
	Title  string
	Source Source
}

// Catalog looks layouts up in registry, store and loader, in that order.
// Store and Loader are optional.
type Catalog struct {
	Store  *storage.Store
	Loader *layout.Loader
}

// New creates a catalog. A missing layout directory is not an error.
func New(store *storage.Store, layoutsDir string) *Catalog {
	c := &Catalog{Store: store}
	if layoutsDir != "" {
		c.Loader = layout.NewLoader(layoutsDir)
	}
	return c
}

// List returns every known layout. IDs shadowed by an earlier source are
// listed once.
func (c *Catalog) List() []Entry {
	seen := make(map[string]bool)
	var entries []Entry
	add := func(e Entry) {
		if seen[e.ID] {
			return
		}
		seen[e.ID] = true
		entries = append(entries, e)
	}

	for _, info := range registry.List() {
		add(Entry{ID: info.ID, Title: info.Title, Source: SourceBuiltin})
	}

	var extra []Entry
	if c.Store != nil {
		if saved, err := c.Store.ListLayouts(); err == nil {
			for _, l := range saved {
				extra = append(extra, Entry{ID: l.ID, Title: l.Title(), Source: SourceSaved})
			}
		}
	}
	if files := c.files(); files != nil {
		for _, l := range files {
			extra = append(extra, Entry{ID: l.ID, Title: l.Title(), Source: SourceFile})
		}
	}
	sort.SliceStable(extra, func(i, j int) bool { return extra[i].ID < extra[j].ID })
	for _, e := range extra {
		add(e)
	}
	return entries
}

func (c *Catalog) files() []layout.Layout {
	if c.Loader == nil {
		return nil
	}
	if _, err := os.Stat(c.Loader.Root); err != nil {
		return nil
	}
	layouts, err := c.Loader.LoadAll()
	if err != nil {
		return nil
	}
	return layouts
}

// Layout returns the rows behind a fixed layout. Generated scenarios have
// no fixed rows and report ErrUnknownLayout here.
func (c *Catalog) Layout(id string) (layout.Layout, error) {
	if l, ok := layout.Builtin(id); ok {
		return l, nil
	}
	if c.Store != nil {
		l, err := c.Store.LoadLayout(id)
		if err == nil {
			return l, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return layout.Layout{}, err
		}
	}
	for _, l := range c.files() {
		if l.ID == id {
			return l, nil
		}
	}
	return layout.Layout{}, fmt.Errorf("%w: %q", ErrUnknownLayout, id)
}

// Grid builds a fresh grid for id. Registered scenarios use cfg and size;
// saved and file layouts ignore them.
func (c *Catalog) Grid(id string, cfg core.RuntimeConfig, size core.Size) (*pathfind.Grid, error) {
	if registry.Exists(id) {
		return registry.Create(id, cfg, size)
	}
	l, err := c.Layout(id)
	if err != nil {
		return nil, err
	}
	return l.Grid()
}

// Resolve accepts a layout ID or a path to a layout file and returns the
// grid with the ID to record runs under.
func (c *Catalog) Resolve(ref string, cfg core.RuntimeConfig, size core.Size) (*pathfind.Grid, string, error) {
	if isLayoutFile(ref) {
		l, err := layout.NewLoader("").LoadFile(ref)
		if err != nil {
			return nil, "", err
		}
		g, err := l.Grid()
		return g, l.ID, err
	}
	g, err := c.Grid(ref, cfg, size)
	return g, ref, err
}

func isLayoutFile(ref string) bool {
	lower := strings.ToLower(ref)
	for _, ext := range layout.FormatExtensions() {
		if strings.HasSuffix(lower, ext) {
			if _, err := os.Stat(ref); err == nil {
				return true
			}
		}
	}
	return false
}
