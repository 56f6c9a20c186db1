package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// Loader reads layout files from a directory tree.
type Loader struct {
	Root string
}

// NewLoader creates a new layout loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all layout files.
// Invalid files are skipped. Returns layouts sorted by ID.
func (l *Loader) LoadAll() ([]Layout, error) {
	var layouts []Layout

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !slices.Contains(FormatExtensions(), strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		lay, err := l.LoadFile(path)
		if err != nil {
			return nil
		}
		layouts = append(layouts, lay)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("layout: walking directory %s: %w", l.Root, err)
	}

	sort.Slice(layouts, func(i, j int) bool {
		return layouts[i].ID < layouts[j].ID
	})
	return layouts, nil
}

// LoadFile loads a single layout file.
func (l *Loader) LoadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("layout: reading file %s: %w", path, err)
	}

	lay, err := ParseYAML(data)
	if err != nil {
		return Layout{}, fmt.Errorf("layout: parsing file %s: %w", path, err)
	}
	lay.FilePath = path
	return lay, nil
}

// LoadByID loads a specific layout by ID.
func (l *Loader) LoadByID(id string) (Layout, error) {
	layouts, err := l.LoadAll()
	if err != nil {
		return Layout{}, err
	}

	for _, lay := range layouts {
		if lay.ID == id {
			return lay, nil
		}
	}
	return Layout{}, fmt.Errorf("layout: not found: %s", id)
}

// ListIDs returns all layout IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	layouts, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(layouts))
	for i, lay := range layouts {
		ids[i] = lay.ID
	}
	return ids, nil
}

// Save writes a layout to Root as <id>.yaml.
func (l *Loader) Save(lay Layout) (string, error) {
	data, err := MarshalYAML(lay)
	if err != nil {
		return "", fmt.Errorf("layout: encoding %s: %w", lay.ID, err)
	}
	if err := os.MkdirAll(l.Root, 0o755); err != nil {
		return "", fmt.Errorf("layout: creating directory %s: %w", l.Root, err)
	}

	path := filepath.Join(l.Root, lay.ID+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("layout: writing file %s: %w", path, err)
	}
	return path, nil
}
