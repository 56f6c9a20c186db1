package layout

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlLayout is the on-disk structure of a layout file.
type yamlLayout struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name,omitempty"`
	Description string            `yaml:"description,omitempty"`
	Rows        []string          `yaml:"rows"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// ParseYAML parses and validates a layout file.
func ParseYAML(data []byte) (Layout, error) {
	var yl yamlLayout
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Layout{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Layout{}, fmt.Errorf("%w: missing id", ErrMalformed)
	}
	if _, err := Decode(yl.Rows); err != nil {
		return Layout{}, err
	}

	return Layout{
		ID:          yl.ID,
		Name:        yl.Name,
		Description: yl.Description,
		Rows:        yl.Rows,
		Metadata:    yl.Metadata,
	}, nil
}

// MarshalYAML renders a layout in the file format read by ParseYAML.
func MarshalYAML(l Layout) ([]byte, error) {
	return yaml.Marshal(yamlLayout{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		Rows:        l.Rows,
		Metadata:    l.Metadata,
	})
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
