package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yml
var bundled []byte

// Default returns a Store over the catalog compiled into the binary.
func Default() (*Store, error) {
	c, err := Parse(bundled)
	if err != nil {
		return nil, fmt.Errorf("bundled catalog: %w", err)
	}
	return NewStore(c), nil
}

// Load reads a catalog file from disk. An empty path selects the bundled
// catalog.
func Load(path string) (*Store, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return NewStore(c), nil
}

// Parse decodes YAML bytes into a catalog and validates it.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parsing catalog YAML: %w", err)
		}
	}
	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
