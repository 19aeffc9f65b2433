// Package catalog loads the static country list the quiz draws from.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/playperu/countryquiz/internal/countryquiz"
)

//go:embed countries.yaml
var defaultData []byte

type file struct {
	Countries []countryquiz.Country `yaml:"countries"`
}

// Default returns the embedded catalog.
func Default() (*countryquiz.Catalog, error) {
	return Parse(defaultData)
}

// Load reads a catalog file with the same layout as countries.yaml. An empty
// path selects the embedded catalog.
func Load(path string) (*countryquiz.Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*countryquiz.Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	c, err := countryquiz.NewCatalog(f.Countries)
	if err != nil {
		return nil, err
	}
	return c, nil
}
