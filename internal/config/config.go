// Package config loads the removability configuration spec.md §6 describes,
// mirroring processor.py's one-time load of MWPageLoader.yaml at startup.
// The loaded value is read-only from then on (spec.md §5).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wikicx/lineardoc"
)

// pageLoaderConfig mirrors the subset of MWPageLoader.yaml this pipeline
// consumes.
type pageLoaderConfig struct {
	RemovableSections struct {
		Classes   []string `yaml:"classes"`
		RDFA      []string `yaml:"rdfa"`
		Templates []string `yaml:"templates"`
	} `yaml:"removableSections"`
}

// Load reads a removability config YAML document from path and returns it
// as a lineardoc.RemovableConfig. A missing or empty removableSections
// section yields a zero-value RemovableConfig (no removal).
func Load(path string) (lineardoc.RemovableConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return lineardoc.RemovableConfig{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var doc pageLoaderConfig
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return lineardoc.RemovableConfig{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return lineardoc.RemovableConfig{
		Classes:   doc.RemovableSections.Classes,
		RDFA:      doc.RemovableSections.RDFA,
		Templates: doc.RemovableSections.Templates,
	}, nil
}
