package scraper

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source describes the site being scraped. Kept in configs/source.yaml so
// selector or path changes do not need a rebuild.
type Source struct {
	BaseURL      string `yaml:"base_url"`
	ListingPath  string `yaml:"listing_path"`
	LinkSelector string `yaml:"link_selector"`
}

// LoadSource reads the source site description from a YAML file.
func LoadSource(path string) (Source, error) {
	var src Source

	f, err := os.Open(path)
	if err != nil {
		return src, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&src); err != nil {
		return src, fmt.Errorf("decode source config: %w", err)
	}

	if src.BaseURL == "" || src.ListingPath == "" {
		return src, fmt.Errorf("source config %s: base_url and listing_path are required", path)
	}
	if src.LinkSelector == "" {
		src.LinkSelector = "a.text-link"
	}
	return src, nil
}
