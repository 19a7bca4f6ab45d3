// Package taxonomy loads the category table from YAML.
package taxonomy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"house31/internal/domain"
)

// rawEntry represents one YAML category.
type rawEntry struct {
	Category string   `yaml:"category"`
	Priority string   `yaml:"priority"`
	Boost    float64  `yaml:"boost"`
	Keywords []string `yaml:"keywords"`
}

// rawConfig represents the YAML structure.
type rawConfig struct {
	Categories []rawEntry `yaml:"categories"`
}

// Load returns the built-in table when path is empty, otherwise the table
// read from the YAML file at path. The table is validated either way.
func Load(path string) (domain.Taxonomy, error) {
	if path == "" {
		return domain.DefaultTaxonomy(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML taxonomy. Category names are
// upper-cased and keywords lower-cased before validation.
func Parse(data []byte) (domain.Taxonomy, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidTaxonomy, err)
	}

	t := make(domain.Taxonomy, 0, len(raw.Categories))
	for _, e := range raw.Categories {
		keywords := make([]string, 0, len(e.Keywords))
		for _, kw := range e.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		t = append(t, domain.TaxonomyEntry{
			Category: domain.Category(strings.ToUpper(strings.TrimSpace(e.Category))),
			Keywords: keywords,
			Priority: domain.Priority(strings.ToLower(strings.TrimSpace(e.Priority))),
			Boost:    e.Boost,
		})
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
