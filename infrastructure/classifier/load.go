package classifier

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var defaultTaxonomyYAML []byte

type rawTaxonomy struct {
	Rules []Rule `yaml:"rules"`
}

// Default returns the built-in Taxonomy, compiled from the embedded
// taxonomy.yaml document.
func Default() (*Taxonomy, error) {
	return Load(defaultTaxonomyYAML)
}

// Load compiles a Taxonomy from a YAML document. Callers who want to
// extend or replace the built-in taxonomy read their own file and pass
// its bytes here.
func Load(data []byte) (*Taxonomy, error) {
	var raw rawTaxonomy
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("classifier: parsing taxonomy: %w", err)
	}
	return Compile(raw.Rules)
}
