// Facilitator scenario catalog: named incident batches injected on demand
package scenario

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed scenarios.yaml
var defaultCatalog []byte

// Incident is one event spawned when a scenario fires.
type Incident struct {
	Title    string  `yaml:"title"`
	Category string  `yaml:"category"`
	Lat      float64 `yaml:"lat"`
	Lng      float64 `yaml:"lng"`
}

// Scenario is a fixed, ordered batch of incidents a facilitator can inject.
type Scenario struct {
	Key       string     `yaml:"key"`
	Summary   string     `yaml:"summary"`
	Incidents []Incident `yaml:"incidents"`
}

// Catalog maps scenario keys to their definitions, preserving file order.
type Catalog struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Load reads a YAML scenario catalog from disk.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario catalog: %w", err)
	}
	return parse(b)
}

// Default returns the embedded scenario catalog.
func Default() *Catalog {
	c, err := parse(defaultCatalog)
	if err != nil {
		// The embedded catalog is part of the build; failing to parse it is
		// a programming error.
		panic(err)
	}
	return c
}

func parse(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse scenario catalog: %w", err)
	}
	return &c, nil
}

// Find returns the scenario registered under key.
func (c *Catalog) Find(key string) (Scenario, bool) {
	for _, s := range c.Scenarios {
		if s.Key == key {
			return s, true
		}
	}
	return Scenario{}, false
}
