// YAML exercise definition loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default tuning values applied when the YAML omits a field.
const (
	DefaultDecayPerEvent  = 0.1
	DefaultExpirePenalty  = 15
	DefaultResolveBonus   = 5
	DefaultFailureRate    = 0.15
	DefaultLockSeconds    = 30
	DefaultTTLSeconds     = 600
)

// Location is a map coordinate.
type Location struct {
	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`
}

// ResourceSeed defines one finite resource pool available at exercise start.
type ResourceSeed struct {
	Code  string `yaml:"code"`
	Name  string `yaml:"name"`
	Unit  string `yaml:"unit"`
	Total int    `yaml:"total"`
}

// EventSeed defines an incident present on the map when the exercise opens.
type EventSeed struct {
	Title      string   `yaml:"title"`
	Category   string   `yaml:"category"`
	Critical   *bool    `yaml:"critical,omitempty"`
	TTLSeconds int      `yaml:"ttl_seconds,omitempty"`
	Location   Location `yaml:"location"`
}

// Tuning holds the scoring and contention constants of the exercise.
type Tuning struct {
	DecayPerEvent float64 `yaml:"decay_per_event"`
	ExpirePenalty float64 `yaml:"expire_penalty"`
	ResolveBonus  float64 `yaml:"resolve_bonus"`
	FailureRate   float64 `yaml:"failure_rate"`
	LockSeconds   int     `yaml:"lock_seconds"`
	TTLSeconds    int     `yaml:"ttl_seconds"`
}

// ExerciseConfig is the root configuration for one tabletop exercise.
type ExerciseConfig struct {
	Name      string         `yaml:"name"`
	MapCenter Location       `yaml:"map_center"`
	Tuning    Tuning         `yaml:"tuning"`
	Resources []ResourceSeed `yaml:"resources"`
	Events    []EventSeed    `yaml:"events"`
}

// Load loads a YAML exercise definition and validates it against a CUE
// schema. An empty cueSchemaPath skips validation.
func Load(configPath, cueSchemaPath string) (*ExerciseConfig, error) {
	if cueSchemaPath != "" {
		if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg ExerciseConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	if len(cfg.Resources) == 0 {
		return nil, fmt.Errorf("config %s: no resources defined", configPath)
	}
	return &cfg, nil
}

// ApplyDefaults fills zero-valued tuning fields and seed flags.
func (c *ExerciseConfig) ApplyDefaults() {
	t := &c.Tuning
	if t.DecayPerEvent <= 0 {
		t.DecayPerEvent = DefaultDecayPerEvent
	}
	if t.ExpirePenalty <= 0 {
		t.ExpirePenalty = DefaultExpirePenalty
	}
	if t.ResolveBonus <= 0 {
		t.ResolveBonus = DefaultResolveBonus
	}
	if t.FailureRate < 0 {
		t.FailureRate = DefaultFailureRate
	}
	if t.LockSeconds <= 0 {
		t.LockSeconds = DefaultLockSeconds
	}
	if t.TTLSeconds <= 0 {
		t.TTLSeconds = DefaultTTLSeconds
	}
	// Seed incidents count as critical unless the YAML says otherwise.
	for i := range c.Events {
		if c.Events[i].Critical == nil {
			v := true
			c.Events[i].Critical = &v
		}
		if c.Events[i].TTLSeconds <= 0 {
			c.Events[i].TTLSeconds = t.TTLSeconds
		}
	}
}
