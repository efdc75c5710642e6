// Package config loads the YAML configuration that drives a pattern-making
// run: the clustering threshold and which cluster-algorithm variant to use.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings read from one or more "make" config files.
type Config struct {
	MinClusterNum    int    `yaml:"min_cluster_num"`
	ClusterAlgorithm string `yaml:"cluster_algorithm"`
}

// registry substitutes for the original's dynamic load_obj symbol lookup:
// Go has no runtime import-by-string, so named variants are registered here
// instead. Only "beta" (the spec's authoritative cascade) is registered by
// default; callers may register additional names with Register before
// calling Load.
var registry = map[string]struct{}{
	"beta": {},
}

// Register adds name to the set of accepted cluster_algorithm values.
func Register(name string) {
	registry[name] = struct{}{}
}

// Default returns the built-in configuration used when no config file is
// given.
func Default() Config {
	return Config{MinClusterNum: 5, ClusterAlgorithm: "beta"}
}

// Load reads zero or more YAML files in order, with later files overriding
// fields set by earlier ones (mirroring a repeatable -c flag), applies
// Default() as the base, and validates the result.
func Load(paths ...string) (Config, error) {
	cfg := Default()
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", p, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", p, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports whether cfg is usable: a positive threshold and a
// registered algorithm name.
func (c Config) Validate() error {
	if c.MinClusterNum < 1 {
		return fmt.Errorf("config: min_cluster_num must be >= 1, got %d", c.MinClusterNum)
	}
	if _, ok := registry[c.ClusterAlgorithm]; !ok {
		return fmt.Errorf("config: unknown cluster_algorithm %q", c.ClusterAlgorithm)
	}
	return nil
}
