// Package config loads the optional .tlcorerc.yaml project file that pins
// CLI defaults. Grounded on the teacher's eval_harness.LoadSpec (same
// read-then-yaml.Unmarshal shape); unlike a benchmark spec, a missing file
// here is not an error since every field has a sensible zero-value default.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the subset of CLI behavior a project can pin in
// .tlcorerc.yaml instead of passing flags every invocation.
type Config struct {
	Debug bool `yaml:"debug"`
	Color bool `yaml:"color"`
}

// Default returns the CLI's built-in defaults, used when no config file is
// present.
func Default() *Config {
	return &Config{Color: true}
}

// Load reads path and parses it as YAML. A missing file is not an error: it
// returns Default() unchanged. A present-but-malformed file is.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}
