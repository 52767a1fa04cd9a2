package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/edflow-sim/edflow-sim/sim"
)

// LoadRunConfiguration materializes a RunConfiguration: defaults first, then
// the yaml file overlaid on top. An empty path returns the defaults.
// Validation is left to sim.NewSimulator so the core remains the single gate.
func LoadRunConfiguration(path string) (sim.RunConfiguration, error) {
	cfg := sim.DefaultRunConfiguration()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
