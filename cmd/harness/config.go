package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/gerd03/snakepilot/internal/autopilot"
)

// tuningOverrides is the subset of autopilot.Config a YAML file may
// override, matching spec.md's Design Notes characterization of these
// thresholds as "tuned empirically; re-tuning expected."
type tuningOverrides struct {
	SurvivalWeights *struct {
		OpenSpace     *float64 `mapstructure:"open_space"`
		OpenNeighbors *float64 `mapstructure:"open_neighbors"`
		TailBuffer    *float64 `mapstructure:"tail_buffer"`
		NearestFruit  *float64 `mapstructure:"nearest_fruit"`
	} `mapstructure:"survival_weights"`
}

// loadAutopilotConfig returns autopilot.DefaultConfig() when path is
// empty, otherwise reads a YAML override file with Viper and applies
// whichever fields it sets on top of the defaults.
func loadAutopilotConfig(path string) (autopilot.Config, error) {
	cfg := autopilot.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("reading harness config %s: %w", path, err)
	}

	var overrides tuningOverrides
	if err := vp.Unmarshal(&overrides); err != nil {
		return cfg, fmt.Errorf("parsing harness config %s: %w", path, err)
	}

	if overrides.SurvivalWeights != nil {
		w := overrides.SurvivalWeights
		if w.OpenSpace != nil {
			cfg.SurvivalWeights.OpenSpace = *w.OpenSpace
		}
		if w.OpenNeighbors != nil {
			cfg.SurvivalWeights.OpenNeighbors = *w.OpenNeighbors
		}
		if w.TailBuffer != nil {
			cfg.SurvivalWeights.TailBuffer = *w.TailBuffer
		}
		if w.NearestFruit != nil {
			cfg.SurvivalWeights.NearestFruit = *w.NearestFruit
		}
	}

	return cfg, nil
}
