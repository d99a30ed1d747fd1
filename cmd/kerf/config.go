package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/chazu/kerf/pkg/contour"
)

// config holds the tunable settings. Values come from three layers:
// built-in defaults, an optional TOML file, and command-line flags,
// with later layers winning.
type config struct {
	// Tolerance is the endpoint coincidence distance for chaining.
	Tolerance float64 `toml:"tolerance"`
	// Start is the travel origin as [x, y].
	Start [2]float64 `toml:"start"`
	// OutputSuffix is appended to the input base name when no explicit
	// output path is given.
	OutputSuffix string `toml:"output_suffix"`
}

func defaultConfig() config {
	return config{
		Tolerance:    contour.DefaultTolerance,
		OutputSuffix: "_sorted",
	}
}

// loadConfig overlays the TOML file at path onto cfg. Keys absent from
// the file keep their current values.
func loadConfig(path string, cfg *config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Tolerance <= 0 {
		return fmt.Errorf("config %s: tolerance must be positive, got %g", path, cfg.Tolerance)
	}
	return nil
}
