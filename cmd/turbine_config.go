package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/turbine-cosim/turbine-cosim/cosim"
)

// Define struct for YAML
type TurbineConfig struct {
	Turbines []TurbineProfile `yaml:"turbines"`
	Version  string           `yaml:"version"`
}

type TurbineProfile struct {
	Name         string  `yaml:"name"`
	WindSpeed    float64 `yaml:"wind_speed"`
	Inertia      float64 `yaml:"inertia"`
	Damping      float64 `yaml:"damping"`
	InitialSpeed float64 `yaml:"initial_speed"`
}

// LoadTurbineParams reads a calibration file and returns the named
// profile's plant parameters.
func LoadTurbineParams(path, name string) (cosim.TurbineParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cosim.TurbineParams{}, fmt.Errorf("reading turbine config: %w", err)
	}

	var cfg TurbineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cosim.TurbineParams{}, fmt.Errorf("parsing turbine config: %w", err)
	}

	for _, p := range cfg.Turbines {
		if p.Name == name {
			return cosim.TurbineParams{
				WindSpeed:    p.WindSpeed,
				Inertia:      p.Inertia,
				Damping:      p.Damping,
				InitialSpeed: p.InitialSpeed,
			}, nil
		}
	}
	return cosim.TurbineParams{}, fmt.Errorf("turbine profile %q not found in %s", name, path)
}
