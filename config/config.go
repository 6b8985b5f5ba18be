// Package config persists viewer settings between sessions.
package config

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	yaml "gopkg.in/yaml.v2"
)

// LightColors are the three-point rig colors as RGB in [0,1].
type LightColors struct {
	Key  [3]float32 `yaml:"key"`
	Fill [3]float32 `yaml:"fill"`
	Back [3]float32 `yaml:"back"`
}

type Config struct {
	LastDir            string      `yaml:"last_dir"`
	ClearOnLoad        bool        `yaml:"clear_on_load"`
	ThreePointLighting bool        `yaml:"three_point_lighting"`
	LightColors        LightColors `yaml:"light_colors"`

	// StepDeflection is the CAD tessellation tolerance; zero means the
	// loader default.
	StepDeflection float32 `yaml:"step_deflection,omitempty"`
	// StepKernel is the external kernel command line with {input},
	// {output} and {deflection} placeholders.
	StepKernel []string `yaml:"step_kernel,omitempty"`
}

func Default() *Config {
	home, err := homedir.Dir()
	if err != nil {
		home = "."
	}
	white := [3]float32{1, 1, 1}
	return &Config{
		LastDir:     home,
		ClearOnLoad: true,
		LightColors: LightColors{Key: white, Fill: white, Back: white},
	}
}

// DefaultPath is the per-user config file location.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "vertexa", "config.yaml"), nil
}

// Load reads the config file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes the config file, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
