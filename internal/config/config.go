// Package config provides YAML-based application configuration with
// environment overrides, and the search speed presets.
package config

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// AppConfig contains all configuration for the gridpath tools.
type AppConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Search  SearchConfig  `yaml:"search"`
	Storage StorageConfig `yaml:"storage"`
	Layouts LayoutsConfig `yaml:"layouts"`
	SSH     SSHConfig     `yaml:"ssh"`
	HTTP    HTTPConfig    `yaml:"http"`
	Log     LogConfig     `yaml:"log"`
}

// GridConfig sizes generated grids. Zero fits the grid to the terminal.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SearchConfig controls search animation.
type SearchConfig struct {
	Speed        SpeedPreset `yaml:"speed"`
	StepsPerTick int         `yaml:"steps_per_tick"` // Overrides Speed when > 0
}

// Steps returns the effective expansions per tick.
func (s SearchConfig) Steps() int {
	if s.StepsPerTick > 0 {
		return s.StepsPerTick
	}
	return s.Speed.StepsPerTick()
}

// StorageConfig locates the run history database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LayoutsConfig locates user layout files.
type LayoutsConfig struct {
	Dir string `yaml:"dir"`
}

// SSHConfig configures the SSH server.
type SSHConfig struct {
	Address            string `yaml:"address"`
	HostKey            string `yaml:"host_key"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// HTTPConfig configures the solve API.
type HTTPConfig struct {
	Address string `yaml:"address"`
	GinMode string `yaml:"gin_mode"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Validate checks the configuration for values no component can use.
func (c AppConfig) Validate() error {
	if c.Grid.Width < 0 || c.Grid.Height < 0 {
		return fmt.Errorf("config: grid size %dx%d must not be negative", c.Grid.Width, c.Grid.Height)
	}
	if _, err := ParseSpeedPreset(string(c.Search.Speed)); err != nil {
		return err
	}
	if c.Search.StepsPerTick < 0 {
		return fmt.Errorf("config: steps_per_tick %d must not be negative", c.Search.StepsPerTick)
	}
	if c.SSH.IdleTimeoutMinutes < 0 {
		return fmt.Errorf("config: idle_timeout_minutes %d must not be negative", c.SSH.IdleTimeoutMinutes)
	}
	switch c.HTTP.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: unknown gin_mode %q", c.HTTP.GinMode)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log level: %w", err)
	}
	return nil
}
