// Package userconfig loads the optional project-level gocfg.yaml (§6 ADD):
// a YAML-backed Config with missing-file-returns-default Load/Save
// semantics, scaled down to gocfg's much smaller surface: default
// toolchain/mode/prefix plus the logging knobs internal/obslog.Config
// consumes.
package userconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the decoded contents of gocfg.yaml.
type Config struct {
	Toolchain string `yaml:"toolchain"`
	Mode      string `yaml:"mode"`
	Prefix    string `yaml:"prefix"`

	Verbose       bool            `yaml:"verbose"`
	LogCategories map[string]bool `yaml:"log_categories"`
}

// Default returns the zero-value project configuration: no toolchain/mode
// override, logging disabled.
func Default() *Config {
	return &Config{}
}

// Load reads gocfg.yaml at path. A missing file is not an error: Load
// returns Default() so callers can layer CLI flags over it unconditionally.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg back to path, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal gocfg.yaml: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
