// Package profile loads interview presets: the role and company type a
// session is configured with. Presets live in a user-editable YAML file,
// with sensible built-ins when none exists.
package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Preset is one selectable interview configuration.
type Preset struct {
	Name    string `yaml:"name"`
	Role    string `yaml:"role"`
	Company string `yaml:"company"`
}

// Config is the parsed preset file.
type Config struct {
	Presets []Preset `yaml:"presets"`
}

// Defaults returns the built-in presets used when no config file exists.
func Defaults() *Config {
	return &Config{Presets: []Preset{
		{Name: "backend", Role: "Backend Engineer", Company: "startup"},
		{Name: "frontend", Role: "Frontend Engineer", Company: "startup"},
		{Name: "fullstack", Role: "Full-Stack Engineer", Company: "enterprise"},
		{Name: "data", Role: "Data Engineer", Company: "enterprise"},
	}}
}

// DefaultPath resolves the preset file location:
// $XDG_CONFIG_HOME/intervu/profiles.yaml, falling back to
// ~/.config/intervu/profiles.yaml.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "intervu", "profiles.yaml"), nil
}

// Load parses presets from path. A missing file yields the defaults; a
// present but malformed file is an error, not a silent fallback.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Defaults(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	if len(cfg.Presets) == 0 {
		return Defaults(), nil
	}

	for i, p := range cfg.Presets {
		if p.Role == "" {
			return nil, fmt.Errorf("preset %d: role is required", i)
		}
		if p.Name == "" {
			cfg.Presets[i].Name = p.Role
		}
		if p.Company == "" {
			cfg.Presets[i].Company = "startup"
		}
	}
	return &cfg, nil
}

// Find returns the preset with the given name.
func (c *Config) Find(name string) (Preset, bool) {
	for _, p := range c.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Promote moves the named preset to the front of the list, making it the
// default selection. Reports whether the preset exists; the relative order
// of the others is preserved.
func (c *Config) Promote(name string) bool {
	p, ok := c.Find(name)
	if !ok {
		return false
	}
	rest := make([]Preset, 0, len(c.Presets)-1)
	for _, q := range c.Presets {
		if q.Name != name {
			rest = append(rest, q)
		}
	}
	c.Presets = append([]Preset{p}, rest...)
	return true
}
