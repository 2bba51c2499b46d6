package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load returns the ruleset for a mode, overlaid with the first YAML file
// found. Keys absent from the file keep their preset values.
// Search order: customPath -> ~/.hexpop/rulesets/<mode>.yaml -> ./configs/<mode>.yaml -> preset
func Load(customPath string, mode Mode) (Ruleset, error) {
	cfg := Preset(mode)
	filename := mode.String() + ".yaml"

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := overlay(&cfg, data); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := overlay(&cfg, data); err == nil {
				return cfg, cfg.Validate()
			}
			cfg = Preset(mode)
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := overlay(&cfg, data); err == nil {
			return cfg, cfg.Validate()
		}
		cfg = Preset(mode)
	}

	return cfg, cfg.Validate()
}

// Parse overlays YAML data on the preset for mode and validates the result.
func Parse(data []byte, mode Mode) (Ruleset, error) {
	cfg := Preset(mode)
	if err := overlay(&cfg, data); err != nil {
		return cfg, fmt.Errorf("config: failed to parse ruleset: %w", err)
	}
	return cfg, cfg.Validate()
}

// overlay decodes data into cfg. The mode key cannot be changed by a file.
func overlay(cfg *Ruleset, data []byte) error {
	mode := cfg.Mode
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	cfg.Mode = mode
	return nil
}

// userConfigPath returns the path to a user ruleset file, or empty if home
// is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hexpop", "rulesets", filename)
}
