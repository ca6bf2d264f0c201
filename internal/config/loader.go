package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPairs loads the pairs game configuration.
// Search order: customPath -> ~/.pairs/configs/pairs.yaml -> ./configs/pairs.yaml -> embedded default
func LoadPairs(customPath string) (PairsConfig, error) {
	var cfg PairsConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return withDefaults(cfg), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("pairs.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return withDefaults(cfg), nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "pairs.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return withDefaults(cfg), nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultPairsYAML, &cfg); err != nil {
		return DefaultPairsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return withDefaults(cfg), nil
}

// withDefaults fills sections a partial user file left out.
func withDefaults(cfg PairsConfig) PairsConfig {
	def := DefaultPairsConfig()
	if cfg.RevertDelayMS <= 0 {
		cfg.RevertDelayMS = def.RevertDelayMS
	}
	if len(cfg.Symbols) == 0 {
		cfg.Symbols = def.Symbols
	}
	if len(cfg.Levels) == 0 {
		cfg.Levels = def.Levels
	}
	if cfg.Classic.Pairs <= 0 {
		cfg.Classic = def.Classic
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pairs", "configs", filename)
}
