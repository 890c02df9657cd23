package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from the process command line with priority:
// defaults < file < environment < flags.
func Load() (*Config, error) {
	return LoadWith(commandLine)
}

// LoadWith is Load with an explicit flag set.
func LoadWith(f *Flags) (*Config, error) {
	cfg := Default()

	if err := loadEnvFile(f.EnvFile); err != nil {
		return nil, err
	}

	// Explicit path takes priority, then PLANET_CONFIG, then the standard locations.
	configPath := f.ConfigPath()
	if configPath == "" {
		configPath = os.Getenv(EnvPrefix + "CONFIG")
	}
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
		cfg.path = configPath
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}

	f.apply(cfg)

	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "PlanetTerrain")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "PlanetTerrain")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "planetterrain")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "planetterrain")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
