package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	userDirName   = ".t2048"
	fileName      = "config.yaml"
	localFilePath = "configs/t2048.yaml"
)

// Load reads the configuration.
// Search order: customPath -> ~/.t2048/config.yaml -> ./configs/t2048.yaml -> embedded default.
// Files are layered over Default(), so a file only needs the keys it changes.
func Load(customPath string) (Config, error) {
	cfg := Default()

	// An explicit path must exist and parse
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if path := userConfigPath(); path != "" {
		if loaded, ok := tryFile(path); ok {
			return loaded, loaded.Validate()
		}
	}

	// Try local configs directory
	if loaded, ok := tryFile(localFilePath); ok {
		return loaded, loaded.Validate()
	}

	// Use embedded default YAML
	embedded := Default()
	if err := yaml.Unmarshal(defaultYAML, &embedded); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryFile parses path over the defaults. Missing or malformed files are skipped.
func tryFile(path string) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, userDirName, fileName)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
