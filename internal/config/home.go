package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvConfig names the environment variable that points at a config file.
const EnvConfig = "GRIN_CONFIG"

// ResolvePath returns the configuration file to load
// Priority order:
//  1. explicit path (the --config flag), if non-empty
//  2. GRIN_CONFIG environment variable (if set)
//  3. $HOME/.grin.yaml
//
// An empty result means no candidate location could be determined.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, FileName)
}

// Load resolves the configuration path and loads it
// A missing file yields the defaults, unless it was named explicitly
func Load(explicit string) (*Config, string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, explicit, fmt.Errorf("config file: %w", err)
		}
	}
	path := ResolvePath(explicit)
	if path == "" {
		return DefaultConfig(), "", nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}
