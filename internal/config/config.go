// Package config loads the optional ezscan configuration file.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the optional ezscan configuration file. Every field is
// a pointer or map so that "unset" is distinguishable from a zero value;
// command-line flags that were explicitly changed always win.
type Config struct {
	Hosts    map[string]HostConfig `toml:"hosts"`
	Defaults DefaultsConfig        `toml:"defaults"`
	Limits   LimitsConfig          `toml:"limits"`
}

// DefaultsConfig holds persistent flag defaults.
type DefaultsConfig struct {
	Pattern    *string `toml:"pattern"`
	Recursive  *bool   `toml:"recursive"`
	Sort       *bool   `toml:"sort"`
	Format     *string `toml:"format"`
	IgnoreCase *bool   `toml:"ignore_case"`
	Color      *bool   `toml:"color"`
}

// LimitsConfig overrides the engine's traversal limits.
type LimitsConfig struct {
	MaxDirs  *int `toml:"max_dirs"`
	MaxDepth *int `toml:"max_depth"`
}

// Path returns the resolved path to the config file.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "ezscan", "config.toml")
}

// Load reads the config file from the XDG path. Returns a zero Config
// (no error) if the file does not exist.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Config{}, nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. A missing file yields a zero Config.
func LoadFile(path string) (Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	return cfg, nil
}
