package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// HostConfig holds SSH settings for a remote host, keyed in the file by the
// host name as it appears in "user@host:/path".
type HostConfig struct {
	User       string `toml:"user,omitempty"`
	KeyFile    string `toml:"key_file,omitempty"`
	KnownHosts string `toml:"known_hosts,omitempty"`
	Port       int    `toml:"port,omitempty"`
	Insecure   bool   `toml:"insecure,omitempty"`
}

// Host returns the settings for name, if any.
func (c Config) Host(name string) (HostConfig, bool) {
	h, ok := c.Hosts[name]
	return h, ok
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// Save writes cfg to path, creating the parent directory. An existing file
// is left alone unless overwrite is set.
func Save(path string, cfg Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, os.ErrExist)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, cfg); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}

// Starter is the config written by "ezscan config init".
func Starter() Config {
	pattern := "*.*"
	recursive := false
	sort := true
	format := "table"
	maxDirs := 700
	maxDepth := 30
	return Config{
		Defaults: DefaultsConfig{
			Pattern:   &pattern,
			Recursive: &recursive,
			Sort:      &sort,
			Format:    &format,
		},
		Limits: LimitsConfig{
			MaxDirs:  &maxDirs,
			MaxDepth: &maxDepth,
		},
	}
}
