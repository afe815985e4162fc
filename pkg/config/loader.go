package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config file names searched in order, first in the working directory and
// then in the user's home directory.
//
//nolint:gochecknoglobals // Read-only search list
var configFileNames = []string{".mdsync.yaml", ".mdsync.yml"}

// ErrNotFound reports that no configuration file exists at any search
// location. Callers fall back to Default().
var ErrNotFound = errors.New("no configuration file found")

// Load reads configuration from an explicit path, or discovers one when path
// is empty. A missing file (when no explicit path was given) yields the
// defaults, not an error.
func Load(path string) (*Config, error) {
	if path != "" {
		return loadFile(path)
	}

	found, err := Discover()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Default(), nil
		}
		return nil, err
	}
	return loadFile(found)
}

// Discover searches the working directory and then the home directory for a
// configuration file and returns the first match.
func Discover() (string, error) {
	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}

	for _, dir := range dirs {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
	}
	return "", ErrNotFound
}

// loadFile parses a YAML config file over the defaults and validates the
// result, so partial files only override the keys they mention.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
