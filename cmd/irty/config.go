package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// toolConfig is the optional irty.toml discovered upward from the working
// directory. Flags always win over the file.
type toolConfig struct {
	Path   string
	Config configFile
}

type configFile struct {
	Cache cacheConfig `toml:"cache"`
	Trace traceConfig `toml:"trace"`
}

type cacheConfig struct {
	Enabled *bool  `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type traceConfig struct {
	Level string `toml:"level"`
}

func findToolConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "irty.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadToolConfig(startDir string) (*toolConfig, bool, error) {
	path, ok, err := findToolConfig(startDir)
	if err != nil || !ok {
		return nil, false, err
	}
	var cfg configFile
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, false, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &toolConfig{Path: path, Config: cfg}, true, nil
}
