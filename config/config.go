// Package config loads an optional project config file (gottl.yaml /
// .gottl.yaml) describing default search paths, namespace, and base
// class for a bundle: search-up-directories resolution, configDir-
// relative paths, and gopkg.in/yaml.v3 parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// BundleConfig is the optional project-level configuration for a
// gottl bundle.
type BundleConfig struct {
	SearchPaths  []string `yaml:"search_paths"`
	Namespace    string   `yaml:"namespace"`
	BaseClass    string   `yaml:"base_class"`
	AssemblyName string   `yaml:"assembly_name"`

	configDir string
}

// Load reads and parses a BundleConfig from path, applying defaults
// (SearchPaths defaults to ["./templates"] when unset).
func Load(path string) (*BundleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg BundleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.configDir = filepath.Dir(path)
	if len(cfg.SearchPaths) == 0 {
		cfg.SearchPaths = []string{"./templates"}
	}
	return &cfg, nil
}

// Find searches for gottl.yaml or .gottl.yaml starting at startDir and
// walking up to parent directories until one is found or the
// filesystem root is reached.
func Find(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range []string{"gottl.yaml", ".gottl.yaml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("config: gottl.yaml not found in %s or any parent directory", startDir)
		}
		dir = parent
	}
}

// ResolveSearchPaths returns SearchPaths as absolute paths, resolving
// any relative entry against the directory the config file was loaded
// from.
func (c *BundleConfig) ResolveSearchPaths() []string {
	resolved := make([]string, len(c.SearchPaths))
	for i, p := range c.SearchPaths {
		if filepath.IsAbs(p) {
			resolved[i] = p
			continue
		}
		resolved[i] = filepath.Join(c.configDir, p)
	}
	return resolved
}
