// Package config loads the harness configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultTimeout = 5 * time.Minute

// Config is the top-level harness configuration.
type Config struct {
	// ManifestsDir is the directory holding the benchmark manifests to scan.
	ManifestsDir string `yaml:"manifests_dir"`
	// DataDir is where captured raw scanner reports live.
	DataDir string `yaml:"data_dir"`
	// Timeout bounds a single scanner invocation, as a Go duration string.
	Timeout string `yaml:"timeout"`
	// Scanners holds per-scanner invocation overrides keyed by adapter name.
	Scanners map[string]ScannerConfig `yaml:"scanners"`
}

// ScannerConfig overrides how a single scanner is invoked.
type ScannerConfig struct {
	Bin       string   `yaml:"bin"`
	ExtraArgs []string `yaml:"extra_args"`
	Disabled  bool     `yaml:"disabled"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses a configuration from the given YAML file path,
// then fills in defaults for unset fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault searches standard locations and loads the first config
// found: ./misconfbench.yaml, then ~/.misconfbench/config.yaml. When
// none exists the built-in defaults are returned.
func LoadDefault() (*Config, error) {
	candidates := []string{"misconfbench.yaml"}

	home, err := os.UserHomeDir()
	if err == nil {
		candidates = append(candidates, filepath.Join(home, ".misconfbench", "config.yaml"))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		}
	}

	return Default(), nil
}

// ScanTimeout returns the parsed scan timeout.
func (c *Config) ScanTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return defaultTimeout
	}
	return d
}

// Scanner returns the override block for the named scanner, or a zero
// value when none is configured.
func (c *Config) Scanner(name string) ScannerConfig {
	return c.Scanners[name]
}

func applyDefaults(cfg *Config) {
	if cfg.ManifestsDir == "" {
		cfg.ManifestsDir = "./manifests"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	if cfg.Timeout == "" {
		cfg.Timeout = defaultTimeout.String()
	}
}
