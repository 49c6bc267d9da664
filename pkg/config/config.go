// Package config loads imgmirror settings from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hellenic-development/imgmirror/pkg/csdn"
)

// Default locations, relative to the base directory (a VitePress site root).
const (
	DefaultDocumentsDir = "docs"
	DefaultImageDir     = ".vitepress/public/images/csdn"
	DefaultExtension    = ".md"
)

// Config holds all settings of a mirroring run.
type Config struct {
	DocumentsRoot string     `yaml:"documents_root"`
	ImageDir      string     `yaml:"image_dir"`
	Pattern       string     `yaml:"pattern"`
	Extensions    []string   `yaml:"extensions"`
	HTTP          HTTPConfig `yaml:"http"`
}

// HTTPConfig holds request settings for the image host.
type HTTPConfig struct {
	UserAgent         string        `yaml:"user_agent"`
	Referer           string        `yaml:"referer"`
	Timeout           time.Duration `yaml:"timeout"`             // 0 = none
	RequestsPerSecond float64       `yaml:"requests_per_second"` // 0 = unlimited
}

// Default returns the configuration used when no file is given, with paths
// resolved against base.
func Default(base string) *Config {
	cfg := &Config{}
	ApplyDefaults(cfg, base)
	return cfg
}

// Load reads and parses the config file at path and applies defaults.
// Relative paths in the file, and the default paths, resolve against the
// directory containing the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	configDir := filepath.Dir(path)
	cfg.DocumentsRoot = expandPath(cfg.DocumentsRoot, configDir)
	cfg.ImageDir = expandPath(cfg.ImageDir, configDir)
	ApplyDefaults(&cfg, configDir)

	return &cfg, nil
}

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config, base string) {
	if cfg.DocumentsRoot == "" {
		cfg.DocumentsRoot = filepath.Join(base, DefaultDocumentsDir)
	}
	if cfg.ImageDir == "" {
		cfg.ImageDir = filepath.Join(base, filepath.FromSlash(DefaultImageDir))
	}
	if cfg.Pattern == "" {
		cfg.Pattern = csdn.ImageURLPattern
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{DefaultExtension}
	}
	if cfg.HTTP.UserAgent == "" {
		cfg.HTTP.UserAgent = csdn.UserAgent
	}
	if cfg.HTTP.Referer == "" {
		cfg.HTTP.Referer = csdn.Referer
	}
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must not be negative, got %s", c.HTTP.Timeout)
	}
	if c.HTTP.RequestsPerSecond < 0 {
		return fmt.Errorf("http.requests_per_second must not be negative, got %g", c.HTTP.RequestsPerSecond)
	}
	for _, ext := range c.Extensions {
		if strings.TrimSpace(ext) == "" {
			return fmt.Errorf("extensions must not contain empty values")
		}
	}
	return nil
}

// expandPath makes path absolute. "~/" expands to the home directory; other
// relative paths resolve against baseDir. Empty stays empty.
func expandPath(path string, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return filepath.Join(baseDir, path)
}
