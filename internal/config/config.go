// Package config loads devcode settings from an optional YAML file and
// DEVCODE_ environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Config holds all devcode settings.
type Config struct {
	Logging LoggingConfig `koanf:"logging"`
	Scan    ScanConfig    `koanf:"scan"`
	GitHub  GitHubConfig  `koanf:"github"`
}

// LoggingConfig selects diagnostic verbosity and encoding.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ScanConfig tunes the leftover-identifier search.
type ScanConfig struct {
	// ExcludeDirs extends the built-in excluded directory names.
	ExcludeDirs   []string `koanf:"exclude_dirs"`
	Workers       int      `koanf:"workers"`
	PreviewLength int      `koanf:"preview_length"`
	RedactSecrets bool     `koanf:"redact_secrets"`
}

// GitHubConfig configures the optional PAT_FOR_TAGPR secret check.
type GitHubConfig struct {
	Token        Secret `koanf:"token"`
	VerifySecret bool   `koanf:"verify_secret"`
	// APIURL points at a GitHub Enterprise API root. Empty means github.com.
	APIURL string `koanf:"api_url"`
}

const (
	DefaultWorkers       = 8
	DefaultPreviewLength = 80

	maxWorkers       = 256
	maxPreviewLength = 4096
)

var validLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Scan: ScanConfig{
			Workers:       DefaultWorkers,
			PreviewLength: DefaultPreviewLength,
			RedactSecrets: true,
		},
	}
}

// Validate checks config for errors.
func (c *Config) Validate() error {
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error; got %q", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", c.Logging.Format)
	}
	if c.Scan.Workers < 1 || c.Scan.Workers > maxWorkers {
		return fmt.Errorf("scan.workers must be between 1 and %d, got %d", maxWorkers, c.Scan.Workers)
	}
	if c.Scan.PreviewLength < 1 || c.Scan.PreviewLength > maxPreviewLength {
		return fmt.Errorf("scan.preview_length must be between 1 and %d, got %d", maxPreviewLength, c.Scan.PreviewLength)
	}
	for _, name := range c.Scan.ExcludeDirs {
		if name == "" || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("scan.exclude_dirs entries must be plain directory names, got %q", name)
		}
	}
	if c.GitHub.APIURL != "" {
		u, err := url.Parse(c.GitHub.APIURL)
		if err != nil {
			return fmt.Errorf("github.api_url: %w", err)
		}
		if u.Scheme != "https" && u.Scheme != "http" {
			return fmt.Errorf("github.api_url must be an http(s) URL, got %q", c.GitHub.APIURL)
		}
	}
	return nil
}
