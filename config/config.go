// Package config provides configuration loading for the presencas tool.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/geoknoesis/presencas-dcat/profile"
	"github.com/geoknoesis/presencas-dcat/rdf"
)

// Config represents the complete tool configuration
type Config struct {
	Profile ProfileConfig `yaml:"profile"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
}

// ProfileConfig configures the Presenças stage
type ProfileConfig struct {
	// BaseURI is the site URL resource IRIs are derived from
	BaseURI string `yaml:"base_uri"`
	// PeriodScope is "store" (default) or "dataset"
	PeriodScope string `yaml:"period_scope"`
	// RequireIssued makes a distribution without dct:issued an error (default: true)
	RequireIssued *bool `yaml:"require_issued"`
	// Language is preferred among language-tagged literals (default: en)
	Language string `yaml:"language"`
}

// OutputConfig configures graph serialization
type OutputConfig struct {
	// Format is turtle, ntriples or jsonld
	Format string `yaml:"format"`
	// Prefixes are merged over the built-in vocabulary prefixes
	Prefixes map[string]string `yaml:"prefixes,omitempty"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	requireIssued := true
	return &Config{
		Profile: ProfileConfig{
			BaseURI:       "",
			PeriodScope:   string(profile.PeriodScopeStore),
			RequireIssued: &requireIssued,
			Language:      "en",
		},
		Output: OutputConfig{
			Format: string(rdf.FormatTurtle),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Profile.BaseURI != "" {
		u, err := url.Parse(c.Profile.BaseURI)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("profile.base_uri must be an absolute URL, got %q", c.Profile.BaseURI)
		}
	}
	switch profile.PeriodScope(c.Profile.PeriodScope) {
	case profile.PeriodScopeStore, profile.PeriodScopeDataset:
	default:
		return fmt.Errorf("profile.period_scope must be store or dataset, got %q", c.Profile.PeriodScope)
	}
	format, ok := rdf.ParseFormat(c.Output.Format)
	if !ok || format == rdf.FormatNQuads {
		return fmt.Errorf("output.format must be turtle, ntriples or jsonld, got %q", c.Output.Format)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Profile
	if other.Profile.BaseURI != "" {
		c.Profile.BaseURI = other.Profile.BaseURI
	}
	if other.Profile.PeriodScope != "" {
		c.Profile.PeriodScope = other.Profile.PeriodScope
	}
	if other.Profile.RequireIssued != nil {
		v := *other.Profile.RequireIssued
		c.Profile.RequireIssued = &v
	}
	if other.Profile.Language != "" {
		c.Profile.Language = other.Profile.Language
	}

	// Output
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	if len(other.Output.Prefixes) > 0 {
		if c.Output.Prefixes == nil {
			c.Output.Prefixes = make(map[string]string, len(other.Output.Prefixes))
		}
		for label, ns := range other.Output.Prefixes {
			c.Output.Prefixes[label] = ns
		}
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}

// Options converts the profile section to stage options.
func (p ProfileConfig) Options() []profile.Option {
	opts := []profile.Option{
		profile.WithBaseURI(p.BaseURI),
		profile.WithPeriodScope(profile.PeriodScope(p.PeriodScope)),
	}
	if p.RequireIssued != nil {
		opts = append(opts, profile.WithRequireIssued(*p.RequireIssued))
	}
	if p.Language != "" {
		opts = append(opts, profile.WithLanguage(p.Language))
	}
	return opts
}

// PrefixMap returns base overlaid with the configured output prefixes.
func (o OutputConfig) PrefixMap(base map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(o.Prefixes))
	for label, ns := range base {
		out[label] = ns
	}
	for label, ns := range o.Prefixes {
		out[label] = ns
	}
	return out
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log.level must be debug, info, warn or error, got %q", level)
}
