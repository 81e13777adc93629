// Package config loads reusable conversion profiles from YAML files.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/SStyles93/csvxl/pkg/csvxl"
)

// Profile is a set of conversion options loaded from a YAML file. Pointer
// fields distinguish "unset" from an explicit false.
type Profile struct {
	// Combine selects one combined workbook over per-group files.
	Combine *bool `yaml:"combine"`
	// MergeSimilar groups files sharing a derived base name.
	MergeSimilar *bool `yaml:"merge-similar"`
	// KeyColumns identify a row for duplicate filtering.
	KeyColumns []string `yaml:"key-columns"`
	// SheetNames overrides derived sheet names by group index.
	SheetNames []string `yaml:"sheet-names"`
	// SourceColumn names the provenance column to stamp on each row.
	SourceColumn string `yaml:"source-column"`
	// ExtraPatterns are additional trailing-token patterns for grouping.
	ExtraPatterns []string `yaml:"extra-patterns"`
	// Workers bounds concurrent CSV reads.
	Workers int `yaml:"workers"`
	// LogLevel sets the log verbosity: debug, info, warn, or error.
	LogLevel string `yaml:"log-level"`
}

// Load reads and validates a profile from a YAML file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return &p, nil
}

// Validate checks the profile's values.
func (p *Profile) Validate() error {
	for _, pattern := range p.ExtraPatterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("extra pattern %q: %w", pattern, err)
		}
	}
	for _, col := range p.KeyColumns {
		if col == "" {
			return fmt.Errorf("key column names must not be empty")
		}
	}
	if p.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	switch p.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", p.LogLevel)
	}
	return nil
}

// Apply copies the profile's set fields onto opts.
func (p *Profile) Apply(opts *csvxl.Options) {
	if p.Combine != nil {
		opts.Combine = *p.Combine
	}
	if p.MergeSimilar != nil {
		opts.DetectSimilar = *p.MergeSimilar
	}
	if len(p.KeyColumns) > 0 {
		opts.KeyColumns = p.KeyColumns
	}
	if len(p.SheetNames) > 0 {
		opts.SheetNames = p.SheetNames
	}
	if p.SourceColumn != "" {
		opts.SourceColumn = p.SourceColumn
	}
	if len(p.ExtraPatterns) > 0 {
		opts.ExtraPatterns = p.ExtraPatterns
	}
	if p.Workers > 0 {
		opts.Workers = p.Workers
	}
}

// SlogLevel returns the profile's log level as a slog level.
func (p *Profile) SlogLevel() slog.Level {
	return ParseLogLevel(p.LogLevel)
}

// ParseLogLevel maps a level name to a slog level, defaulting to info.
func ParseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
