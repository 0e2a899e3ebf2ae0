package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the single configuration value threaded through the analysis
// pipeline. It is built once (Default or Load) and never mutated afterwards;
// every component receives it as a parameter rather than reading globals.
type Config struct {
	Limits Limits `yaml:"limits"`

	// AdditionalSafetyIgnores are additive-only: there is intentionally no
	// mechanism to remove or negate the built-in safety ignores.
	AdditionalSafetyIgnores []string `yaml:"additional_safety_ignores,omitempty"`

	Scoring Scoring `yaml:"-"`
}

// Limits holds the scan and output caps.
type Limits struct {
	MaxFiles         int   `yaml:"max_files"`
	DocsCap          int   `yaml:"docs_cap"`
	ConfigsCap       int   `yaml:"configs_cap"`
	MaxReadBytes     int64 `yaml:"max_read_bytes"`
	NotebookDirsCap  int   `yaml:"notebook_dirs_cap"`
	EvidenceFilesCap int   `yaml:"evidence_files_cap"`
}

// Load loads configuration from a YAML file, expanding environment variables
// in the content. Missing file is an error; a zero-value field falls back to
// its default so partial files stay valid.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists; absence is fine.
	if err := loadEnvFile(); err == nil {
		fmt.Fprintln(os.Stderr, "Loaded environment variables from .env")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := defaultLimits()
	if c.Limits.MaxFiles <= 0 {
		c.Limits.MaxFiles = d.MaxFiles
	}
	if c.Limits.DocsCap <= 0 {
		c.Limits.DocsCap = d.DocsCap
	}
	if c.Limits.ConfigsCap <= 0 {
		c.Limits.ConfigsCap = d.ConfigsCap
	}
	if c.Limits.MaxReadBytes <= 0 {
		c.Limits.MaxReadBytes = d.MaxReadBytes
	}
	if c.Limits.NotebookDirsCap <= 0 {
		c.Limits.NotebookDirsCap = d.NotebookDirsCap
	}
	if c.Limits.EvidenceFilesCap <= 0 {
		c.Limits.EvidenceFilesCap = d.EvidenceFilesCap
	}
	c.Scoring = defaultScoring()
}

// SafetyIgnores returns the resolved safety ignore patterns: built-in
// defaults, the required fixture ignores, then any additive overrides.
// Deterministic order, de-duplicated.
func (c *Config) SafetyIgnores() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(defaultSafetyIgnores)+len(requiredSafetyIgnores)+len(c.AdditionalSafetyIgnores))
	appendAll := func(patterns []string) {
		for _, p := range patterns {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	appendAll(defaultSafetyIgnores)
	appendAll(requiredSafetyIgnores)
	appendAll(c.AdditionalSafetyIgnores)
	return out
}
