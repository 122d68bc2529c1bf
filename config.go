package gqlcheck

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents a .gqlcheck.yml configuration file.
type Config struct {
	// Documents is the list of document files or globs to check when
	// none are given on the command line.
	Documents StringList `yaml:"documents,omitempty"`

	// Rules selects and orders the validation rules to run. Empty means
	// the default pipeline.
	Rules []string `yaml:"rules,omitempty"`

	// Cache configures the report cache.
	Cache CacheConfig `yaml:"cache,omitempty"`
}

// CacheConfig configures the report cache.
type CacheConfig struct {
	// Enabled turns the cache on.
	Enabled bool `yaml:"enabled,omitempty"`

	// TTL is how long cached reports stay valid, as a Go duration string
	// (e.g., "5m"). Empty means no expiry.
	TTL string `yaml:"ttl,omitempty"`
}

// TTLDuration parses the configured TTL. An empty TTL yields zero.
func (c CacheConfig) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	return time.ParseDuration(c.TTL)
}

// StringList is a YAML type that can be either a string or a list of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler for StringList.
func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = []string{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	default:
		return fmt.Errorf("expected string or list, got %v", node.Kind)
	}
}

// MarshalYAML implements yaml.Marshaler for StringList.
func (s StringList) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	return []string(s), nil
}

// LoadConfig loads a configuration file. A missing file yields an empty
// config rather than an error, so the defaults apply.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, NewConfigError(path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, NewConfigError(path, err)
	}
	return &cfg, nil
}

// SaveConfig saves a configuration file.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return NewConfigError(path, err)
	}

	// Ensure directory exists
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return NewConfigError(path, err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return NewConfigError(path, err)
	}
	return nil
}

// AddDocument adds a document path to the configuration if not already
// present.
func (c *Config) AddDocument(path string) {
	if !slices.Contains(c.Documents, path) {
		c.Documents = append(c.Documents, path)
	}
}

// AddRule adds a rule name to the configuration if not already present.
func (c *Config) AddRule(name string) {
	if !slices.Contains(c.Rules, name) {
		c.Rules = append(c.Rules, name)
	}
}
