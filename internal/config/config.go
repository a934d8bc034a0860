// Package config loads the YAML scrub configuration used by the
// paramguard CLI. The library itself never reads files; instrumentation
// code embedding the engine constructs policies directly.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tkingovr/param-guard/api"
	"github.com/tkingovr/param-guard/scrub"
)

// File is the top-level YAML scrub configuration.
type File struct {
	Version int      `yaml:"version" json:"version"`
	Scrub   Settings `yaml:"scrub" json:"scrub"`
}

// Settings configures the filtering policy.
type Settings struct {
	Mode     string   `yaml:"mode" json:"mode"`
	Keys     []string `yaml:"keys,omitempty" json:"keys,omitempty"`
	Sentinel string   `yaml:"sentinel,omitempty" json:"sentinel,omitempty"`
	MaxDepth int      `yaml:"max_depth,omitempty" json:"max_depth,omitempty"`
}

// Load reads and validates a YAML scrub configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scrub config: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses and validates YAML scrub configuration data.
func LoadBytes(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing scrub config YAML: %w", err)
	}
	if err := validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func validate(f *File) error {
	if f.Version != 1 {
		return fmt.Errorf("unsupported config version: %d (expected 1)", f.Version)
	}

	mode, err := api.ParseMode(f.Scrub.Mode)
	if err != nil {
		return err
	}

	switch mode {
	case api.ModeAllowlist:
		// Allowlist predicates are executable logic; they cannot be
		// expressed in a static config file.
		return fmt.Errorf("mode %q is not configurable from a file; construct a scrub.Policy with a KeyPredicate in code", mode)
	case api.ModeDenylist:
		if len(f.Scrub.Keys) == 0 {
			return fmt.Errorf("mode %q requires at least one key under scrub.keys", mode)
		}
	}

	if f.Scrub.MaxDepth < 0 {
		return fmt.Errorf("scrub.max_depth must not be negative, got %d", f.Scrub.MaxDepth)
	}

	return nil
}

// Policy builds the runtime policy described by the file.
func (f *File) Policy() (*scrub.Policy, error) {
	mode, err := api.ParseMode(f.Scrub.Mode)
	if err != nil {
		return nil, err
	}

	var opts []scrub.PolicyOption
	if len(f.Scrub.Keys) > 0 {
		opts = append(opts, scrub.WithKeys(f.Scrub.Keys))
	}
	if f.Scrub.Sentinel != "" {
		opts = append(opts, scrub.WithSentinel(f.Scrub.Sentinel))
	}
	if f.Scrub.MaxDepth > 0 {
		opts = append(opts, scrub.WithMaxDepth(f.Scrub.MaxDepth))
	}

	return scrub.NewPolicy(mode, opts...)
}

// MarshalYAML serializes the configuration for display/export.
func (f *File) MarshalYAML() ([]byte, error) {
	return yaml.Marshal(f)
}
