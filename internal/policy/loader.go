package policy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedVersion is returned by LoadPolicy for any version other than 1.
var ErrUnsupportedVersion = errors.New("unsupported policy version")

// LoadPolicy reads a policy file. Unknown keys are rejected so a misspelt
// section does not silently disable enforcement. Missing sections come back
// as empty maps.
func LoadPolicy(path string) (*PolicyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg PolicyConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse policy %q: %w", path, err)
	}
	if cfg.Version != 1 {
		return nil, fmt.Errorf("policy %q declares version %d: %w", path, cfg.Version, ErrUnsupportedVersion)
	}

	if cfg.Domains == nil {
		cfg.Domains = map[string]DomainConfig{}
	}
	if cfg.Rules == nil {
		cfg.Rules = map[string]RuleConfig{}
	}
	if cfg.Enforcement == nil {
		cfg.Enforcement = map[string]EnforcementConfig{}
	}
	return &cfg, nil
}

// LoadOptional loads the policy at path. When path is empty it falls back to
// DefaultPolicyFile in the working directory and returns (nil, nil) if that
// file does not exist.
func LoadOptional(path string) (*PolicyConfig, error) {
	if path != "" {
		return LoadPolicy(path)
	}
	if _, err := os.Stat(DefaultPolicyFile); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return LoadPolicy(DefaultPolicyFile)
}
