package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Source kinds accepted in source.kind and --source.
const (
	SourceStatic     = "static"
	SourceFile       = "file"
	SourcePrometheus = "prometheus"
	SourceKubernetes = "kubernetes"
)

// SourceKinds lists the accepted source kinds in help-text order.
var SourceKinds = []string{SourceStatic, SourceFile, SourcePrometheus, SourceKubernetes}

// ErrUnsupportedSource is returned for a source kind outside SourceKinds.
var ErrUnsupportedSource = errors.New("unsupported metrics source")

// FileLoader reads Config from a YAML file.
type FileLoader struct {
	path string
}

// NewFileLoader returns a loader for path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

// ConfigPath implements Loader.
func (l *FileLoader) ConfigPath() string { return l.path }

// Load implements Loader. Unknown keys are rejected.
func (l *FileLoader) Load() (*Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", l.path, err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %q: %w", l.path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", l.path, err)
	}
	return &cfg, nil
}

// Validate checks enumerated values. Empty values are always valid.
func (c *Config) Validate() error {
	if c.Source.Kind != "" {
		if err := ValidateSourceKind(c.Source.Kind); err != nil {
			return fmt.Errorf("source.kind: %w", err)
		}
	}
	if c.Prometheus.Timeout < 0 {
		return fmt.Errorf("prometheus.timeout: must not be negative")
	}
	if c.AWS.S3.Key != "" && c.AWS.S3.Bucket == "" {
		return fmt.Errorf("aws.s3.key: set without aws.s3.bucket")
	}
	return nil
}

// ValidateSourceKind returns ErrUnsupportedSource unless kind is one of
// SourceKinds.
func ValidateSourceKind(kind string) error {
	for _, k := range SourceKinds {
		if kind == k {
			return nil
		}
	}
	return fmt.Errorf("%w %q (valid: static, file, prometheus, kubernetes)", ErrUnsupportedSource, kind)
}
