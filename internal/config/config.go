package config

import "time"

// Config is the top-level application configuration.
// It is read only when --config names a file; flags override every value.
type Config struct {
	Report     ReportConfig     `yaml:"report"     json:"report"`
	Source     SourceConfig     `yaml:"source"     json:"source"`
	Prometheus PrometheusConfig `yaml:"prometheus" json:"prometheus"`
	Kubernetes KubernetesConfig `yaml:"kubernetes" json:"kubernetes"`
	AWS        AWSConfig        `yaml:"aws"        json:"aws"`
	Textfile   TextfileConfig   `yaml:"textfile"   json:"textfile"`
}

// ReportConfig controls where the SLA report is written.
type ReportConfig struct {
	// Output is the report file path. Empty means sla-report.json in the
	// working directory.
	Output string `yaml:"output" json:"output"`
}

// SourceConfig selects the metrics source.
type SourceConfig struct {
	// Kind is one of "static", "file", "prometheus", "kubernetes".
	Kind string `yaml:"kind" json:"kind"`

	// SnapshotFile is read by the "file" source and used as the base for
	// remediation counters by the "kubernetes" source.
	SnapshotFile string `yaml:"snapshot_file" json:"snapshot_file"`
}

// PrometheusConfig configures the "prometheus" source.
type PrometheusConfig struct {
	Address string        `yaml:"address" json:"address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// Queries overrides the PromQL expression per snapshot field, keyed by
	// the snapshot JSON name (e.g. "totalResources").
	Queries map[string]string `yaml:"queries" json:"queries"`
}

// KubernetesConfig configures cluster access for the "kubernetes" source
// and the cluster audit.
type KubernetesConfig struct {
	// Kubeconfig is an explicit kubeconfig path. Empty means $KUBECONFIG
	// or ~/.kube/config.
	Kubeconfig string `yaml:"kubeconfig" json:"kubeconfig"`

	// Context is the kubeconfig context. Empty means the current context.
	Context string `yaml:"context" json:"context"`

	// Namespaces restricts collection. Empty means all non-system namespaces.
	Namespaces []string `yaml:"namespaces" json:"namespaces"`

	// EnvironmentLabel is the namespace label carrying the environment.
	EnvironmentLabel string `yaml:"environment_label" json:"environment_label"`
}

// AWSConfig configures the optional S3 and CloudWatch report sinks.
type AWSConfig struct {
	// Profile is the named AWS profile. Empty means the default chain.
	Profile string `yaml:"profile" json:"profile"`

	// Region overrides the profile region.
	Region string `yaml:"region" json:"region"`

	S3         S3Config         `yaml:"s3"         json:"s3"`
	CloudWatch CloudWatchConfig `yaml:"cloudwatch" json:"cloudwatch"`
}

// S3Config enables the S3 report sink when Bucket is set.
type S3Config struct {
	Bucket string `yaml:"bucket" json:"bucket"`
	Key    string `yaml:"key"    json:"key"`
}

// CloudWatchConfig enables the CloudWatch metric sink when Enabled is true.
type CloudWatchConfig struct {
	Enabled   bool   `yaml:"enabled"   json:"enabled"`
	Namespace string `yaml:"namespace" json:"namespace"`
}

// TextfileConfig enables the Prometheus textfile sink when Path is set.
type TextfileConfig struct {
	Path string `yaml:"path" json:"path"`
}

// Loader is the interface for reading Config from disk.
type Loader interface {
	// Load reads, parses, and validates the configuration file.
	Load() (*Config, error)

	// ConfigPath returns the path to the configuration file.
	ConfigPath() string
}
