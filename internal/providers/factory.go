// Package providers builds the metrics source selected by configuration.
package providers

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pankaj-dahiya-devops/namegov/internal/config"
	"github.com/pankaj-dahiya-devops/namegov/internal/engine"
	"github.com/pankaj-dahiya-devops/namegov/internal/providers/file"
	kube "github.com/pankaj-dahiya-devops/namegov/internal/providers/kubernetes"
	"github.com/pankaj-dahiya-devops/namegov/internal/providers/prometheus"
	"github.com/pankaj-dahiya-devops/namegov/internal/providers/static"
)

// SourceConfig holds configuration for creating a metrics source.
type SourceConfig struct {
	// Kind is one of config.SourceKinds. Empty means static.
	Kind string

	// SnapshotFile is required by the file source and optional for the
	// kubernetes source, where it supplies the remediation counters.
	SnapshotFile string

	Prometheus prometheus.Config

	// Kubernetes, KubeProvider and Engine are used by the kubernetes source.
	// A nil KubeProvider means the system kubeconfig.
	Kubernetes   engine.KubernetesAuditOptions
	KubeProvider kube.KubeClientProvider
	Engine       *engine.NamingEngine
}

// CreateMetricsSource creates a metrics source based on configuration.
func CreateMetricsSource(cfg *SourceConfig, logger *logrus.Logger) (engine.MetricsSource, error) {
	kind := cfg.Kind
	if kind == "" {
		kind = config.SourceStatic
	}
	if err := config.ValidateSourceKind(kind); err != nil {
		return nil, err
	}

	log := logger.WithField("source", kind)

	switch kind {
	case config.SourceFile:
		log.WithField("path", cfg.SnapshotFile).Debug("Using snapshot file source")
		return file.New(cfg.SnapshotFile)

	case config.SourcePrometheus:
		log.WithField("address", cfg.Prometheus.Address).Debug("Using Prometheus source")
		return prometheus.New(cfg.Prometheus, logger)

	case config.SourceKubernetes:
		if cfg.Engine == nil {
			return nil, fmt.Errorf("kubernetes source requires a naming engine")
		}
		provider := cfg.KubeProvider
		if provider == nil {
			provider = kube.NewDefaultKubeClientProvider()
		}
		var base engine.MetricsSource
		if cfg.SnapshotFile != "" {
			fs, err := file.New(cfg.SnapshotFile)
			if err != nil {
				return nil, err
			}
			base = fs
		} else {
			log.Info("No snapshot file given; remediation counters will be zero")
		}
		collector := engine.NewKubernetesCollector(provider, cfg.Kubernetes)
		return engine.NewInventorySource(cfg.Engine, engine.AuditTypeKubernetes, collector, base), nil

	default:
		log.Debug("Using built-in reference snapshot")
		return static.New(), nil
	}
}
