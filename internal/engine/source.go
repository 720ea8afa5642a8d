package engine

import (
	"context"
	"fmt"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
)

// MetricsSource produces the counters the SLA report is computed from.
// Implementations live under internal/providers.
type MetricsSource interface {
	Name() string
	Snapshot(ctx context.Context) (models.MetricsSnapshot, error)
}

// InventorySource is a MetricsSource that derives the resource counters
// (totalResources, compliantResources, violations) from a naming audit and
// takes the remediation counters from a base source.
type InventorySource struct {
	engine    *NamingEngine
	auditType AuditType
	collector InventoryCollector
	base      MetricsSource
}

// NewInventorySource returns a source auditing collector with engine. base
// may be nil, in which case remediation counters are zero.
func NewInventorySource(engine *NamingEngine, auditType AuditType, collector InventoryCollector, base MetricsSource) *InventorySource {
	return &InventorySource{engine: engine, auditType: auditType, collector: collector, base: base}
}

// Name implements MetricsSource.
func (s *InventorySource) Name() string {
	if s.base == nil {
		return string(s.auditType)
	}
	return string(s.auditType) + "+" + s.base.Name()
}

// Snapshot implements MetricsSource.
func (s *InventorySource) Snapshot(ctx context.Context) (models.MetricsSnapshot, error) {
	var snap models.MetricsSnapshot
	if s.base != nil {
		base, err := s.base.Snapshot(ctx)
		if err != nil {
			return models.MetricsSnapshot{}, fmt.Errorf("base source %s: %w", s.base.Name(), err)
		}
		snap = base
	}

	report, err := s.engine.RunAudit(ctx, s.auditType, s.collector)
	if err != nil {
		return models.MetricsSnapshot{}, err
	}

	snap.TotalResources = report.Summary.TotalResources
	snap.CompliantResources = report.Summary.CompliantResources
	snap.Violations = report.Summary.ViolatingResources
	return snap, nil
}
