package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
)

// AuditType identifies where an audit's inventory comes from.
type AuditType string

const (
	AuditTypeKubernetes AuditType = "kubernetes"
	AuditTypeManifests  AuditType = "manifests"
)

// ReportFormat controls the CLI output format.
type ReportFormat string

const (
	ReportFormatJSON  ReportFormat = "json"
	ReportFormatTable ReportFormat = "table"
)

// ParseReportFormat accepts "table" or "json" in any case.
func ParseReportFormat(s string) (ReportFormat, error) {
	switch f := ReportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case ReportFormatJSON, ReportFormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q: must be table or json", s)
	}
}

// InventoryCollector gathers the governed resources an audit evaluates.
// Implementations talk to a cluster or read manifests from disk; the engine
// never does either directly.
type InventoryCollector interface {
	Collect(ctx context.Context) (*models.ResourceInventory, error)
}

// Engine runs one audit: collect, evaluate, apply policy, summarise.
type Engine interface {
	RunAudit(ctx context.Context, auditType AuditType, collector InventoryCollector) (*models.AuditReport, error)
}
