package models

import (
	"strings"
	"time"
)

// Severity represents the impact level of a finding.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityInfo     Severity = "INFO"
)

// Severities lists every severity from most to least severe.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}

// Rank orders severities for threshold comparisons: CRITICAL is 5, INFO is 1
// and unknown values are 0.
func (s Severity) Rank() int {
	for i, known := range Severities {
		if s == known {
			return len(Severities) - i
		}
	}
	return 0
}

// ParseSeverity matches s case-insensitively against the known severities.
func ParseSeverity(s string) (Severity, bool) {
	sev := Severity(strings.ToUpper(strings.TrimSpace(s)))
	return sev, sev.Rank() > 0
}

// ResourceType identifies the kind of named resource a finding refers to.
type ResourceType string

const (
	ResourceK8sDeployment ResourceType = "K8S_DEPLOYMENT"
	ResourceK8sService    ResourceType = "K8S_SERVICE"
	ResourceK8sIngress    ResourceType = "K8S_INGRESS"
	ResourceK8sConfigMap  ResourceType = "K8S_CONFIGMAP"
	ResourceK8sSecret     ResourceType = "K8S_SECRET"
)

// Finding is a single naming issue detected on one resource.
// It is the atomic output unit of the rule engine.
type Finding struct {
	ID             string         `json:"id"`
	RuleID         string         `json:"rule_id"`
	ResourceID     string         `json:"resource_id"`
	ResourceType   ResourceType   `json:"resource_type"`
	Namespace      string         `json:"namespace,omitempty"`
	Source         string         `json:"source"`
	Domain         string         `json:"domain"`
	Severity       Severity       `json:"severity"`
	Explanation    string         `json:"explanation"`
	Recommendation string         `json:"recommendation"`
	DetectedAt     time.Time      `json:"detected_at"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// AuditSummary aggregates counts across all findings and audited resources.
type AuditSummary struct {
	TotalFindings    int `json:"total_findings"`
	CriticalFindings int `json:"critical_findings"`
	HighFindings     int `json:"high_findings"`
	MediumFindings   int `json:"medium_findings"`
	LowFindings      int `json:"low_findings"`

	// TotalResources is the number of governed resources audited.
	TotalResources int `json:"total_resources"`
	// CompliantResources counts resources without any finding.
	CompliantResources int `json:"compliant_resources"`
	// ViolatingResources counts resources with at least one finding.
	ViolatingResources int `json:"violating_resources"`
}

// AuditReport is the top-level output of a naming audit run.
type AuditReport struct {
	ReportID    string       `json:"report_id"`
	GeneratedAt time.Time    `json:"generated_at"`
	AuditType   string       `json:"audit_type"`
	Source      string       `json:"source"`
	Namespaces  []string     `json:"namespaces"`
	Summary     AuditSummary `json:"summary"`
	Findings    []Finding    `json:"findings"`
	// Metadata carries optional, source-specific key/value pairs.
	// For cluster audits this includes "context" and "server".
	Metadata map[string]any `json:"metadata,omitempty"`
}
