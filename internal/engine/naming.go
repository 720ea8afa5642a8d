package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
	"github.com/pankaj-dahiya-devops/namegov/internal/naming"
	"github.com/pankaj-dahiya-devops/namegov/internal/policy"
	"github.com/pankaj-dahiya-devops/namegov/internal/rules"
)

// NamingEngine is the production implementation of Engine. It evaluates the
// naming rule pack against a collected inventory.
type NamingEngine struct {
	registry         rules.RuleRegistry
	suggester        *naming.Suggester
	policy           *policy.PolicyConfig
	environmentLabel string
	now              func() time.Time
}

// Option configures a NamingEngine.
type Option func(*NamingEngine)

// WithEnvironmentLabel sets the namespace label read for the expected
// environment. Empty keeps rules.DefaultEnvironmentLabel.
func WithEnvironmentLabel(label string) Option {
	return func(e *NamingEngine) { e.environmentLabel = label }
}

// WithClock overrides the clock used for report timestamps and IDs.
func WithClock(now func() time.Time) Option {
	return func(e *NamingEngine) { e.now = now }
}

// NewNamingEngine constructs a NamingEngine wired to the supplied rule
// registry, suggester and policy. suggester may be nil (built-in convention);
// policyCfg may be nil (no overrides).
func NewNamingEngine(
	registry rules.RuleRegistry,
	suggester *naming.Suggester,
	policyCfg *policy.PolicyConfig,
	opts ...Option,
) *NamingEngine {
	if suggester == nil {
		suggester = naming.NewDefaultSuggester()
	}
	e := &NamingEngine{
		registry:  registry,
		suggester: suggester,
		policy:    policyCfg,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunAudit implements Engine. It collects the inventory, evaluates every
// registered rule, applies policy filtering and returns the report.
func (e *NamingEngine) RunAudit(ctx context.Context, auditType AuditType, collector InventoryCollector) (*models.AuditReport, error) {
	inv, err := collector.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect %s inventory: %w", auditType, err)
	}
	return e.Evaluate(auditType, inv), nil
}

// Evaluate runs the rule pack over an already collected inventory.
func (e *NamingEngine) Evaluate(auditType AuditType, inv *models.ResourceInventory) *models.AuditReport {
	rctx := rules.RuleContext{
		Inventory:        inv,
		Suggester:        e.suggester,
		EnvironmentLabel: e.environmentLabel,
		Policy:           e.policy,
	}

	raw := e.registry.EvaluateAll(rctx)
	stampDomain(raw, policy.DomainNaming)

	// Policy runs before the merge so a disabled rule never hides another
	// rule's finding on the same resource.
	filtered := policy.ApplyPolicy(raw, policy.DomainNaming, e.policy)
	merged := mergeFindings(filtered)
	sortFindings(merged)

	now := e.now().UTC()
	report := &models.AuditReport{
		ReportID:    fmt.Sprintf("%s-%d", auditType, now.UnixNano()),
		GeneratedAt: now,
		AuditType:   string(auditType),
		Source:      inv.Source,
		Namespaces:  inv.Namespaces(),
		Summary:     computeSummary(merged, inv.DistinctResources()),
		Findings:    merged,
		Metadata:    inv.Metadata,
	}
	if report.Findings == nil {
		report.Findings = []models.Finding{}
	}
	return report
}

// Policy returns the policy the engine filters with. May be nil.
func (e *NamingEngine) Policy() *policy.PolicyConfig { return e.policy }

// stampDomain sets Domain on every finding.
func stampDomain(findings []models.Finding, domain string) {
	for i := range findings {
		findings[i].Domain = domain
	}
}

// findingGroupKey identifies one resource across rules.
type findingGroupKey struct {
	resourceID string
	source     string
}

// mergeFindings collapses findings for the same resource into one:
//   - Severity: highest across the group
//   - Explanation, Recommendation, ID: from the first finding
//   - Metadata: union, first writer wins; Metadata["rules"] lists every rule ID
//
// Groups keep the order in which their first finding appeared. The input
// slice is not modified.
func mergeFindings(raw []models.Finding) []models.Finding {
	type entry struct {
		f       models.Finding
		ruleIDs []string
	}

	index := make(map[findingGroupKey]int) // key → position in entries
	entries := make([]entry, 0, len(raw))

	for _, f := range raw {
		key := findingGroupKey{resourceID: f.ResourceID, source: f.Source}
		pos, exists := index[key]
		if !exists {
			// First finding for this resource: clone metadata map and use as base.
			meta := make(map[string]any, len(f.Metadata)+1)
			for k, v := range f.Metadata {
				meta[k] = v
			}
			f.Metadata = meta
			entries = append(entries, entry{f: f, ruleIDs: []string{f.RuleID}})
			index[key] = len(entries) - 1
			continue
		}

		e := &entries[pos]
		e.ruleIDs = append(e.ruleIDs, f.RuleID)

		if f.Severity.Rank() > e.f.Severity.Rank() {
			e.f.Severity = f.Severity
		}

		for k, v := range f.Metadata {
			if _, alreadySet := e.f.Metadata[k]; !alreadySet {
				e.f.Metadata[k] = v
			}
		}
	}

	result := make([]models.Finding, 0, len(entries))
	for i := range entries {
		entries[i].f.Metadata["rules"] = entries[i].ruleIDs
		result = append(result, entries[i].f)
	}
	return result
}

// sortFindings orders findings by severity, then by resource ID.
func sortFindings(findings []models.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		ri, rj := findings[i].Severity.Rank(), findings[j].Severity.Rank()
		if ri != rj {
			return ri > rj
		}
		return findings[i].ResourceID < findings[j].ResourceID
	})
}

// computeSummary counts findings per severity. Findings are expected to be
// merged, so each one stands for exactly one violating resource.
func computeSummary(findings []models.Finding, totalResources int) models.AuditSummary {
	var s models.AuditSummary
	s.TotalFindings = len(findings)
	s.TotalResources = totalResources
	s.ViolatingResources = len(findings)
	for _, f := range findings {
		switch f.Severity {
		case models.SeverityCritical:
			s.CriticalFindings++
		case models.SeverityHigh:
			s.HighFindings++
		case models.SeverityMedium:
			s.MediumFindings++
		case models.SeverityLow:
			s.LowFindings++
		}
	}
	s.CompliantResources = totalResources - s.ViolatingResources
	if s.CompliantResources < 0 {
		s.CompliantResources = 0
	}
	return s
}
