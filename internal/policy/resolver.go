package policy

import "github.com/pankaj-dahiya-devops/namegov/internal/models"

// ApplyPolicy filters and re-grades findings for one domain. A disabled
// domain drops everything; disabled rules are dropped; rule severity
// overrides are applied before the domain's min_severity filter.
func ApplyPolicy(findings []models.Finding, domain string, cfg *PolicyConfig) []models.Finding {
	if cfg == nil {
		return findings
	}

	minRank := 0
	if d, ok := cfg.Domains[domain]; ok {
		// Domain-level disable
		if !d.Enabled {
			return []models.Finding{}
		}
		if sev, ok := models.ParseSeverity(d.MinSeverity); ok {
			minRank = sev.Rank()
		}
	}

	var result []models.Finding

	for _, f := range findings {
		if !RuleEnabled(f.RuleID, cfg) {
			continue
		}
		if sev, ok := models.ParseSeverity(cfg.Rules[f.RuleID].Severity); ok {
			f.Severity = sev
		}

		if f.Severity.Rank() < minRank {
			continue
		}

		result = append(result, f)
	}

	return result
}

// RuleEnabled reports whether ruleID is enabled under cfg. Rules are enabled
// unless explicitly disabled.
func RuleEnabled(ruleID string, cfg *PolicyConfig) bool {
	if cfg == nil {
		return true
	}
	rc, ok := cfg.Rules[ruleID]
	return !ok || rc.Enabled == nil || *rc.Enabled
}
