package policy

import "github.com/pankaj-dahiya-devops/namegov/internal/models"

// FailThreshold returns the fail_on_severity configured for domain. ok is
// false when cfg is nil, the domain has no enforcement block, or the value is
// empty or unrecognised.
func FailThreshold(domain string, cfg *PolicyConfig) (models.Severity, bool) {
	if cfg == nil {
		return "", false
	}
	enf, ok := cfg.Enforcement[domain]
	if !ok || enf.FailOnSeverity == "" {
		return "", false
	}
	return models.ParseSeverity(enf.FailOnSeverity)
}

// Blocking returns the findings at or above the domain's fail threshold, in
// input order. It returns nil when no threshold applies.
func Blocking(domain string, findings []models.Finding, cfg *PolicyConfig) []models.Finding {
	threshold, ok := FailThreshold(domain, cfg)
	if !ok {
		return nil
	}
	var blocking []models.Finding
	for _, f := range findings {
		if f.Severity.Rank() >= threshold.Rank() {
			blocking = append(blocking, f)
		}
	}
	return blocking
}

// ShouldFail reports whether any finding reaches the domain's fail_on_severity.
func ShouldFail(domain string, findings []models.Finding, cfg *PolicyConfig) bool {
	return len(Blocking(domain, findings, cfg)) > 0
}
