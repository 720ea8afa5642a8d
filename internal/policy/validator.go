package policy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
)

// knownDomains lists the domains a policy may configure.
var knownDomains = []string{DomainNaming}

// problems accumulates validation errors in a stable order.
type problems []error

func (p *problems) addf(format string, args ...any) {
	*p = append(*p, fmt.Errorf(format, args...))
}

func (p *problems) domain(path, name string) {
	for _, d := range knownDomains {
		if d == name {
			return
		}
	}
	p.addf("%s: unknown domain; valid values: %s", path, strings.Join(knownDomains, ", "))
}

// severity records an error for a non-empty value that is not a known severity.
func (p *problems) severity(path, value string) {
	if value == "" {
		return
	}
	if _, ok := models.ParseSeverity(value); !ok {
		p.addf("%s: invalid value %q; valid values: %s", path, value, severityList())
	}
}

func severityList() string {
	names := make([]string, len(models.Severities))
	for i, s := range models.Severities {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks cfg against the policy schema and the rule IDs the active
// rule pack exposes. Every problem is reported; an empty result means valid.
// Errors are ordered by section (version, domains, rules, enforcement) and by
// key within a section.
func Validate(cfg *PolicyConfig, availableRuleIDs []string) []error {
	if cfg == nil {
		return []error{fmt.Errorf("policy config is nil")}
	}

	known := make(map[string]bool, len(availableRuleIDs))
	for _, id := range availableRuleIDs {
		known[id] = true
	}

	var p problems

	if cfg.Version != 1 {
		p.addf("version: unsupported value %d; must be 1", cfg.Version)
	}

	for _, name := range sortedKeys(cfg.Domains) {
		p.domain("domains."+name, name)
		p.severity("domains."+name+".min_severity", cfg.Domains[name].MinSeverity)
	}

	for _, id := range sortedKeys(cfg.Rules) {
		rc := cfg.Rules[id]
		if !known[id] {
			p.addf("rules.%s: unknown rule ID", id)
		}
		p.severity("rules."+id+".severity", rc.Severity)
		for _, key := range sortedKeys(rc.Params) {
			if v := rc.Params[key]; !isPositiveWhole(v) {
				p.addf("rules.%s.params.%s: must be a positive whole number, got %g", id, key, v)
			}
		}
	}

	for _, name := range sortedKeys(cfg.Enforcement) {
		p.domain("enforcement."+name, name)
		p.severity("enforcement."+name+".fail_on_severity", cfg.Enforcement[name].FailOnSeverity)
	}

	return p
}
