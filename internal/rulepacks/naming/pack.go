// Package naming provides the naming-convention rule pack applied to
// Kubernetes clusters and manifest directories.
package naming

import "github.com/pankaj-dahiya-devops/namegov/internal/rules"

// New returns the complete set of naming rules ordered by severity:
// HIGH first, then MEDIUM, then LOW.
func New() []rules.Rule {
	return []rules.Rule{
		// HIGH
		rules.K8SNamePolicyViolationRule{}, // K8S_NAME_POLICY_VIOLATION

		// MEDIUM
		rules.K8SNameTypeMismatchRule{}, // K8S_NAME_TYPE_MISMATCH
		rules.K8SNameEnvMismatchRule{},  // K8S_NAME_ENV_MISMATCH

		// LOW
		rules.K8SNameTooLongRule{}, // K8S_NAME_TOO_LONG
	}
}

// RuleIDs returns the IDs of every rule in the pack, in pack order. Used to
// validate policy files.
func RuleIDs() []string {
	pack := New()
	ids := make([]string, 0, len(pack))
	for _, r := range pack {
		ids = append(ids, r.ID())
	}
	return ids
}
