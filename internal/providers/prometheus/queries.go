package prometheus

import (
	"fmt"
	"math"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
)

// Snapshot field keys, matching the MetricsSnapshot JSON names. Query
// overrides in config are keyed by these.
const (
	FieldTotalResources          = "totalResources"
	FieldCompliantResources      = "compliantResources"
	FieldViolations              = "violations"
	FieldViolationsFixed         = "violationsFixed"
	FieldAutoFixedViolations     = "autoFixedViolations"
	FieldManuallyFixedViolations = "manuallyFixedViolations"
	FieldAvgFixTime              = "avgFixTime"
	FieldAutoFixAttempts         = "autoFixAttempts"
	FieldAutoFixSuccesses        = "autoFixSuccesses"
)

// fieldOrder is the order queries are issued in.
var fieldOrder = []string{
	FieldTotalResources,
	FieldCompliantResources,
	FieldViolations,
	FieldViolationsFixed,
	FieldAutoFixedViolations,
	FieldManuallyFixedViolations,
	FieldAvgFixTime,
	FieldAutoFixAttempts,
	FieldAutoFixSuccesses,
}

// DefaultQueries maps every snapshot field to the PromQL expression used
// when config does not override it. Remediation counters cover a 30 day
// window.
var DefaultQueries = map[string]string{
	FieldTotalResources:          `sum(namegov_resources_total)`,
	FieldCompliantResources:      `sum(namegov_resources_compliant)`,
	FieldViolations:              `sum(namegov_violations_open)`,
	FieldViolationsFixed:         `sum(increase(namegov_violations_fixed_total[30d]))`,
	FieldAutoFixedViolations:     `sum(increase(namegov_violations_fixed_total{method="auto"}[30d]))`,
	FieldManuallyFixedViolations: `sum(increase(namegov_violations_fixed_total{method="manual"}[30d]))`,
	FieldAvgFixTime:              `sum(increase(namegov_violation_fix_duration_hours_sum[30d])) / sum(increase(namegov_violation_fix_duration_hours_count[30d]))`,
	FieldAutoFixAttempts:         `sum(increase(namegov_autofix_attempts_total[30d]))`,
	FieldAutoFixSuccesses:        `sum(increase(namegov_autofix_successes_total[30d]))`,
}

// resolveQueries overlays overrides onto DefaultQueries. Keys that are not
// snapshot fields are rejected.
func resolveQueries(overrides map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(DefaultQueries))
	for k, v := range DefaultQueries {
		out[k] = v
	}
	for k, v := range overrides {
		if _, ok := DefaultQueries[k]; !ok {
			return nil, fmt.Errorf("unknown snapshot field %q in prometheus queries", k)
		}
		if v != "" {
			out[k] = v
		}
	}
	return out, nil
}

// setField stores a query result in snap. Counters are rounded to the
// nearest integer since increase() extrapolates.
func setField(snap *models.MetricsSnapshot, field string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	n := int(math.Round(v))
	switch field {
	case FieldTotalResources:
		snap.TotalResources = n
	case FieldCompliantResources:
		snap.CompliantResources = n
	case FieldViolations:
		snap.Violations = n
	case FieldViolationsFixed:
		snap.ViolationsFixed = n
	case FieldAutoFixedViolations:
		snap.AutoFixedViolations = n
	case FieldManuallyFixedViolations:
		snap.ManuallyFixedViolations = n
	case FieldAvgFixTime:
		snap.AvgFixTimeHours = v
	case FieldAutoFixAttempts:
		snap.AutoFixAttempts = n
	case FieldAutoFixSuccesses:
		snap.AutoFixSuccesses = n
	}
}
