package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"
)

// Status is the binary verdict of an SLA comparison.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

// MetricName identifies one of the four naming-compliance SLA metrics.
type MetricName string

const (
	// MetricNCR is the naming compliance rate (percent of compliant resources).
	MetricNCR MetricName = "NCR"
	// MetricVFC is the violation fix cycle (average hours to fix a violation).
	MetricVFC MetricName = "VFC"
	// MetricMFR is the manual fix ratio (percent of fixes made by hand).
	MetricMFR MetricName = "MFR"
	// MetricARS is the auto-remediation success rate (percent of auto-fix attempts that succeeded).
	MetricARS MetricName = "ARS"
)

// MetricOrder is the fixed report order of the SLA metrics.
var MetricOrder = []MetricName{MetricNCR, MetricVFC, MetricMFR, MetricARS}

// MetricsSnapshot holds the raw counters the SLA metrics are derived from.
// A snapshot is always supplied as one value; the calculator never observes
// a partially updated snapshot.
type MetricsSnapshot struct {
	TotalResources          int     `json:"totalResources"          yaml:"totalResources"`
	CompliantResources      int     `json:"compliantResources"      yaml:"compliantResources"`
	Violations              int     `json:"violations"              yaml:"violations"`
	ViolationsFixed         int     `json:"violationsFixed"         yaml:"violationsFixed"`
	AutoFixedViolations     int     `json:"autoFixedViolations"     yaml:"autoFixedViolations"`
	ManuallyFixedViolations int     `json:"manuallyFixedViolations" yaml:"manuallyFixedViolations"`
	AvgFixTimeHours         float64 `json:"avgFixTime"              yaml:"avgFixTime"`
	AutoFixAttempts         int     `json:"autoFixAttempts"         yaml:"autoFixAttempts"`
	AutoFixSuccesses        int     `json:"autoFixSuccesses"        yaml:"autoFixSuccesses"`
}

// Validate rejects snapshots with negative or non-finite counters.
func (s MetricsSnapshot) Validate() error {
	counters := []struct {
		name string
		v    float64
	}{
		{"totalResources", float64(s.TotalResources)},
		{"compliantResources", float64(s.CompliantResources)},
		{"violations", float64(s.Violations)},
		{"violationsFixed", float64(s.ViolationsFixed)},
		{"autoFixedViolations", float64(s.AutoFixedViolations)},
		{"manuallyFixedViolations", float64(s.ManuallyFixedViolations)},
		{"avgFixTime", s.AvgFixTimeHours},
		{"autoFixAttempts", float64(s.AutoFixAttempts)},
		{"autoFixSuccesses", float64(s.AutoFixSuccesses)},
	}
	for _, c := range counters {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) {
			return fmt.Errorf("snapshot field %s is not a finite number (%v)", c.name, c.v)
		}
		if c.v < 0 {
			return fmt.Errorf("snapshot field %s is negative (%v)", c.name, c.v)
		}
	}
	return nil
}

// ComplianceMetric is one evaluated SLA metric.
type ComplianceMetric struct {
	Name   MetricName `json:"-"`
	Value  float64    `json:"value"`
	Target float64    `json:"target"`
	Unit   string     `json:"unit"`
	Status Status     `json:"status"`

	// NoData is true when the metric's denominator was zero and Value is the
	// vacuous best-case value rather than a measurement.
	NoData bool `json:"noData,omitempty"`
}

// MetricSet is the ordered set of evaluated metrics in a report. It encodes
// as a JSON object keyed by metric name, in slice order.
type MetricSet []ComplianceMetric

// Get returns the metric named name.
func (ms MetricSet) Get(name MetricName) (ComplianceMetric, bool) {
	for _, m := range ms {
		if m.Name == name {
			return m, true
		}
	}
	return ComplianceMetric{}, false
}

// AllPass reports whether ms is non-empty and every metric passed.
func (ms MetricSet) AllPass() bool {
	if len(ms) == 0 {
		return false
	}
	for _, m := range ms {
		if m.Status != StatusPass {
			return false
		}
	}
	return true
}

// MarshalJSON implements json.Marshaler, keeping metric order stable.
func (ms MetricSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range ms {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(m.Name))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. Metrics are restored in the
// canonical MetricOrder; unknown names follow in lexical order.
func (ms *MetricSet) UnmarshalJSON(data []byte) error {
	var raw map[string]ComplianceMetric
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(MetricSet, 0, len(raw))
	for _, name := range MetricOrder {
		if m, ok := raw[string(name)]; ok {
			m.Name = name
			out = append(out, m)
			delete(raw, string(name))
		}
	}
	rest := make([]string, 0, len(raw))
	for name := range raw {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	for _, name := range rest {
		m := raw[name]
		m.Name = MetricName(name)
		out = append(out, m)
	}
	*ms = out
	return nil
}

// ComplianceReport is the full SLA report. It is built once per run and never
// modified afterwards.
type ComplianceReport struct {
	Timestamp time.Time       `json:"timestamp"`
	Metrics   MetricSet       `json:"metrics"`
	RawData   MetricsSnapshot `json:"rawData"`
}

// OverallStatus is PASS when every metric in the report passed.
func (r ComplianceReport) OverallStatus() Status {
	if r.Metrics.AllPass() {
		return StatusPass
	}
	return StatusFail
}
