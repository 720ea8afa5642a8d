package sla

import (
	"fmt"
	"math"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
)

// Polarity is the comparison direction of a metric. It is part of the
// metric's definition and is never inferred from the target value.
type Polarity int

const (
	// HigherIsBetter passes when value >= target.
	HigherIsBetter Polarity = iota
	// LowerIsBetter passes when value <= target.
	LowerIsBetter
)

func (p Polarity) String() string {
	if p == LowerIsBetter {
		return "<="
	}
	return ">="
}

// Target is the SLA threshold for one metric.
type Target struct {
	Name     models.MetricName
	Value    float64
	Unit     string
	Polarity Polarity
}

// Status returns PASS when value satisfies t.
func (t Target) Status(value float64) models.Status {
	var ok bool
	switch t.Polarity {
	case LowerIsBetter:
		ok = value <= t.Value
	default:
		ok = value >= t.Value
	}
	if ok {
		return models.StatusPass
	}
	return models.StatusFail
}

// DefaultTargets returns the fixed SLA targets in report order:
// NCR >= 95 %, VFC <= 48 hours, MFR <= 20 %, ARS >= 80 %.
func DefaultTargets() []Target {
	return []Target{
		{Name: models.MetricNCR, Value: 95, Unit: "%", Polarity: HigherIsBetter},
		{Name: models.MetricVFC, Value: 48, Unit: "hours", Polarity: LowerIsBetter},
		{Name: models.MetricMFR, Value: 20, Unit: "%", Polarity: LowerIsBetter},
		{Name: models.MetricARS, Value: 80, Unit: "%", Polarity: HigherIsBetter},
	}
}

// Evaluator compares computed metrics to a fixed set of targets.
type Evaluator struct {
	targets []Target
}

// NewEvaluator returns an Evaluator over targets. Every target must name a
// known metric and a metric may appear only once.
func NewEvaluator(targets []Target) (*Evaluator, error) {
	seen := make(map[models.MetricName]bool, len(targets))
	for _, t := range targets {
		if _, ok := (Values{}).Get(t.Name); !ok {
			return nil, fmt.Errorf("unknown SLA metric %q", t.Name)
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("duplicate SLA target for %q", t.Name)
		}
		seen[t.Name] = true
	}
	cp := make([]Target, len(targets))
	copy(cp, targets)
	return &Evaluator{targets: cp}, nil
}

// NewDefaultEvaluator returns an Evaluator over DefaultTargets.
func NewDefaultEvaluator() *Evaluator {
	return &Evaluator{targets: DefaultTargets()}
}

// Targets returns a copy of the evaluator's targets in evaluation order.
func (e *Evaluator) Targets() []Target {
	cp := make([]Target, len(e.targets))
	copy(cp, e.targets)
	return cp
}

// Evaluate assigns a status to every metric, in target order. Status is
// decided on the unrounded value; the reported Value is rounded to two
// decimals.
func (e *Evaluator) Evaluate(v Values) models.MetricSet {
	out := make(models.MetricSet, 0, len(e.targets))
	for _, t := range e.targets {
		val, _ := v.Get(t.Name)
		out = append(out, models.ComplianceMetric{
			Name:   t.Name,
			Value:  round2(val.Value),
			Target: t.Value,
			Unit:   t.Unit,
			Status: t.Status(val.Value),
			NoData: val.NoData,
		})
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
