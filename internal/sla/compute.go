// Package sla derives the naming-compliance SLA metrics from a raw counter
// snapshot and evaluates them against their targets.
//
// Compute and Evaluator.Evaluate are pure: they consult no clock, file or
// network, so the same snapshot always produces the same metrics.
package sla

import "github.com/pankaj-dahiya-devops/namegov/internal/models"

// Value is a computed metric value before evaluation.
type Value struct {
	Value float64

	// NoData marks a ratio whose denominator was zero. Value then holds the
	// metric's vacuous best-case value (100 for rates, 0 for MFR).
	NoData bool
}

// Values holds the four computed metrics.
type Values struct {
	NCR Value
	VFC Value
	MFR Value
	ARS Value
}

// Get returns the value for name and whether name is a known metric.
func (v Values) Get(name models.MetricName) (Value, bool) {
	switch name {
	case models.MetricNCR:
		return v.NCR, true
	case models.MetricVFC:
		return v.VFC, true
	case models.MetricMFR:
		return v.MFR, true
	case models.MetricARS:
		return v.ARS, true
	}
	return Value{}, false
}

// Compute derives NCR, VFC, MFR and ARS from s.
//
//	NCR = 100 * compliantResources / totalResources
//	VFC = avgFixTimeHours
//	MFR = 100 * manuallyFixedViolations / violationsFixed
//	ARS = 100 * autoFixSuccesses / autoFixAttempts
//
// A zero denominator yields the best-case value with NoData set, so an
// inventory with nothing to measure is vacuously compliant.
func Compute(s models.MetricsSnapshot) Values {
	return Values{
		NCR: percent(s.CompliantResources, s.TotalResources, 100),
		VFC: Value{Value: s.AvgFixTimeHours},
		MFR: percent(s.ManuallyFixedViolations, s.ViolationsFixed, 0),
		ARS: percent(s.AutoFixSuccesses, s.AutoFixAttempts, 100),
	}
}

func percent(num, den int, vacuous float64) Value {
	if den == 0 {
		return Value{Value: vacuous, NoData: true}
	}
	return Value{Value: 100 * float64(num) / float64(den)}
}
