package sla

import (
	"testing"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
)

// referenceSnapshot is the fixed counter set the report command ships with.
func referenceSnapshot() models.MetricsSnapshot {
	return models.MetricsSnapshot{
		TotalResources:          1250,
		CompliantResources:      1232,
		Violations:              18,
		ViolationsFixed:         15,
		AutoFixedViolations:     12,
		ManuallyFixedViolations: 3,
		AvgFixTimeHours:         36,
		AutoFixAttempts:         15,
		AutoFixSuccesses:        12,
	}
}

func TestCompute_ReferenceSnapshot(t *testing.T) {
	v := Compute(referenceSnapshot())

	if round2(v.NCR.Value) != 98.56 {
		t.Errorf("NCR = %v; want 98.56", v.NCR.Value)
	}
	if v.VFC.Value != 36 {
		t.Errorf("VFC = %v; want 36", v.VFC.Value)
	}
	// The boundary values must be exact so that they pass their targets.
	if v.MFR.Value != 20 {
		t.Errorf("MFR = %v; want exactly 20", v.MFR.Value)
	}
	if v.ARS.Value != 80 {
		t.Errorf("ARS = %v; want exactly 80", v.ARS.Value)
	}
	for _, name := range models.MetricOrder {
		val, _ := v.Get(name)
		if val.NoData {
			t.Errorf("%s NoData = true; want false", name)
		}
	}
}

func TestCompute_ZeroDenominators(t *testing.T) {
	v := Compute(models.MetricsSnapshot{AvgFixTimeHours: 0})

	tests := []struct {
		name models.MetricName
		want float64
	}{
		{models.MetricNCR, 100},
		{models.MetricMFR, 0},
		{models.MetricARS, 100},
	}
	for _, tt := range tests {
		got, _ := v.Get(tt.name)
		if !got.NoData {
			t.Errorf("%s NoData = false; want true", tt.name)
		}
		if got.Value != tt.want {
			t.Errorf("%s = %v; want %v", tt.name, got.Value, tt.want)
		}
	}
	if v.VFC.NoData {
		t.Error("VFC is a pass-through value and never NoData")
	}
}

func TestCompute_PassesFixTimeThrough(t *testing.T) {
	s := referenceSnapshot()
	s.AvgFixTimeHours = 71.25
	if got := Compute(s).VFC.Value; got != 71.25 {
		t.Errorf("VFC = %v; want 71.25", got)
	}
}

func TestValues_GetUnknown(t *testing.T) {
	if _, ok := (Values{}).Get("XYZ"); ok {
		t.Error("Get(XYZ) ok = true; want false")
	}
}
