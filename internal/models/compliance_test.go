package models

import (
	"math"
	"strings"
	"testing"
)

func TestMetricsSnapshotValidate(t *testing.T) {
	tests := []struct {
		name    string
		snap    MetricsSnapshot
		wantErr string
	}{
		{"zero", MetricsSnapshot{}, ""},
		{"valid", MetricsSnapshot{TotalResources: 10, CompliantResources: 9, AvgFixTimeHours: 36}, ""},
		{"negative counter", MetricsSnapshot{Violations: -1}, "violations is negative"},
		{"nan", MetricsSnapshot{AvgFixTimeHours: math.NaN()}, "avgFixTime is not a finite number"},
		{"positive inf", MetricsSnapshot{AvgFixTimeHours: math.Inf(1)}, "avgFixTime is not a finite number"},
		{"negative inf", MetricsSnapshot{AvgFixTimeHours: math.Inf(-1)}, "avgFixTime is not a finite number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snap.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v; want error containing %q", err, tt.wantErr)
			}
		})
	}
}
