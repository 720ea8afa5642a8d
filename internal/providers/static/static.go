// Package static provides a fixed in-memory metrics source.
package static

import (
	"context"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
)

// Name is the source kind selected with --source static.
const Name = "static"

// ReferenceSnapshot is the built-in sample the SLA report is computed from
// when no live source is configured.
var ReferenceSnapshot = models.MetricsSnapshot{
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

// Source returns the same snapshot on every call.
type Source struct {
	snapshot models.MetricsSnapshot
}

// New returns a Source serving ReferenceSnapshot.
func New() *Source {
	return NewWithSnapshot(ReferenceSnapshot)
}

// NewWithSnapshot returns a Source serving snap.
func NewWithSnapshot(snap models.MetricsSnapshot) *Source {
	return &Source{snapshot: snap}
}

func (s *Source) Name() string { return Name }

func (s *Source) Snapshot(ctx context.Context) (models.MetricsSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.MetricsSnapshot{}, err
	}
	return s.snapshot, nil
}
