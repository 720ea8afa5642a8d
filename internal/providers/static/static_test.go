package static

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pankaj-dahiya-devops/namegov/internal/models"
)

func TestSource_ReferenceSnapshot(t *testing.T) {
	src := New()
	assert.Equal(t, "static", src.Name())

	snap, err := src.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1250, snap.TotalResources)
	assert.Equal(t, 1232, snap.CompliantResources)
	assert.Equal(t, 3, snap.ManuallyFixedViolations)
	assert.Equal(t, 36.0, snap.AvgFixTimeHours)
	require.NoError(t, snap.Validate())
}

func TestSource_Deterministic(t *testing.T) {
	src := NewWithSnapshot(models.MetricsSnapshot{TotalResources: 7})
	first, err := src.Snapshot(context.Background())
	require.NoError(t, err)
	second, err := src.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Snapshot(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
