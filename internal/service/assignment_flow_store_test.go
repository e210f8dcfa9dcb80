package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/sma-schedule-engine/pkg/errors"
)

func TestAssignmentFlowStoreExpiry(t *testing.T) {
	metrics := NewMetricsService()
	store := NewAssignmentFlowStore(time.Minute, metrics)
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	orchestrator := NewAssignmentOrchestrator(newStubGateway(), OrchestratorOptions{}, metrics, nil)
	id := store.Put(orchestrator)
	require.NotEmpty(t, id)
	assert.Equal(t, 1, metrics.Snapshot().ActiveFlows)

	now = now.Add(50 * time.Second)
	got, err := store.Get(id)
	require.NoError(t, err)
	assert.Same(t, orchestrator, got)

	// Get extended the expiry
	now = now.Add(50 * time.Second)
	_, err = store.Get(id)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(id)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Zero(t, store.Len())
	assert.Zero(t, metrics.Snapshot().ActiveFlows)
}

func TestAssignmentFlowStoreSweepAndDelete(t *testing.T) {
	store := NewAssignmentFlowStore(time.Minute, nil)
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	first := store.Put(NewAssignmentOrchestrator(newStubGateway(), OrchestratorOptions{}, nil, nil))
	now = now.Add(45 * time.Second)
	second := store.Put(NewAssignmentOrchestrator(newStubGateway(), OrchestratorOptions{}, nil, nil))
	assert.NotEqual(t, first, second)

	now = now.Add(30 * time.Second)
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())

	store.Delete(second)
	store.Delete("unknown")
	assert.Zero(t, store.Len())
}
