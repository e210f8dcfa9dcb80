package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
	appErrors "github.com/noah-isme/sma-schedule-engine/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()
	var dest []string

	assert.ErrorIs(t, repo.GetSnapshot(ctx, models.SnapshotTimeSlots, &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.SetSnapshot(ctx, models.SnapshotTimeSlots, []string{"x"}, time.Minute))
	gen, err := repo.NextGeneration(ctx)
	require.NoError(t, err)
	assert.Zero(t, gen)
}

func TestSnapshotKeyLayout(t *testing.T) {
	assert.Equal(t, "schedule:snapshot:g0:time-slots", snapshotKey(0, models.SnapshotTimeSlots))
	assert.Equal(t, "schedule:snapshot:g12:time-slots", snapshotKey(12, models.SnapshotTimeSlots))
	assert.NotEqual(t, snapshotGenerationKey, snapshotKey(0, "generation"))
}

func TestUIHintRepositoryWithoutClient(t *testing.T) {
	repo := NewUIHintRepository(nil)

	seen, err := repo.Seen(context.Background(), "user-1", "multi-cell-selection")
	require.NoError(t, err)
	assert.False(t, seen)
	assert.NoError(t, repo.MarkSeen(context.Background(), "user-1", "multi-cell-selection", true, time.Hour))
}

func TestUIHintKeyLayout(t *testing.T) {
	assert.Equal(t, "ui-hint:user-1:multi-cell-selection", uiHintKey("user-1", "multi-cell-selection"))
}
