package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

func TestNormalizeTimeSlotsOrdersSlotsAndHours(t *testing.T) {
	input := timeSlotsFixture()
	normalized := NormalizeTimeSlots(input)

	require.Len(t, normalized.Slots, 2)
	assert.Equal(t, "morning", normalized.Slots[0].ID)
	assert.Equal(t, "afternoon", normalized.Slots[1].ID)
	assert.Equal(t, []string{"m1", "m2", "m3", "a1", "a2"}, models.HourIDs(normalized.Hours()))
	assert.Empty(t, normalized.Warnings)

	// input untouched
	assert.Equal(t, "afternoon", input[0].ID)
	assert.Equal(t, "a2", input[0].TeachingHours[0].ID)
	assert.Equal(t, "m3", input[1].TeachingHours[0].ID)
}

func TestNormalizeTimeSlotsInvalidStartSortsLast(t *testing.T) {
	slots := append(timeSlotsFixture(), models.TimeSlot{ID: "broken", Name: "Broken", StartTime: "soon"})
	slots[0], slots[2] = slots[2], slots[0]

	normalized := NormalizeTimeSlots(slots)
	require.Len(t, normalized.Slots, 3)
	assert.Equal(t, "broken", normalized.Slots[2].ID)
	require.Len(t, normalized.Warnings, 1)
	assert.Contains(t, normalized.Warnings[0], "Broken")
}

func TestNormalizedHoursByID(t *testing.T) {
	normalized := NormalizeTimeSlots(timeSlotsFixture())
	hours, missing := normalized.HoursByID([]string{"m2", "zz", "a1"})
	assert.Equal(t, []string{"m2", "a1"}, models.HourIDs(hours))
	assert.Equal(t, []string{"zz"}, missing)
	assert.Equal(t, 40, normalized.TypicalHourMinutes())
}
