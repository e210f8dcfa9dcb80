package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	minutes, err := parseClock("07:40")
	require.NoError(t, err)
	assert.Equal(t, 460, minutes)

	minutes, err = parseClock("23:59:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, minutes)

	for _, raw := range []string{"", "7", "24:00", "07:60", "aa:bb", "07:00:61", "1:2:3:4"} {
		_, err := parseClock(raw)
		assert.Error(t, err, raw)
	}
}

func TestClockRangeAcrossMidnight(t *testing.T) {
	night, err := newClockRange("23:00", "01:00")
	require.NoError(t, err)
	assert.Equal(t, 120, night.duration())
	assert.Equal(t, "23:00–01:00", night.String())

	early, err := newClockRange("00:30", "00:50")
	require.NoError(t, err)
	assert.True(t, night.overlaps(early))
	assert.True(t, early.overlaps(night))
	assert.True(t, night.covers(early))

	morning, err := newClockRange("07:00", "08:00")
	require.NoError(t, err)
	assert.False(t, night.overlaps(morning))

	_, err = newClockRange("08:00", "08:00")
	assert.Error(t, err)
}

func TestClockRangeHalfOpen(t *testing.T) {
	first, _ := newClockRange("07:00", "07:40")
	second, _ := newClockRange("07:40", "08:20")
	assert.False(t, first.overlaps(second))

	whole, _ := newClockRange("07:00", "08:20")
	assert.True(t, whole.covers(first))
	assert.True(t, whole.covers(second))
	assert.False(t, first.covers(whole))
}

func TestMergeClockRanges(t *testing.T) {
	merged := mergeClockRanges([]clockRange{
		{start: 600, end: 660},
		{start: 420, end: 480},
		{start: 480, end: 540},
		{start: 650, end: 700},
	})
	assert.Equal(t, []clockRange{{start: 420, end: 540}, {start: 600, end: 700}}, merged)
	assert.Nil(t, mergeClockRanges(nil))
}
