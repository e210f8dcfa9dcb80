package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

func TestBuildScheduleGridOccupancy(t *testing.T) {
	session := classSession("s1", models.Tuesday, teacherAna, groupA, mathCourse, room101, models.SessionTypeTheory, hourM1, hourM2)
	grid := gridFixture(session)

	require.Len(t, grid.Rows, 5)
	assert.Equal(t, workingDays, grid.Days)
	for _, row := range grid.Rows {
		assert.Len(t, row.Cells, len(workingDays))
	}

	first := grid.Rows[0]
	assert.True(t, first.IsFirstInSlot)
	assert.False(t, first.IsLastInSlot)
	assert.Equal(t, "Morning", first.TimeSlotName)
	assert.True(t, grid.Rows[2].IsLastInSlot)
	assert.Equal(t, 2, grid.Rows[2].IndexInSlot)

	cell, ok := grid.Cell(models.Tuesday, "m1")
	require.True(t, ok)
	assert.False(t, cell.IsAvailable)
	require.NotNil(t, cell.Session)
	assert.Equal(t, "s1", cell.Session.ID)

	cell, ok = grid.Cell(models.Monday, "m1")
	require.True(t, ok)
	assert.True(t, cell.IsAvailable)

	_, ok = grid.Cell(models.Sunday, "m1")
	assert.False(t, ok)

	assert.Equal(t, 2, grid.OccupiedCount())
	assert.Equal(t, []string{"afternoon"}, grid.CollapsibleSlots)
}

func TestBuildScheduleGridIsIdempotent(t *testing.T) {
	sessions := []models.ClassSession{
		classSession("s1", models.Monday, teacherAna, groupA, mathCourse, room101, models.SessionTypeTheory, hourM1, hourM2),
		classSession("s2", models.Friday, teacherBen, groupA, historyCourse, room102, models.SessionTypeTheory, hourA1),
	}
	first := gridFixture(sessions...)
	second := gridFixture(sessions...)
	assert.Equal(t, first.Rows, second.Rows)
	assert.Equal(t, first.CollapsibleSlots, second.CollapsibleSlots)
	assert.Empty(t, first.CollapsibleSlots)
}

func TestBuildScheduleGridReportsDoubleOccupancy(t *testing.T) {
	grid := gridFixture(
		classSession("s1", models.Monday, teacherAna, groupA, mathCourse, room101, models.SessionTypeTheory, hourM1),
		classSession("s2", models.Monday, teacherBen, groupA, historyCourse, room102, models.SessionTypeTheory, hourM1),
	)
	cell, _ := grid.Cell(models.Monday, "m1")
	assert.Equal(t, "s1", cell.Session.ID)
	require.Len(t, grid.Warnings, 1)
	assert.Contains(t, grid.Warnings[0], "s2")
}

func TestMarkSelectedOnlyHighlights(t *testing.T) {
	grid := gridFixture()
	grid.MarkSelected([]models.SelectedCellInfo{selected(models.Monday, hourM1)})
	cell, _ := grid.Cell(models.Monday, "m1")
	assert.True(t, cell.Selected)
	assert.True(t, cell.IsAvailable)

	grid.MarkSelected(nil)
	cell, _ = grid.Cell(models.Monday, "m1")
	assert.False(t, cell.Selected)
}

func TestSelectedCellResolvesHour(t *testing.T) {
	grid := gridFixture()
	info, ok := SelectedCell(grid, models.Wednesday, "a2")
	require.True(t, ok)
	assert.Equal(t, "afternoon", info.TimeSlotID)
	assert.Equal(t, 2, info.Hour.OrderInTimeSlot)

	_, ok = SelectedCell(grid, models.Wednesday, "missing")
	assert.False(t, ok)
	_, ok = SelectedCell(nil, models.Wednesday, "a2")
	assert.False(t, ok)
}
