package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

func TestDeriveTeacherMetadata(t *testing.T) {
	sessions := []models.ClassSession{
		classSession("s1", models.Monday, teacherAna, groupA, mathCourse, room101, models.SessionTypeTheory, hourM1, hourM2),
		classSession("s2", models.Monday, teacherAna, groupB, mathCourse, room101, models.SessionTypeTheory, hourA1),
		classSession("s3", models.Thursday, teacherAna, groupA, mathCourse, labA, models.SessionTypePractice, hourM3),
		classSession("s4", models.Thursday, teacherBen, groupA, historyCourse, room102, models.SessionTypeTheory, hourM1),
	}
	meta := DeriveTeacherMetadata(teacherAna.ID, sessions, 16)

	assert.Equal(t, 4, meta.TotalHours)
	assert.Equal(t, 3, meta.TotalSessions)
	assert.Len(t, meta.SessionsByDay[models.Monday], 2)
	assert.Len(t, meta.SessionsByDay[models.Thursday], 1)
	assert.Equal(t, 25.0, meta.WorkloadPercentage)
}

func TestWorkloadPercentageBounds(t *testing.T) {
	assert.Equal(t, 0.0, workloadPercentage(5, 0))
	assert.Equal(t, 100.0, workloadPercentage(50, 10))
	assert.Equal(t, 33.3, workloadPercentage(1, 3))
}

func TestEstimateWeeklyAvailableHours(t *testing.T) {
	windows := []models.AvailabilityWindow{
		window(teacherAna.ID, models.Monday, "07:00", "09:00"),
		window(teacherAna.ID, models.Monday, "08:00", "10:00"),
		window(teacherAna.ID, models.Tuesday, "13:00", "14:20"),
		window(teacherAna.ID, models.Sunday, "07:00", "12:00"),
		window(teacherAna.ID, models.Friday, "bad", "worse"),
	}
	assert.Equal(t, 6.5, EstimateWeeklyAvailableHours(windows, workingDays, 40))
	assert.InDelta(t, 4.333, EstimateWeeklyAvailableHours(windows, workingDays, 0), 0.001)
	assert.Zero(t, EstimateWeeklyAvailableHours(nil, workingDays, 40))
}
