package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
	appErrors "github.com/noah-isme/sma-schedule-engine/pkg/errors"
)

func TestCourseQuotaPartialProgress(t *testing.T) {
	sessions := []models.ClassSession{
		classSession("s1", models.Monday, teacherAna, groupA, mathCourse, room101, models.SessionTypeTheory, hourM1, hourM2),
		classSession("s2", models.Wednesday, teacherAna, groupA, mathCourse, room101, models.SessionTypeTheory, hourA1, hourA2),
		classSession("s3", models.Friday, teacherBen, groupA, historyCourse, room102, models.SessionTypeTheory, hourM1),
	}

	meta := CourseQuota(mathCourse, sessions)
	assert.Equal(t, 4, meta.AssignedTheoryHours)
	assert.Equal(t, 0, meta.AssignedPracticeHours)
	assert.Equal(t, 0, meta.RemainingTheoryHours)
	assert.Equal(t, 2, meta.RemainingPracticeHours)
	assert.Equal(t, 67, meta.ProgressPercentage)
	assert.False(t, meta.IsCompleted)
	assert.Equal(t, 2, meta.SessionCount)
}

func TestCourseQuotaIdentityHolds(t *testing.T) {
	hourSets := [][]models.TeachingHour{{hourM1}, {hourM1, hourM2}, {hourA1, hourA2}}
	var sessions []models.ClassSession
	for i, hours := range hourSets {
		sessions = append(sessions, classSession("s", models.AllDays()[i], teacherAna, groupA, mathCourse, room101, models.SessionTypeTheory, hours...))
		meta := CourseQuota(mathCourse, sessions)
		if meta.AssignedTheoryHours <= meta.RequiredTheoryHours {
			assert.Equal(t, meta.RequiredTheoryHours, meta.AssignedTheoryHours+meta.RemainingTheoryHours)
		} else {
			assert.Zero(t, meta.RemainingTheoryHours)
		}
		assert.Equal(t, meta.RequiredPracticeHours, meta.AssignedPracticeHours+meta.RemainingPracticeHours)
	}
}

func TestCourseQuotaBoundaries(t *testing.T) {
	empty := CourseQuota(mathCourse, nil)
	assert.Equal(t, 0, empty.ProgressPercentage)
	assert.False(t, empty.IsCompleted)

	nothingRequired := CourseQuota(models.Course{ID: "club", Name: "Club"}, nil)
	assert.Equal(t, 100, nothingRequired.ProgressPercentage)
	assert.True(t, nothingRequired.IsCompleted)

	sessions := []models.ClassSession{
		classSession("s1", models.Monday, teacherAna, groupA, historyCourse, room101, models.SessionTypeTheory, hourM1, hourM2, hourM3),
	}
	over := CourseQuota(historyCourse, sessions)
	assert.Equal(t, 100, over.ProgressPercentage)
	assert.True(t, over.IsCompleted)
	assert.Equal(t, 3, over.AssignedTheoryHours)
	assert.Zero(t, over.RemainingTheoryHours)
}

func TestSummarizeCourseMetadata(t *testing.T) {
	sessions := []models.ClassSession{
		classSession("s1", models.Monday, teacherAna, groupA, historyCourse, room101, models.SessionTypeTheory, hourM1, hourM2, hourM3),
		classSession("s2", models.Tuesday, teacherAna, groupA, mathCourse, labA, models.SessionTypePractice, hourM1, hourM2),
	}
	items := DeriveCourseMetadata([]models.Course{mathCourse, historyCourse}, sessions)
	require.Len(t, items, 2)
	assert.Equal(t, "math", items[0].CourseID)

	summary := SummarizeCourseMetadata(items)
	assert.Equal(t, 2, summary.TotalCourses)
	assert.Equal(t, 1, summary.CompletedCourses)
	assert.Equal(t, 8, summary.RequiredHours)
	assert.Equal(t, 5, summary.AssignedHours)
	assert.Equal(t, 4, summary.RemainingHours)
	assert.Equal(t, 1, summary.OverAssignedHours)
	assert.Equal(t, 50, summary.OverallProgress)
}

func TestResolveSessionTypes(t *testing.T) {
	choice, err := ResolveSessionTypes(mathCourse, CourseQuota(mathCourse, nil))
	require.NoError(t, err)
	assert.True(t, choice.RequiresChoice)
	assert.Equal(t, []models.SessionType{models.SessionTypeTheory, models.SessionTypePractice}, choice.Open)
	assert.Empty(t, choice.AutoSelected)

	choice, err = ResolveSessionTypes(historyCourse, CourseQuota(historyCourse, nil))
	require.NoError(t, err)
	assert.False(t, choice.RequiresChoice)
	assert.Equal(t, models.SessionTypeTheory, choice.AutoSelected)
	assert.False(t, choice.Allows(models.SessionTypePractice))

	theoryDone := []models.ClassSession{
		classSession("s1", models.Monday, teacherAna, groupA, mathCourse, room101, models.SessionTypeTheory, hourM1, hourM2),
		classSession("s2", models.Tuesday, teacherAna, groupA, mathCourse, room101, models.SessionTypeTheory, hourM1, hourM2),
	}
	choice, err = ResolveSessionTypes(mathCourse, CourseQuota(mathCourse, theoryDone))
	require.NoError(t, err)
	assert.Equal(t, models.SessionTypePractice, choice.AutoSelected)

	full := append(theoryDone, classSession("s3", models.Friday, teacherAna, groupA, mathCourse, labA, models.SessionTypePractice, hourA1, hourA2))
	_, err = ResolveSessionTypes(mathCourse, CourseQuota(mathCourse, full))
	assert.ErrorIs(t, err, appErrors.ErrSessionTypeClosed)

	_, err = ResolveSessionTypes(models.Course{ID: "club"}, models.CourseMetadata{})
	assert.ErrorIs(t, err, appErrors.ErrSessionTypeClosed)
}
