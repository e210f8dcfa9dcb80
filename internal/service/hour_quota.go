package service

import (
	"fmt"
	"math"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
	appErrors "github.com/noah-isme/sma-schedule-engine/pkg/errors"
)

// DeriveCourseMetadata projects hour quotas for every course from the session snapshot.
// Sessions of courses outside the list are ignored. Output follows the course order.
func DeriveCourseMetadata(courses []models.Course, sessions []models.ClassSession) []models.CourseMetadata {
	byCourse := make(map[string][]models.ClassSession, len(courses))
	for _, session := range sessions {
		byCourse[session.Course.ID] = append(byCourse[session.Course.ID], session)
	}
	metadata := make([]models.CourseMetadata, 0, len(courses))
	for _, course := range courses {
		metadata = append(metadata, CourseQuota(course, byCourse[course.ID]))
	}
	return metadata
}

// CourseQuota computes the quota of one course from its sessions.
func CourseQuota(course models.Course, sessions []models.ClassSession) models.CourseMetadata {
	meta := models.CourseMetadata{
		CourseID:              course.ID,
		CourseCode:            course.Code,
		CourseName:            course.Name,
		RequiredTheoryHours:   course.WeeklyTheoryHours,
		RequiredPracticeHours: course.WeeklyPracticeHours,
	}
	for _, session := range sessions {
		if session.Course.ID != course.ID {
			continue
		}
		meta.SessionCount++
		switch session.SessionType {
		case models.SessionTypeTheory:
			meta.AssignedTheoryHours += session.HourCount()
		case models.SessionTypePractice:
			meta.AssignedPracticeHours += session.HourCount()
		}
	}
	meta.RemainingTheoryHours = remaining(meta.RequiredTheoryHours, meta.AssignedTheoryHours)
	meta.RemainingPracticeHours = remaining(meta.RequiredPracticeHours, meta.AssignedPracticeHours)
	meta.IsCompleted = meta.RemainingTheoryHours+meta.RemainingPracticeHours == 0
	meta.ProgressPercentage = progress(
		creditedHours(meta.AssignedTheoryHours, meta.RequiredTheoryHours)+creditedHours(meta.AssignedPracticeHours, meta.RequiredPracticeHours),
		meta.RequiredTheoryHours+meta.RequiredPracticeHours,
	)
	return meta
}

// SummarizeCourseMetadata aggregates per-course figures for a scope.
func SummarizeCourseMetadata(items []models.CourseMetadata) models.CourseQuotaSummary {
	var summary models.CourseQuotaSummary
	credited := 0
	for _, item := range items {
		summary.TotalCourses++
		if item.IsCompleted {
			summary.CompletedCourses++
		}
		required := item.RequiredTheoryHours + item.RequiredPracticeHours
		assigned := item.AssignedTheoryHours + item.AssignedPracticeHours
		summary.RequiredHours += required
		summary.AssignedHours += assigned
		summary.RemainingHours += item.RemainingTheoryHours + item.RemainingPracticeHours
		itemCredited := creditedHours(item.AssignedTheoryHours, item.RequiredTheoryHours) +
			creditedHours(item.AssignedPracticeHours, item.RequiredPracticeHours)
		credited += itemCredited
		summary.OverAssignedHours += assigned - itemCredited
	}
	summary.OverallProgress = progress(credited, summary.RequiredHours)
	return summary
}

// ResolveSessionTypes decides what the session-type picker offers for course given its
// current quota. Types with nothing remaining are hidden; a single open type is
// auto-selected; no open type rejects the action.
func ResolveSessionTypes(course models.Course, meta models.CourseMetadata) (models.SessionTypeChoice, error) {
	choice := models.SessionTypeChoice{CourseID: course.ID}
	teachable := course.TeachableTypes()
	if len(teachable) == 0 {
		return choice, appErrors.Clone(appErrors.ErrSessionTypeClosed,
			fmt.Sprintf("course %s declares no theory or practice hours", nonEmpty(course.Name, course.ID)))
	}
	for _, t := range teachable {
		if meta.RemainingHours(t) > 0 {
			choice.Open = append(choice.Open, t)
		}
	}
	switch len(choice.Open) {
	case 0:
		return choice, appErrors.Clone(appErrors.ErrSessionTypeClosed,
			fmt.Sprintf("all weekly hours of %s are already assigned", nonEmpty(course.Name, course.ID)))
	case 1:
		choice.AutoSelected = choice.Open[0]
	default:
		choice.RequiresChoice = true
	}
	return choice, nil
}

func remaining(required, assigned int) int {
	if assigned >= required {
		return 0
	}
	return required - assigned
}

func creditedHours(assigned, required int) int {
	if assigned > required {
		return required
	}
	return assigned
}

// progress is round(100 × done / total), and 100 when nothing is required.
func progress(done, total int) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}
