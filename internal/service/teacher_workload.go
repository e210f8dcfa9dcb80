package service

import (
	"math"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

// DeriveTeacherMetadata summarises the sessions of teacherID against an estimate of
// weekly available teaching hours.
func DeriveTeacherMetadata(teacherID string, sessions []models.ClassSession, estimatedAvailableHours float64) models.TeacherScheduleMetadata {
	meta := models.TeacherScheduleMetadata{
		TeacherID:               teacherID,
		SessionsByDay:           make(map[models.DayOfWeek][]models.ClassSession),
		EstimatedAvailableHours: estimatedAvailableHours,
	}
	for _, session := range sessions {
		if session.Teacher.ID != teacherID {
			continue
		}
		meta.TotalSessions++
		meta.TotalHours += session.HourCount()
		meta.SessionsByDay[session.DayOfWeek] = append(meta.SessionsByDay[session.DayOfWeek], session)
	}
	meta.WorkloadPercentage = workloadPercentage(meta.TotalHours, estimatedAvailableHours)
	return meta
}

// EstimateWeeklyAvailableHours converts availability windows on working days into
// teaching hours of hourMinutes each. Malformed windows are skipped.
func EstimateWeeklyAvailableHours(windows []models.AvailabilityWindow, workingDays []models.DayOfWeek, hourMinutes int) float64 {
	if hourMinutes <= 0 {
		hourMinutes = 60
	}
	working := make(map[models.DayOfWeek]struct{}, len(workingDays))
	for _, day := range workingDays {
		working[day] = struct{}{}
	}
	perDay := make(map[models.DayOfWeek][]clockRange)
	for _, window := range windows {
		if _, ok := working[window.DayOfWeek]; !ok {
			continue
		}
		r, err := newClockRange(window.StartTime, window.EndTime)
		if err != nil {
			continue
		}
		perDay[window.DayOfWeek] = append(perDay[window.DayOfWeek], r)
	}
	minutes := 0
	for _, ranges := range perDay {
		for _, r := range mergeClockRanges(ranges) {
			minutes += r.duration()
		}
	}
	return float64(minutes) / float64(hourMinutes)
}

func workloadPercentage(assignedHours int, estimate float64) float64 {
	if estimate <= 0 {
		return 0
	}
	pct := 100 * float64(assignedHours) / estimate
	if pct > 100 {
		pct = 100
	}
	return math.Round(pct*10) / 10
}
