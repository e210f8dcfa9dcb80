package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
	appErrors "github.com/noah-isme/sma-schedule-engine/pkg/errors"
)

// ClassificationRequest is the (course, day, hours) target teachers are classified against.
type ClassificationRequest struct {
	CourseID         string
	Day              models.DayOfWeek
	Hours            []models.TeachingHour
	ExcludeSessionID string
}

var statusBuckets = map[models.AvailabilityStatus]models.TeacherBucket{
	models.AvailabilityAvailable:            models.BucketAvailable,
	models.AvailabilityScheduleConflict:     models.BucketWithConflicts,
	models.AvailabilityPartialConflict:      models.BucketWithConflicts,
	models.AvailabilityTimeConflict:         models.BucketUnavailable,
	models.AvailabilityError:                models.BucketUnavailable,
	models.AvailabilityNoScheduleConfigured: models.BucketNoSchedule,
}

// BucketFor maps a status to its bucket. Unknown statuses are treated as unavailable.
func BucketFor(status models.AvailabilityStatus) models.TeacherBucket {
	if bucket, ok := statusBuckets[status]; ok {
		return bucket
	}
	return models.BucketUnavailable
}

// ClassifyTeacher assigns exactly one availability status to candidate.
func ClassifyTeacher(req ClassificationRequest, candidate models.TeacherCandidate) models.TeacherEligibility {
	result := classify(req, candidate)
	result.Teacher = candidate.Teacher
	result.Bucket = BucketFor(result.Status)
	return result
}

func classify(req ClassificationRequest, candidate models.TeacherCandidate) models.TeacherEligibility {
	fail := func(reason string) models.TeacherEligibility {
		return models.TeacherEligibility{Status: models.AvailabilityError, Reason: reason}
	}

	switch {
	case candidate.LoadError != "":
		return fail("availability could not be loaded: " + candidate.LoadError)
	case candidate.Teacher.ID == "":
		return fail("teacher has no identifier")
	case !req.Day.Valid():
		return fail(fmt.Sprintf("unknown day %q", req.Day))
	case len(req.Hours) == 0:
		return fail("no target hours")
	}

	hours := uniqueHours(req.Hours)
	sortTeachingHours(hours)
	targets, err := targetHours(hours)
	if err != nil {
		return fail(err.Error())
	}
	span, err := hoursSpan(hours)
	if err != nil {
		return fail(err.Error())
	}

	conflicts, err := conflictingSessions(candidate.Sessions, req.Day, req.ExcludeSessionID, targets, nil)
	if err != nil {
		return fail(err.Error())
	}
	conflicted := countConflictedHours(conflicts)

	var windows []clockRange
	for _, window := range candidate.Windows {
		if window.DayOfWeek != req.Day {
			continue
		}
		r, err := newClockRange(window.StartTime, window.EndTime)
		if err != nil {
			return fail(fmt.Sprintf("availability window %s: %v", window.ID, err))
		}
		windows = append(windows, r)
	}

	switch {
	case conflicted == len(targets):
		return models.TeacherEligibility{
			Status:              models.AvailabilityScheduleConflict,
			Reason:              fmt.Sprintf("already teaching during all %d requested hours", len(targets)),
			ConflictingSessions: conflicts,
		}
	case conflicted > 0:
		return models.TeacherEligibility{
			Status:              models.AvailabilityPartialConflict,
			Reason:              fmt.Sprintf("already teaching during %d of %d requested hours", conflicted, len(targets)),
			ConflictingSessions: conflicts,
		}
	case len(windows) == 0:
		return models.TeacherEligibility{
			Status: models.AvailabilityNoScheduleConfigured,
			Reason: fmt.Sprintf("no availability configured for %s", req.Day),
		}
	}

	for _, window := range mergeClockRanges(windows) {
		if window.covers(span) {
			return models.TeacherEligibility{
				Status: models.AvailabilityAvailable,
				Reason: fmt.Sprintf("available %s on %s", span, req.Day),
			}
		}
	}
	return models.TeacherEligibility{
		Status: models.AvailabilityTimeConflict,
		Reason: fmt.Sprintf("%s on %s is outside the configured availability", span, req.Day),
	}
}

func countConflictedHours(conflicts []models.SessionConflict) int {
	seen := make(map[string]struct{})
	for _, conflict := range conflicts {
		for _, hour := range conflict.Hours {
			seen[hour.ID] = struct{}{}
		}
	}
	return len(seen)
}

// ClassifyTeachers classifies every candidate and groups them into buckets sorted by name.
func ClassifyTeachers(req ClassificationRequest, candidates []models.TeacherCandidate) models.TeacherBuckets {
	var buckets models.TeacherBuckets
	for _, candidate := range candidates {
		eligibility := ClassifyTeacher(req, candidate)
		switch eligibility.Bucket {
		case models.BucketAvailable:
			buckets.Available = append(buckets.Available, eligibility)
		case models.BucketWithConflicts:
			buckets.WithConflicts = append(buckets.WithConflicts, eligibility)
		case models.BucketNoSchedule:
			buckets.NoSchedule = append(buckets.NoSchedule, eligibility)
		default:
			buckets.Unavailable = append(buckets.Unavailable, eligibility)
		}
	}
	for _, list := range [][]models.TeacherEligibility{buckets.Available, buckets.WithConflicts, buckets.Unavailable, buckets.NoSchedule} {
		sortByDisplayName(list)
	}
	return buckets
}

func sortByDisplayName(list []models.TeacherEligibility) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := strings.ToLower(list[i].Teacher.FullName), strings.ToLower(list[j].Teacher.FullName)
		if a != b {
			return a < b
		}
		return list[i].Teacher.ID < list[j].Teacher.ID
	})
}

// CheckTeacherSelectable blocks teachers in the unavailable bucket. Teachers with
// conflicts may be picked; the conflicting sessions come back as warnings.
func CheckTeacherSelectable(e models.TeacherEligibility) ([]string, error) {
	switch BucketFor(e.Status) {
	case models.BucketUnavailable:
		return nil, appErrors.WithDetails(appErrors.ErrTeacherNotSelectable,
			fmt.Sprintf("%s cannot be assigned: %s", displayName(e.Teacher), strings.ToLower(string(e.Status))),
			[]string{e.Reason})
	case models.BucketWithConflicts:
		warnings := make([]string, 0, len(e.ConflictingSessions))
		for _, conflict := range e.ConflictingSessions {
			warnings = append(warnings, describeConflict(conflict))
		}
		return warnings, nil
	default:
		return nil, nil
	}
}

func describeConflict(conflict models.SessionConflict) string {
	orders := make([]string, 0, len(conflict.Hours))
	for _, hour := range conflict.Hours {
		orders = append(orders, fmt.Sprintf("%d", hour.OrderInTimeSlot))
	}
	return fmt.Sprintf("%s with %s in %s overlaps hour(s) %s",
		nonEmpty(conflict.Course.Name, conflict.Course.ID),
		nonEmpty(conflict.StudentGroup.Name, conflict.StudentGroup.ID),
		nonEmpty(conflict.LearningSpace.Name, conflict.LearningSpace.ID),
		strings.Join(orders, ", "))
}

func displayName(t models.Teacher) string {
	return nonEmpty(t.FullName, t.ID)
}

func nonEmpty(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}
