package service

import (
	"fmt"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

type targetHour struct {
	hour  models.TeachingHour
	clock clockRange
}

func targetHours(hours []models.TeachingHour) ([]targetHour, error) {
	targets := make([]targetHour, 0, len(hours))
	for _, hour := range hours {
		r, err := newClockRange(hour.StartTime, hour.EndTime)
		if err != nil {
			return nil, fmt.Errorf("hour %s: %w", hour.ID, err)
		}
		targets = append(targets, targetHour{hour: hour, clock: r})
	}
	return targets, nil
}

// overlappingHours returns the targets that session occupies, by hour identity or
// by intersecting clock times. The caller filters sessions by day.
func overlappingHours(session models.ClassSession, targets []targetHour) ([]models.TeachingHour, error) {
	var hit []models.TeachingHour
	for _, target := range targets {
		for _, hour := range session.TeachingHours {
			if hour.ID == target.hour.ID {
				hit = append(hit, target.hour)
				break
			}
			r, err := newClockRange(hour.StartTime, hour.EndTime)
			if err != nil {
				return nil, fmt.Errorf("session %s hour %s: %w", session.ID, hour.ID, err)
			}
			if r.overlaps(target.clock) {
				hit = append(hit, target.hour)
				break
			}
		}
	}
	return hit, nil
}

// conflictingSessions lists sessions on day, other than excludeSessionID, that overlap
// the targets and satisfy match.
func conflictingSessions(sessions []models.ClassSession, day models.DayOfWeek, excludeSessionID string, targets []targetHour, match func(models.ClassSession) bool) ([]models.SessionConflict, error) {
	var conflicts []models.SessionConflict
	for _, session := range sessions {
		if session.DayOfWeek != day || (excludeSessionID != "" && session.ID == excludeSessionID) {
			continue
		}
		if match != nil && !match(session) {
			continue
		}
		hit, err := overlappingHours(session, targets)
		if err != nil {
			return nil, err
		}
		if len(hit) == 0 {
			continue
		}
		conflicts = append(conflicts, models.SessionConflict{
			SessionID:     session.ID,
			Course:        session.Course,
			StudentGroup:  session.StudentGroup,
			LearningSpace: session.LearningSpace,
			Hours:         hit,
		})
	}
	return conflicts, nil
}

// uniqueHours copies hours dropping repeated ids.
func uniqueHours(hours []models.TeachingHour) []models.TeachingHour {
	seen := make(map[string]struct{}, len(hours))
	unique := make([]models.TeachingHour, 0, len(hours))
	for _, hour := range hours {
		if _, ok := seen[hour.ID]; ok {
			continue
		}
		seen[hour.ID] = struct{}{}
		unique = append(unique, hour)
	}
	return unique
}
