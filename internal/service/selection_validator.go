package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

// cellLookup is the part of the grid the validator reads.
type cellLookup interface {
	Cell(day models.DayOfWeek, hourID string) (models.ScheduleCell, bool)
}

// ValidateSelection checks that cells can form a single class session.
func ValidateSelection(grid cellLookup, cells []models.SelectedCellInfo) models.SelectionValidation {
	return ValidateSelectionExcluding(grid, cells, "")
}

// ValidateSelectionExcluding is ValidateSelection treating cells held by
// excludeSessionID as available, which is how a session under edit is reselected.
// Every violated rule is reported; the consolidated hours are only produced on success.
func ValidateSelectionExcluding(grid cellLookup, cells []models.SelectedCellInfo, excludeSessionID string) models.SelectionValidation {
	if len(cells) == 0 {
		return models.SelectionValidation{Errors: []string{"select at least one cell"}}
	}

	unique := dedupeCells(cells)
	var errs []string

	if grid == nil {
		errs = append(errs, "schedule grid is not loaded")
	} else {
		for _, cell := range unique {
			current, ok := grid.Cell(cell.Day, cell.Hour.ID)
			switch {
			case !ok:
				errs = append(errs, fmt.Sprintf("%s hour %d is not part of the schedule grid", cell.Day, cell.Hour.OrderInTimeSlot))
			case !current.IsAvailable && !heldBy(current, excludeSessionID):
				errs = append(errs, fmt.Sprintf("%s hour %d is already occupied%s", cell.Day, cell.Hour.OrderInTimeSlot, occupantLabel(current.Session)))
			}
		}
	}

	days := distinct(unique, func(c models.SelectedCellInfo) string { return string(c.Day) })
	if len(days) > 1 {
		errs = append(errs, fmt.Sprintf("all cells must be on the same day (found %s)", strings.Join(days, ", ")))
	}

	slots := distinct(unique, func(c models.SelectedCellInfo) string { return c.TimeSlotID })
	if len(slots) > 1 {
		errs = append(errs, fmt.Sprintf("all cells must belong to the same time slot (found %d slots)", len(slots)))
	}

	hours := make([]models.TeachingHour, 0, len(unique))
	for _, cell := range unique {
		hours = append(hours, cell.Hour)
	}
	sortTeachingHours(hours)
	if gaps := contiguityGaps(hours); len(gaps) > 0 {
		errs = append(errs, "hours must be contiguous: "+strings.Join(gaps, "; "))
	}

	if len(errs) > 0 {
		return models.SelectionValidation{Errors: errs}
	}

	result := models.SelectionValidation{
		Valid:      true,
		Day:        unique[0].Day,
		TimeSlotID: unique[0].TimeSlotID,
		Hours:      hours,
	}
	if span, err := hoursSpan(hours); err == nil {
		result.TimeRange = span.String()
	}
	return result
}

// contiguityGaps describes every break in the order sequence of sorted hours.
func contiguityGaps(hours []models.TeachingHour) []string {
	var gaps []string
	for i := 1; i < len(hours); i++ {
		prev, next := hours[i-1].OrderInTimeSlot, hours[i].OrderInTimeSlot
		switch {
		case next == prev:
			gaps = append(gaps, fmt.Sprintf("hour %d selected more than once", next))
		case next-prev != 1:
			gaps = append(gaps, fmt.Sprintf("gap between hour %d and hour %d", prev, next))
		}
	}
	return gaps
}

// hoursSpan returns the clock range from the first hour's start to the last hour's end.
func hoursSpan(hours []models.TeachingHour) (clockRange, error) {
	if len(hours) == 0 {
		return clockRange{}, fmt.Errorf("no hours")
	}
	return newClockRange(hours[0].StartTime, hours[len(hours)-1].EndTime)
}

func dedupeCells(cells []models.SelectedCellInfo) []models.SelectedCellInfo {
	seen := make(map[cellKey]struct{}, len(cells))
	unique := make([]models.SelectedCellInfo, 0, len(cells))
	for _, cell := range cells {
		key := cellKey{Day: cell.Day, HourID: cell.Hour.ID}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, cell)
	}
	return unique
}

func distinct(cells []models.SelectedCellInfo, key func(models.SelectedCellInfo) string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, cell := range cells {
		k := key(cell)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		values = append(values, k)
	}
	sort.Strings(values)
	return values
}

func heldBy(cell models.ScheduleCell, sessionID string) bool {
	return sessionID != "" && cell.Session != nil && cell.Session.ID == sessionID
}

func occupantLabel(session *models.ClassSession) string {
	if session == nil {
		return ""
	}
	if session.Course.Name != "" {
		return " by " + session.Course.Name
	}
	return " by session " + session.ID
}
