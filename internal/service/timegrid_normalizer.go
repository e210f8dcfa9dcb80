package service

import (
	"fmt"
	"sort"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

// NormalizedTimeSlots is the canonical slot and hour ordering used to build grids.
type NormalizedTimeSlots struct {
	Slots    []models.TimeSlot
	Warnings []string
}

// Hours returns every teaching hour in grid order.
func (n NormalizedTimeSlots) Hours() []models.TeachingHour {
	var hours []models.TeachingHour
	for _, slot := range n.Slots {
		hours = append(hours, slot.TeachingHours...)
	}
	return hours
}

// HoursByID resolves ids to hours, reporting the ids that are unknown.
func (n NormalizedTimeSlots) HoursByID(ids []string) ([]models.TeachingHour, []string) {
	lookup := make(map[string]models.TeachingHour)
	for _, hour := range n.Hours() {
		lookup[hour.ID] = hour
	}
	hours := make([]models.TeachingHour, 0, len(ids))
	var missing []string
	for _, id := range ids {
		hour, ok := lookup[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		hours = append(hours, hour)
	}
	return hours, missing
}

// TypicalHourMinutes returns the most common teaching hour duration, or 0 without hours.
func (n NormalizedTimeSlots) TypicalHourMinutes() int {
	counts := make(map[int]int)
	best, bestCount := 0, 0
	for _, hour := range n.Hours() {
		minutes := hour.DurationMinutes
		if minutes <= 0 {
			if r, err := newClockRange(hour.StartTime, hour.EndTime); err == nil {
				minutes = r.duration()
			}
		}
		if minutes <= 0 {
			continue
		}
		counts[minutes]++
		if counts[minutes] > bestCount || (counts[minutes] == bestCount && minutes < best) {
			best, bestCount = minutes, counts[minutes]
		}
	}
	return best
}

// NormalizeTimeSlots orders slots by start time and hours by their order in the slot.
// Slots without a usable start time sort last and are reported as warnings. The input
// is not modified.
func NormalizeTimeSlots(slots []models.TimeSlot) NormalizedTimeSlots {
	type keyedSlot struct {
		slot  models.TimeSlot
		start int
		valid bool
	}

	keyed := make([]keyedSlot, 0, len(slots))
	var warnings []string
	for _, slot := range slots {
		copySlot := slot
		copySlot.TeachingHours = append([]models.TeachingHour(nil), slot.TeachingHours...)
		sortTeachingHours(copySlot.TeachingHours)

		start, err := parseClock(slot.StartTime)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("time slot %q (%s) has no valid start time", slot.Name, slot.ID))
		}
		keyed = append(keyed, keyedSlot{slot: copySlot, start: start, valid: err == nil})
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		a, b := keyed[i], keyed[j]
		if a.valid != b.valid {
			return a.valid
		}
		if a.valid && a.start != b.start {
			return a.start < b.start
		}
		if a.slot.Name != b.slot.Name {
			return a.slot.Name < b.slot.Name
		}
		return a.slot.ID < b.slot.ID
	})

	result := NormalizedTimeSlots{Slots: make([]models.TimeSlot, 0, len(keyed)), Warnings: warnings}
	for _, item := range keyed {
		result.Slots = append(result.Slots, item.slot)
	}
	return result
}

func sortTeachingHours(hours []models.TeachingHour) {
	sort.SliceStable(hours, func(i, j int) bool {
		if hours[i].OrderInTimeSlot != hours[j].OrderInTimeSlot {
			return hours[i].OrderInTimeSlot < hours[j].OrderInTimeSlot
		}
		return hours[i].ID < hours[j].ID
	})
}
