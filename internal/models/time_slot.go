package models

// TimeSlot is a named block of the school day subdivided into teaching hours.
type TimeSlot struct {
	ID            string         `db:"id" json:"id"`
	Name          string         `db:"name" json:"name"`
	StartTime     string         `db:"start_time" json:"start_time"`
	EndTime       string         `db:"end_time" json:"end_time"`
	TeachingHours []TeachingHour `db:"-" json:"teaching_hours"`
}

// TeachingHour is the atomic schedulable unit inside a time slot.
type TeachingHour struct {
	ID              string `db:"id" json:"id"`
	TimeSlotID      string `db:"time_slot_id" json:"time_slot_id"`
	OrderInTimeSlot int    `db:"order_in_time_slot" json:"order_in_time_slot"`
	StartTime       string `db:"start_time" json:"start_time"`
	EndTime         string `db:"end_time" json:"end_time"`
	DurationMinutes int    `db:"duration_minutes" json:"duration_minutes"`
}

// HourIDs returns the identifiers of hours in their current order.
func HourIDs(hours []TeachingHour) []string {
	ids := make([]string, 0, len(hours))
	for _, hour := range hours {
		ids = append(ids, hour.ID)
	}
	return ids
}
