package models

// SelectedCellInfo is one picked grid cell.
type SelectedCellInfo struct {
	Day        DayOfWeek    `json:"day"`
	Hour       TeachingHour `json:"hour"`
	TimeSlotID string       `json:"time_slot_id"`
}

// SelectionValidation is the outcome of checking a multi-cell selection.
// Hours and TimeRange are only set when Valid is true.
type SelectionValidation struct {
	Valid      bool           `json:"valid"`
	Errors     []string       `json:"errors,omitempty"`
	Day        DayOfWeek      `json:"day,omitempty"`
	TimeSlotID string         `json:"time_slot_id,omitempty"`
	Hours      []TeachingHour `json:"hours,omitempty"`
	TimeRange  string         `json:"time_range,omitempty"`
}
