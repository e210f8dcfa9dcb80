package service

import (
	"fmt"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

type cellKey struct {
	Day    models.DayOfWeek
	HourID string
}

// BuildScheduleGrid produces one row per teaching hour and one cell per working day.
// A cell is occupied when a session in the snapshot has that day and hour. Slots with
// no occupied cell are reported as collapsible.
func BuildScheduleGrid(slots NormalizedTimeSlots, days []models.DayOfWeek, sessions []models.ClassSession) *models.ScheduleGrid {
	occupancy := make(map[cellKey]*models.ClassSession)
	var warnings []string
	warnings = append(warnings, slots.Warnings...)

	for i := range sessions {
		session := &sessions[i]
		for _, hour := range session.TeachingHours {
			key := cellKey{Day: session.DayOfWeek, HourID: hour.ID}
			if existing, ok := occupancy[key]; ok {
				warnings = append(warnings, fmt.Sprintf("sessions %s and %s both occupy %s hour %d", existing.ID, session.ID, key.Day, hour.OrderInTimeSlot))
				continue
			}
			occupancy[key] = session
		}
	}

	var rows []models.ScheduleRow
	var collapsible []string
	for _, slot := range slots.Slots {
		slotOccupied := false
		for idx, hour := range slot.TeachingHours {
			row := models.ScheduleRow{
				Hour:          hour,
				TimeSlotID:    slot.ID,
				TimeSlotName:  slot.Name,
				IndexInSlot:   idx,
				IsFirstInSlot: idx == 0,
				IsLastInSlot:  idx == len(slot.TeachingHours)-1,
				Cells:         make([]models.ScheduleCell, 0, len(days)),
			}
			for _, day := range days {
				cell := models.ScheduleCell{Day: day, HourID: hour.ID, IsAvailable: true}
				if session, ok := occupancy[cellKey{Day: day, HourID: hour.ID}]; ok {
					copySession := *session
					cell.IsAvailable = false
					cell.Session = &copySession
					slotOccupied = true
				}
				row.Cells = append(row.Cells, cell)
			}
			rows = append(rows, row)
		}
		if !slotOccupied {
			collapsible = append(collapsible, slot.ID)
		}
	}

	return models.NewScheduleGrid(append([]models.DayOfWeek(nil), days...), rows, collapsible, warnings)
}

// SelectedCell resolves a grid position into selection info.
func SelectedCell(grid *models.ScheduleGrid, day models.DayOfWeek, hourID string) (models.SelectedCellInfo, bool) {
	row, ok := grid.Row(hourID)
	if !ok {
		return models.SelectedCellInfo{}, false
	}
	if _, ok := grid.Cell(day, hourID); !ok {
		return models.SelectedCellInfo{}, false
	}
	return models.SelectedCellInfo{Day: day, Hour: row.Hour, TimeSlotID: row.TimeSlotID}, true
}
