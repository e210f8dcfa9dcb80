package models

// ScheduleCell is one (day, hour) position of the grid.
type ScheduleCell struct {
	Day         DayOfWeek     `json:"day"`
	HourID      string        `json:"hour_id"`
	IsAvailable bool          `json:"is_available"`
	Session     *ClassSession `json:"session,omitempty"`
	Selected    bool          `json:"selected"`
}

// ScheduleRow is one teaching hour across the working days.
type ScheduleRow struct {
	Hour          TeachingHour   `json:"hour"`
	TimeSlotID    string         `json:"time_slot_id"`
	TimeSlotName  string         `json:"time_slot_name"`
	IndexInSlot   int            `json:"index_in_slot"`
	IsFirstInSlot bool           `json:"is_first_in_slot"`
	IsLastInSlot  bool           `json:"is_last_in_slot"`
	Cells         []ScheduleCell `json:"cells"`
}

type gridKey struct {
	Day    DayOfWeek
	HourID string
}

type gridPosition struct {
	row int
	col int
}

// ScheduleGrid is the day by hour matrix for one scope.
type ScheduleGrid struct {
	Days             []DayOfWeek   `json:"days"`
	Rows             []ScheduleRow `json:"rows"`
	CollapsibleSlots []string      `json:"collapsible_slots"`
	Warnings         []string      `json:"warnings,omitempty"`

	index map[gridKey]gridPosition
}

// NewScheduleGrid indexes rows so cells can be looked up by day and hour.
func NewScheduleGrid(days []DayOfWeek, rows []ScheduleRow, collapsible, warnings []string) *ScheduleGrid {
	grid := &ScheduleGrid{
		Days:             days,
		Rows:             rows,
		CollapsibleSlots: collapsible,
		Warnings:         warnings,
		index:            make(map[gridKey]gridPosition, len(rows)*len(days)),
	}
	for r := range rows {
		for c, cell := range rows[r].Cells {
			grid.index[gridKey{Day: cell.Day, HourID: cell.HourID}] = gridPosition{row: r, col: c}
		}
	}
	return grid
}

// Cell returns the cell for day and hourID.
func (g *ScheduleGrid) Cell(day DayOfWeek, hourID string) (ScheduleCell, bool) {
	if g == nil {
		return ScheduleCell{}, false
	}
	pos, ok := g.index[gridKey{Day: day, HourID: hourID}]
	if !ok {
		return ScheduleCell{}, false
	}
	return g.Rows[pos.row].Cells[pos.col], true
}

// Row returns the row holding hourID.
func (g *ScheduleGrid) Row(hourID string) (ScheduleRow, bool) {
	if g == nil {
		return ScheduleRow{}, false
	}
	for _, row := range g.Rows {
		if row.Hour.ID == hourID {
			return row, true
		}
	}
	return ScheduleRow{}, false
}

// MarkSelected highlights exactly the given cells and clears every other highlight.
func (g *ScheduleGrid) MarkSelected(cells []SelectedCellInfo) {
	if g == nil {
		return
	}
	for r := range g.Rows {
		for c := range g.Rows[r].Cells {
			g.Rows[r].Cells[c].Selected = false
		}
	}
	for _, cell := range cells {
		if pos, ok := g.index[gridKey{Day: cell.Day, HourID: cell.Hour.ID}]; ok {
			g.Rows[pos.row].Cells[pos.col].Selected = true
		}
	}
}

// OccupiedCount returns the number of cells held by a session.
func (g *ScheduleGrid) OccupiedCount() int {
	if g == nil {
		return 0
	}
	count := 0
	for _, row := range g.Rows {
		for _, cell := range row.Cells {
			if !cell.IsAvailable {
				count++
			}
		}
	}
	return count
}

// Clone returns a deep copy of the grid structure. Sessions are shared.
func (g *ScheduleGrid) Clone() *ScheduleGrid {
	if g == nil {
		return nil
	}
	rows := make([]ScheduleRow, len(g.Rows))
	for i, row := range g.Rows {
		row.Cells = append([]ScheduleCell(nil), row.Cells...)
		rows[i] = row
	}
	return NewScheduleGrid(
		append([]DayOfWeek(nil), g.Days...),
		rows,
		append([]string(nil), g.CollapsibleSlots...),
		append([]string(nil), g.Warnings...),
	)
}
