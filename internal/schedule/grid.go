package schedule

import "time"

type AvailableSlot struct {
	StartsAt Instant `json:"startsAt"`
}

// IsSlotAvailable reports whether some slot starts exactly at candidate.
func IsSlotAvailable(slots []AvailableSlot, candidate Instant) bool {
	for _, s := range slots {
		if s.StartsAt == candidate {
			return true
		}
	}
	return false
}

type Cell struct {
	At         Instant `json:"startsAt"`
	Selectable bool    `json:"selectable"`
}

type Grid struct {
	RowTimes    []Instant `json:"rowTimes"`
	ColumnDates []Instant `json:"columnDates"`
	// Cells is indexed [row][column].
	Cells [][]Cell `json:"cells"`
}

type GridParams struct {
	OpenHour  int
	CloseHour int
	WeekStart Instant
	Available []AvailableSlot
	Location  *time.Location
}

func BuildGrid(p GridParams) Grid {
	rows := DailyTimeSlots(p.WeekStart, p.OpenHour, p.CloseHour, p.Location)
	cols := WeeklyDateValues(p.WeekStart, p.Location)

	cells := make([][]Cell, len(rows))
	for r, rowTime := range rows {
		cells[r] = make([]Cell, len(cols))
		for c, colDate := range cols {
			at := MergeDateAndTime(colDate, rowTime, p.Location)
			cells[r][c] = Cell{At: at, Selectable: IsSlotAvailable(p.Available, at)}
		}
	}

	return Grid{RowTimes: rows, ColumnDates: cols, Cells: cells}
}

func (g Grid) SelectableCount() int {
	n := 0
	for _, row := range g.Cells {
		for _, cell := range row {
			if cell.Selectable {
				n++
			}
		}
	}
	return n
}

// Lookup finds the cell resolving to at.
func (g Grid) Lookup(at Instant) (Cell, bool) {
	for _, row := range g.Cells {
		for _, cell := range row {
			if cell.At == at {
				return cell, true
			}
		}
	}
	return Cell{}, false
}
