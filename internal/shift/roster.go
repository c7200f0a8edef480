package shift

import (
	"fmt"
	"time"
)

// RosterDay is one calendar day in the monthly view. ShiftType is empty when
// the employee has no entry on that date.
type RosterDay struct {
	Date      string         `json:"date"`
	ShiftType ShiftType      `json:"shift_type,omitempty"`
	Status    DecisionStatus `json:"status,omitempty"`
	Remark    string         `json:"remark,omitempty"`
}

// WeekStats aggregates a fixed 7-day block of the month, counted from day 1
// rather than calendar-week boundaries.
type WeekStats struct {
	RegularShifts  int `json:"regular_shifts"`
	OvertimeShifts int `json:"overtime_shifts"`
	Leaves         int `json:"leaves"`
}

// Roster is the projected month: one day per calendar day plus the 7-day
// chunk aggregates.
type Roster struct {
	Month string      `json:"month"`
	Days  []RosterDay `json:"days"`
	Weeks []WeekStats `json:"weeks"`
}

// ProjectRoster derives the month view for one employee's entries. It is a
// pure function of (entries, yearMonth): days-in-month RosterDay values, each
// matched against the single entry (if any) on that exact date. Entries for
// other employees must be filtered out by the caller beforehand, or passed
// through FilterByEmployee.
func ProjectRoster(entries []Entry, yearMonth string) (Roster, error) {
	start, err := time.Parse(MonthLayout, yearMonth)
	if err != nil {
		return Roster{}, fmt.Errorf("shift: bad month %q: %w", yearMonth, err)
	}
	daysInMonth := start.AddDate(0, 1, -1).Day()

	byDate := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byDate[e.Date] = e
	}

	days := make([]RosterDay, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		date := fmt.Sprintf("%s-%02d", yearMonth, day)
		rd := RosterDay{Date: date}
		if e, ok := byDate[date]; ok {
			rd.ShiftType = e.ShiftType
			rd.Status = e.Decision.Status
			rd.Remark = e.OtherRemark
		}
		days = append(days, rd)
	}

	var weeks []WeekStats
	for i := 0; i < len(days); i += 7 {
		end := i + 7
		if end > len(days) {
			end = len(days)
		}
		var w WeekStats
		for _, d := range days[i:end] {
			switch {
			case d.ShiftType == "":
			case d.ShiftType.IsRegular():
				w.RegularShifts++
			case d.ShiftType.IsOvertime():
				w.OvertimeShifts++
			case d.ShiftType.IsLeave():
				w.Leaves++
			}
		}
		weeks = append(weeks, w)
	}

	return Roster{Month: yearMonth, Days: days, Weeks: weeks}, nil
}

// FilterByEmployee returns only the entries belonging to one employee.
func FilterByEmployee(entries []Entry, employeeID string) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.EmployeeID == employeeID {
			out = append(out, e)
		}
	}
	return out
}
