// Package export renders approval/history views as CSV or XLSX downloads.
package export

import (
	"encoding/csv"
	"io"

	"github.com/xuri/excelize/v2"

	"shiftboard/internal/shift"
)

// Header is the fixed column layout of every export.
var Header = []string{
	"Date", "Employee ID", "Employee Name", "Department", "Section",
	"Shift Type", "Status", "Approved By", "Approved At", "Remark",
}

const timestampLayout = "2006-01-02 15:04:05"

// Rows renders entries against the employee directory snapshot. Entries whose
// owner was deleted render as "Unknown" with a "-" section; they stay
// exportable because profile rejection does not cascade to entries.
func Rows(entries []shift.Entry, employees map[string]shift.Employee) [][]string {
	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, Header)
	for _, e := range entries {
		name, dept, section := "Unknown", "Unknown", "-"
		if owner, ok := employees[e.EmployeeID]; ok {
			name = owner.FullName
			dept = string(owner.Department)
			if owner.Section != "" {
				section = string(owner.Section)
			}
		}
		approvedBy, approvedAt := "-", "-"
		if e.Decision.Settled() {
			approvedBy = e.Decision.By
			if approver, ok := employees[e.Decision.By]; ok {
				approvedBy = approver.FullName
			}
			approvedAt = e.Decision.At.Format(timestampLayout)
		}
		rows = append(rows, []string{
			e.Date,
			e.EmployeeID,
			name,
			dept,
			section,
			e.ShiftType.Label(),
			e.Decision.Status.String(),
			approvedBy,
			approvedAt,
			e.OtherRemark,
		})
	}
	return rows
}

// WriteCSV streams rows as CSV.
func WriteCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX streams rows as a single-sheet workbook.
func WriteXLSX(w io.Writer, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Shift Entries"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.Write(w)
}
