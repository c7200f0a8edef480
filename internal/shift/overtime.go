package shift

import "strings"

// Overtime weights per category. Night OT rides on 3rd shift; the other three
// come from the dedicated ot_* entry types.
const (
	rateNightOT   = 2.0
	rateOffDayOT  = 1.5
	rateWeekOffOT = 2.0
	rateHolidayOT = 2.0
)

// hoursPerEntry is the fixed contribution of one qualifying entry.
const hoursPerEntry = 8

// OTSummary is the month's overtime aggregate for one employee. EstimatedPay
// is an estimate only, never an authoritative payroll figure.
type OTSummary struct {
	RegularHours  float64 `json:"regular_hours"`
	NightOT       float64 `json:"night_ot"`
	OffDayOT      float64 `json:"off_day_ot"`
	WeekOffOT     float64 `json:"week_off_ot"`
	HolidayOT     float64 `json:"holiday_ot"`
	TotalOTHours  float64 `json:"total_ot_hours"`
	WeightedHours float64 `json:"weighted_hours"`
	EstimatedPay  float64 `json:"estimated_pay"`
}

// CalculateOT aggregates one employee's approved entries in a month. Pending
// and rejected entries are excluded outright. Each qualifying entry counts a
// flat 8 hours in its category; weighted hours apply the per-category rates
// and pay multiplies by the configured base hourly rate.
func CalculateOT(entries []Entry, yearMonth string, baseHourlyRate float64) OTSummary {
	var s OTSummary
	for _, e := range entries {
		if e.Decision.Status != StatusApproved {
			continue
		}
		if !strings.HasPrefix(e.Date, yearMonth+"-") {
			continue
		}
		switch e.ShiftType {
		case ShiftFirst, ShiftSecond:
			s.RegularHours += hoursPerEntry
		case ShiftThird:
			s.RegularHours += hoursPerEntry
			s.NightOT += hoursPerEntry
		case ShiftOTOffDay:
			s.OffDayOT += hoursPerEntry
		case ShiftOTWeekOff:
			s.WeekOffOT += hoursPerEntry
		case ShiftOTHoliday:
			s.HolidayOT += hoursPerEntry
		}
	}

	s.TotalOTHours = s.NightOT + s.OffDayOT + s.WeekOffOT + s.HolidayOT
	s.WeightedHours = s.NightOT*rateNightOT +
		s.OffDayOT*rateOffDayOT +
		s.WeekOffOT*rateWeekOffOT +
		s.HolidayOT*rateHolidayOT
	s.EstimatedPay = s.WeightedHours * baseHourlyRate
	return s
}
