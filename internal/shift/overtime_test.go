package shift

import "testing"

func approved(date string, st ShiftType) Entry {
	return Entry{Date: date, ShiftType: st, Decision: Decision{Status: StatusApproved, By: "QC_MGR"}}
}

func TestCalculateOTThirdShift(t *testing.T) {
	entries := []Entry{approved("2025-03-12", ShiftThird)}
	s := CalculateOT(entries, "2025-03", 10)

	if s.RegularHours != 8 {
		t.Errorf("regular = %v, want 8", s.RegularHours)
	}
	if s.NightOT != 8 {
		t.Errorf("night OT = %v, want 8", s.NightOT)
	}
	if s.TotalOTHours != 8 {
		t.Errorf("total OT = %v, want 8", s.TotalOTHours)
	}
	if s.WeightedHours != 16 {
		t.Errorf("weighted = %v, want 16", s.WeightedHours)
	}
	if s.EstimatedPay != 160 {
		t.Errorf("pay = %v, want 160", s.EstimatedPay)
	}
}

func TestCalculateOTCategories(t *testing.T) {
	entries := []Entry{
		approved("2025-03-01", ShiftFirst),
		approved("2025-03-02", ShiftSecond),
		approved("2025-03-03", ShiftThird),
		approved("2025-03-04", ShiftOTOffDay),
		approved("2025-03-05", ShiftOTWeekOff),
		approved("2025-03-06", ShiftOTHoliday),
		approved("2025-03-07", ShiftLeave),
		approved("2025-03-08", ShiftMedical),
		approved("2025-03-09", ShiftOther),
	}
	s := CalculateOT(entries, "2025-03", 10)

	if s.RegularHours != 24 {
		t.Errorf("regular = %v, want 24 (1st+2nd+3rd)", s.RegularHours)
	}
	if s.NightOT != 8 || s.OffDayOT != 8 || s.WeekOffOT != 8 || s.HolidayOT != 8 {
		t.Errorf("categories = %v/%v/%v/%v, want 8 each", s.NightOT, s.OffDayOT, s.WeekOffOT, s.HolidayOT)
	}
	if s.TotalOTHours != 32 {
		t.Errorf("total OT = %v, want 32", s.TotalOTHours)
	}
	// 8*2.0 + 8*1.5 + 8*2.0 + 8*2.0
	if s.WeightedHours != 60 {
		t.Errorf("weighted = %v, want 60", s.WeightedHours)
	}
	if s.EstimatedPay != 600 {
		t.Errorf("pay = %v, want 600", s.EstimatedPay)
	}
}

func TestCalculateOTExcludesUnapproved(t *testing.T) {
	entries := []Entry{
		{Date: "2025-03-10", ShiftType: ShiftThird, Decision: Decision{Status: StatusPending}},
		{Date: "2025-03-11", ShiftType: ShiftThird, Decision: Decision{Status: StatusRejected, By: "QC_MGR"}},
	}
	s := CalculateOT(entries, "2025-03", 10)
	if s != (OTSummary{}) {
		t.Errorf("summary = %+v, want all zero for pending/rejected", s)
	}
}

func TestCalculateOTMonthBoundary(t *testing.T) {
	entries := []Entry{
		approved("2025-02-28", ShiftOTOffDay),
		approved("2025-03-01", ShiftOTOffDay),
		approved("2025-04-01", ShiftOTOffDay),
	}
	s := CalculateOT(entries, "2025-03", 10)
	if s.OffDayOT != 8 {
		t.Errorf("off-day OT = %v, want only the March entry", s.OffDayOT)
	}
}

func TestCalculateOTBaseRate(t *testing.T) {
	entries := []Entry{approved("2025-03-05", ShiftOTWeekOff)}
	s := CalculateOT(entries, "2025-03", 12.5)
	// 8h * 2.0 * 12.5
	if s.EstimatedPay != 200 {
		t.Errorf("pay = %v, want 200", s.EstimatedPay)
	}
}
