package shift

import (
	"context"
	"strings"
)

// Submission handles daily shift-entry creation. Only today and tomorrow are
// ever selectable; backdating and scheduling further ahead are intentionally
// impossible.
type Submission struct {
	store Store
	clock Clock
}

// NewSubmission creates the workflow.
func NewSubmission(store Store, clock Clock) *Submission {
	if clock == nil {
		clock = SystemClock()
	}
	return &Submission{store: store, clock: clock}
}

// DateOption is one selectable submission date with its usage flag.
type DateOption struct {
	Date string `json:"date"`
	Used bool   `json:"used"`
}

// AvailableDates returns today and tomorrow, each tagged with whether the
// employee already has an entry on it.
func (s *Submission) AvailableDates(ctx context.Context, employeeID string) ([]DateOption, error) {
	now := s.clock.Now()
	dates := []string{
		now.Format(DateLayout),
		now.AddDate(0, 0, 1).Format(DateLayout),
	}
	out := make([]DateOption, 0, len(dates))
	for _, d := range dates {
		existing, err := s.store.EntryByEmployeeDate(ctx, employeeID, d)
		if err != nil {
			return nil, err
		}
		out = append(out, DateOption{Date: d, Used: existing != nil})
	}
	return out, nil
}

// Submit creates a pending entry for (employeeID, date). The caller is assumed
// to be an approved employee; that gate lives at the workflow entry point, not
// here.
func (s *Submission) Submit(ctx context.Context, employeeID, date string, shiftType ShiftType, otherRemark string) (Entry, error) {
	if !ValidShiftType(shiftType) {
		return Entry{}, ErrInvalidShiftType
	}
	now := s.clock.Now()
	today := now.Format(DateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(DateLayout)
	if date != today && date != tomorrow {
		return Entry{}, ErrInvalidDate
	}
	if shiftType == ShiftOther && strings.TrimSpace(otherRemark) == "" {
		return Entry{}, ErrMissingRemark
	}

	existing, err := s.store.EntryByEmployeeDate(ctx, employeeID, date)
	if err != nil {
		return Entry{}, err
	}
	if existing != nil {
		return Entry{}, ErrDateAlreadyUsed
	}

	e := Entry{
		EmployeeID: employeeID,
		Date:       date,
		ShiftType:  shiftType,
		Decision:   Decision{Status: StatusPending},
	}
	if shiftType == ShiftOther {
		e.OtherRemark = otherRemark
	}
	return s.store.InsertEntry(ctx, e)
}

// History returns the employee's entries, newest first.
func (s *Submission) History(ctx context.Context, employeeID string) ([]Entry, error) {
	return s.store.EntriesByEmployee(ctx, employeeID)
}
