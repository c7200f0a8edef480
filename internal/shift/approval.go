package shift

import (
	"context"
	"unicode/utf8"
)

// minJustificationLen is the rejection-justification floor, counted in runes.
const minJustificationLen = 10

// Approval settles pending entries and manages employee-profile approval.
//
// Approve and Reject deliberately do not check that the decider's section
// matches the entry owner's; section scoping happens only in the PendingFor
// view, as in the source system. Callers are gated to the manager/admin roles
// upstream.
type Approval struct {
	store Store
	dir   *Directory
	clock Clock
}

// NewApproval creates the engine.
func NewApproval(store Store, dir *Directory, clock Clock) *Approval {
	if clock == nil {
		clock = SystemClock()
	}
	return &Approval{store: store, dir: dir, clock: clock}
}

// Approve moves a pending entry to approved. Settling is terminal: a second
// decision on an already-settled entry succeeds without changing anything, so
// By/At are written exactly once.
func (a *Approval) Approve(ctx context.Context, entryID, deciderID string) (Entry, error) {
	entry, err := a.store.GetEntry(ctx, entryID)
	if err != nil {
		return Entry{}, err
	}
	if entry == nil {
		return Entry{}, ErrNotFound
	}
	if entry.Decision.Settled() {
		return *entry, nil
	}

	d := Decision{Status: StatusApproved, By: deciderID, At: a.clock.Now()}
	if err := a.store.UpdateEntryDecision(ctx, entryID, d, nil); err != nil {
		return Entry{}, err
	}
	entry.Decision = d
	return *entry, nil
}

// Reject moves a pending entry to rejected. The justification must be at
// least ten characters and replaces the entry's remark.
func (a *Approval) Reject(ctx context.Context, entryID, deciderID, justification string) (Entry, error) {
	if utf8.RuneCountInString(justification) < minJustificationLen {
		return Entry{}, ErrJustificationTooShort
	}
	entry, err := a.store.GetEntry(ctx, entryID)
	if err != nil {
		return Entry{}, err
	}
	if entry == nil {
		return Entry{}, ErrNotFound
	}
	if entry.Decision.Settled() {
		return *entry, nil
	}

	d := Decision{Status: StatusRejected, By: deciderID, At: a.clock.Now(), Justification: justification}
	if err := a.store.UpdateEntryDecision(ctx, entryID, d, &justification); err != nil {
		return Entry{}, err
	}
	entry.Decision = d
	entry.OtherRemark = justification
	return *entry, nil
}

// PendingFor returns the pending entries whose owning employee belongs to the
// given section, in store order.
func (a *Approval) PendingFor(ctx context.Context, section Section) ([]Entry, error) {
	entries, _, err := a.sectionEntries(ctx, section)
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, e := range entries {
		if e.Decision.Status == StatusPending {
			out = append(out, e)
		}
	}
	return out, nil
}

// HistoryFilters narrow the settled-entry view. Zero values match everything.
type HistoryFilters struct {
	Date       string
	EmployeeID string
	ShiftType  ShiftType
}

// HistoryFor returns the settled entries for a section, narrowed by filters.
func (a *Approval) HistoryFor(ctx context.Context, section Section, f HistoryFilters) ([]Entry, error) {
	entries, _, err := a.sectionEntries(ctx, section)
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, e := range entries {
		if e.Decision.Status == StatusPending {
			continue
		}
		if f.Date != "" && e.Date != f.Date {
			continue
		}
		if f.EmployeeID != "" && e.EmployeeID != f.EmployeeID {
			continue
		}
		if f.ShiftType != "" && e.ShiftType != f.ShiftType {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// SectionEntries returns every entry owned by the section's employees,
// regardless of state. Backs the section CSV export.
func (a *Approval) SectionEntries(ctx context.Context, section Section) ([]Entry, error) {
	entries, _, err := a.sectionEntries(ctx, section)
	return entries, err
}

// ApproveEmployee flips a profile to approved. Idempotent: approving an
// already-approved profile is a no-op success.
func (a *Approval) ApproveEmployee(ctx context.Context, id string) error {
	profile, err := a.store.GetProfile(ctx, id)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrNotFound
	}
	if profile.Approved {
		return nil
	}
	return a.store.SetProfileApproved(ctx, id, true)
}

// RejectEmployee hard-deletes the profile; the employee must re-register from
// scratch. Shift entries are left in place and render as "Unknown" afterwards.
func (a *Approval) RejectEmployee(ctx context.Context, id string) error {
	profile, err := a.store.GetProfile(ctx, id)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrNotFound
	}
	return a.store.DeleteProfile(ctx, id)
}

func (a *Approval) sectionEntries(ctx context.Context, section Section) ([]Entry, map[string]Employee, error) {
	employees, err := a.dir.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	entries, err := a.store.ListEntries(ctx)
	if err != nil {
		return nil, nil, err
	}
	var out []Entry
	for _, e := range entries {
		owner, ok := employees[e.EmployeeID]
		if !ok || owner.Section != section {
			continue
		}
		out = append(out, e)
	}
	return out, employees, nil
}
