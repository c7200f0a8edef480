package shift

import (
	"context"
	"fmt"
	"time"
)

// fakeClock pins the workflows to a known instant.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newFakeClock(value string) *fakeClock {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return &fakeClock{now: t}
}

// memStore is the in-memory Store used by the workflow tests. Entries are
// kept newest first, matching the repository's ordering.
type memStore struct {
	profiles     map[string]Employee
	entries      []Entry
	devices      map[string]string
	deviceLogins map[string]time.Time
	nextID       int

	// failWith, when set, makes every call fail. Simulates StoreFailure.
	failWith error
}

func newMemStore() *memStore {
	return &memStore{
		profiles:     make(map[string]Employee),
		devices:      make(map[string]string),
		deviceLogins: make(map[string]time.Time),
	}
}

var _ Store = (*memStore)(nil)

func (m *memStore) GetProfile(_ context.Context, id string) (*Employee, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if p, ok := m.profiles[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) ListProfiles(_ context.Context) ([]Employee, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := make([]Employee, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) InsertProfile(_ context.Context, e Employee) (Employee, error) {
	if m.failWith != nil {
		return Employee{}, m.failWith
	}
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	m.profiles[e.ID] = e
	return e, nil
}

func (m *memStore) SetProfileApproved(_ context.Context, id string, approved bool) error {
	if m.failWith != nil {
		return m.failWith
	}
	p, ok := m.profiles[id]
	if !ok {
		return ErrNotFound
	}
	p.Approved = approved
	m.profiles[id] = p
	return nil
}

func (m *memStore) DeleteProfile(_ context.Context, id string) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.profiles[id]; !ok {
		return ErrNotFound
	}
	delete(m.profiles, id)
	return nil
}

func (m *memStore) GetEntry(_ context.Context, id string) (*Entry, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, e := range m.entries {
		if e.ID == id {
			cp := e
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListEntries(_ context.Context) ([]Entry, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *memStore) EntriesByEmployee(_ context.Context, employeeID string) ([]Entry, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []Entry
	for _, e := range m.entries {
		if e.EmployeeID == employeeID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) EntryByEmployeeDate(_ context.Context, employeeID, date string) (*Entry, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, e := range m.entries {
		if e.EmployeeID == employeeID && e.Date == date {
			cp := e
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) InsertEntry(_ context.Context, e Entry) (Entry, error) {
	if m.failWith != nil {
		return Entry{}, m.failWith
	}
	m.nextID++
	if e.ID == "" {
		e.ID = fmt.Sprintf("entry-%d", m.nextID)
	}
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	// prepend: newest first
	m.entries = append([]Entry{e}, m.entries...)
	return e, nil
}

func (m *memStore) UpdateEntryDecision(_ context.Context, id string, d Decision, remark *string) error {
	if m.failWith != nil {
		return m.failWith
	}
	for i, e := range m.entries {
		if e.ID == id {
			e.Decision = d
			if remark != nil {
				e.OtherRemark = *remark
			}
			e.UpdatedAt = time.Now().UTC()
			m.entries[i] = e
			return nil
		}
	}
	return ErrNotFound
}

func (m *memStore) DeviceEmployee(_ context.Context, deviceID string) (string, error) {
	if m.failWith != nil {
		return "", m.failWith
	}
	return m.devices[deviceID], nil
}

func (m *memStore) SaveDeviceBinding(_ context.Context, deviceID, employeeID string, lastLogin time.Time) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.devices[deviceID] = employeeID
	m.deviceLogins[deviceID] = lastLogin
	return nil
}

// seedProfile stores an employee directly, bypassing the workflow.
func (m *memStore) seedProfile(e Employee) {
	m.profiles[e.ID] = e
}

// seedEntry stores an entry directly, newest first.
func (m *memStore) seedEntry(e Entry) {
	m.nextID++
	if e.ID == "" {
		e.ID = fmt.Sprintf("entry-%d", m.nextID)
	}
	m.entries = append([]Entry{e}, m.entries...)
}
