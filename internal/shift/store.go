package shift

import (
	"context"
	"time"
)

// Store is the record-store contract the workflows run against. Each call is
// an independent read or read-modify-write; lookups return (nil, nil) when no
// row matches, and other failures surface to the caller unchanged.
type Store interface {
	GetProfile(ctx context.Context, id string) (*Employee, error)
	ListProfiles(ctx context.Context) ([]Employee, error)
	InsertProfile(ctx context.Context, e Employee) (Employee, error)
	SetProfileApproved(ctx context.Context, id string, approved bool) error
	DeleteProfile(ctx context.Context, id string) error

	GetEntry(ctx context.Context, id string) (*Entry, error)
	ListEntries(ctx context.Context) ([]Entry, error)
	EntriesByEmployee(ctx context.Context, employeeID string) ([]Entry, error)
	EntryByEmployeeDate(ctx context.Context, employeeID, date string) (*Entry, error)
	InsertEntry(ctx context.Context, e Entry) (Entry, error)
	UpdateEntryDecision(ctx context.Context, id string, d Decision, remark *string) error

	DeviceEmployee(ctx context.Context, deviceID string) (string, error)
	SaveDeviceBinding(ctx context.Context, deviceID, employeeID string, lastLogin time.Time) error
}

// Clock provides the current instant so tests can pin time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns a Clock backed by time.Now in UTC.
func SystemClock() Clock { return realClock{} }
