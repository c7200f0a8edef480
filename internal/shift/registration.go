package shift

import (
	"context"
	"errors"
	"log"
	"strings"
)

// Registration handles new-employee signup and device auto-login.
type Registration struct {
	store Store
	clock Clock
}

// NewRegistration creates the workflow.
func NewRegistration(store Store, clock Clock) *Registration {
	if clock == nil {
		clock = SystemClock()
	}
	return &Registration{store: store, clock: clock}
}

// RegisterInput is what a new employee submits.
type RegisterInput struct {
	ID         string
	FullName   string
	Department Department
	Section    Section
	DeviceID   string
}

// CheckExisting returns the profile for an id, or nil when unregistered.
// IDs are matched in their upper-cased form.
func (r *Registration) CheckExisting(ctx context.Context, id string) (*Employee, error) {
	return r.store.GetProfile(ctx, normalizeID(id))
}

// Register creates a pending profile. The employee must wait for admin
// approval before submitting shifts. When a device id is supplied the binding
// is saved best-effort after the profile commits; a failed binding save does
// not roll the profile back.
func (r *Registration) Register(ctx context.Context, in RegisterInput) (Employee, error) {
	id := normalizeID(in.ID)
	if id == "" || strings.TrimSpace(in.FullName) == "" {
		return Employee{}, errors.New("shift: id and full name required")
	}
	if !ValidDepartment(in.Department) {
		return Employee{}, ErrInvalidDepartment
	}
	if in.Department == DeptEngineering {
		if in.Section == "" {
			return Employee{}, ErrMissingSection
		}
		if !ValidSection(in.Section) {
			return Employee{}, ErrInvalidSection
		}
	}

	existing, err := r.store.GetProfile(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	if existing != nil {
		return *existing, ErrDuplicateID
	}

	e := Employee{
		ID:         id,
		FullName:   strings.TrimSpace(in.FullName),
		Department: in.Department,
		Role:       RoleEmployee,
		Approved:   false,
	}
	if in.Department == DeptEngineering {
		e.Section = in.Section
	}

	created, err := r.store.InsertProfile(ctx, e)
	if err != nil {
		return Employee{}, err
	}

	if in.DeviceID != "" {
		if err := r.store.SaveDeviceBinding(ctx, in.DeviceID, created.ID, r.clock.Now()); err != nil {
			log.Printf("device binding save failed for %s: %v", created.ID, err)
		}
	}
	return created, nil
}

// AutoDetect resolves a device id to its bound profile, or nil when the device
// has never registered. A hit refreshes the binding's last login.
func (r *Registration) AutoDetect(ctx context.Context, deviceID string) (*Employee, error) {
	if deviceID == "" {
		return nil, nil
	}
	employeeID, err := r.store.DeviceEmployee(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if employeeID == "" {
		return nil, nil
	}
	profile, err := r.store.GetProfile(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		if err := r.store.SaveDeviceBinding(ctx, deviceID, employeeID, r.clock.Now()); err != nil {
			log.Printf("device last-login update failed for %s: %v", employeeID, err)
		}
	}
	return profile, nil
}

func normalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
