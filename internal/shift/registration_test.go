package shift

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterCreatesPendingProfile(t *testing.T) {
	store := newMemStore()
	reg := NewRegistration(store, newFakeClock("2025-03-10T08:00:00Z"))

	got, err := reg.Register(context.Background(), RegisterInput{
		ID:         "emp001",
		FullName:   "Asha Rahman",
		Department: DeptOperations,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got.ID != "EMP001" {
		t.Errorf("id not upper-cased: %q", got.ID)
	}
	if got.Approved {
		t.Error("new registration must start unapproved")
	}
	if got.Role != RoleEmployee {
		t.Errorf("role = %q, want employee", got.Role)
	}

	// Immediately visible through the directory, no refresh step.
	snap, err := NewDirectory(store).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if _, ok := snap["EMP001"]; !ok {
		t.Error("registered employee missing from directory snapshot")
	}
}

func TestRegisterDuplicateID(t *testing.T) {
	store := newMemStore()
	reg := NewRegistration(store, newFakeClock("2025-03-10T08:00:00Z"))

	in := RegisterInput{ID: "EMP002", FullName: "First", Department: DeptFinance}
	if _, err := reg.Register(context.Background(), in); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	in.FullName = "Second"
	existing, err := reg.Register(context.Background(), in)
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID", err)
	}
	if existing.FullName != "First" {
		t.Errorf("duplicate should return the existing profile, got %q", existing.FullName)
	}

	// Lower-cased resubmission hits the same profile.
	in.ID = "emp002"
	if _, err := reg.Register(context.Background(), in); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("lower-cased id err = %v, want ErrDuplicateID", err)
	}
}

func TestRegisterSectionRequirement(t *testing.T) {
	tests := []struct {
		name       string
		department Department
		section    Section
		wantErr    error
	}{
		{"engineering without section", DeptEngineering, "", ErrMissingSection},
		{"engineering with section", DeptEngineering, SectionQC, nil},
		{"operations without section", DeptOperations, "", nil},
		{"safety without section", DeptSafety, "", nil},
		{"unknown department", Department("Catering"), "", ErrInvalidDepartment},
		{"engineering bad section", DeptEngineering, Section("Welding"), ErrInvalidSection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			reg := NewRegistration(store, newFakeClock("2025-03-10T08:00:00Z"))
			_, err := reg.Register(context.Background(), RegisterInput{
				ID:         "EMP010",
				FullName:   "Test Person",
				Department: tt.department,
				Section:    tt.section,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterNonEngineeringDropsSection(t *testing.T) {
	store := newMemStore()
	reg := NewRegistration(store, newFakeClock("2025-03-10T08:00:00Z"))
	got, err := reg.Register(context.Background(), RegisterInput{
		ID:         "EMP011",
		FullName:   "Test Person",
		Department: DeptIT,
		Section:    SectionQC,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got.Section != "" {
		t.Errorf("section should be empty outside Engineering, got %q", got.Section)
	}
}

func TestRegisterSavesDeviceBinding(t *testing.T) {
	store := newMemStore()
	clock := newFakeClock("2025-03-10T08:00:00Z")
	reg := NewRegistration(store, clock)

	if _, err := reg.Register(context.Background(), RegisterInput{
		ID:         "EMP020",
		FullName:   "Device User",
		Department: DeptSecurity,
		DeviceID:   "device-abc",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if store.devices["device-abc"] != "EMP020" {
		t.Errorf("device binding = %q, want EMP020", store.devices["device-abc"])
	}
	if !store.deviceLogins["device-abc"].Equal(clock.now) {
		t.Error("last login not stamped with the clock")
	}
}

func TestAutoDetect(t *testing.T) {
	store := newMemStore()
	store.seedProfile(Employee{ID: "EMP030", FullName: "Bound User", Department: DeptIT, Role: RoleEmployee, Approved: true})
	store.devices["device-x"] = "EMP030"

	clock := newFakeClock("2025-03-11T09:00:00Z")
	reg := NewRegistration(store, clock)

	got, err := reg.AutoDetect(context.Background(), "device-x")
	if err != nil {
		t.Fatalf("AutoDetect: %v", err)
	}
	if got == nil || got.ID != "EMP030" {
		t.Fatalf("AutoDetect = %+v, want EMP030", got)
	}
	if !store.deviceLogins["device-x"].Equal(clock.now) {
		t.Error("hit should refresh last login")
	}

	if got, err := reg.AutoDetect(context.Background(), "device-unknown"); err != nil || got != nil {
		t.Errorf("unknown device = (%+v, %v), want (nil, nil)", got, err)
	}
	if got, err := reg.AutoDetect(context.Background(), ""); err != nil || got != nil {
		t.Errorf("empty device = (%+v, %v), want (nil, nil)", got, err)
	}
}

func TestCheckExisting(t *testing.T) {
	store := newMemStore()
	store.seedProfile(Employee{ID: "EMP040", FullName: "Known", Department: DeptPlanning, Role: RoleEmployee})
	reg := NewRegistration(store, newFakeClock("2025-03-10T08:00:00Z"))

	got, err := reg.CheckExisting(context.Background(), "emp040")
	if err != nil {
		t.Fatalf("CheckExisting: %v", err)
	}
	if got == nil || got.ID != "EMP040" {
		t.Fatalf("CheckExisting = %+v, want EMP040", got)
	}

	missing, err := reg.CheckExisting(context.Background(), "EMP999")
	if err != nil || missing != nil {
		t.Errorf("missing id = (%+v, %v), want (nil, nil)", missing, err)
	}
}
