package shift

import (
	"context"
	"testing"
)

func TestSnapshotMergesSeededManagers(t *testing.T) {
	store := newMemStore()
	store.seedProfile(Employee{ID: "EMP001", FullName: "Stored Person", Department: DeptIT, Role: RoleEmployee})

	snap, err := NewDirectory(store).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	// 7 seeded managers + 1 stored profile.
	if len(snap) != 8 {
		t.Fatalf("len(snapshot) = %d, want 8", len(snap))
	}
	qc, ok := snap["QC_MGR"]
	if !ok {
		t.Fatal("QC_MGR missing from snapshot")
	}
	if qc.Section != SectionQC || qc.Role != RoleManager || !qc.Approved {
		t.Errorf("QC_MGR = %+v, want approved QC manager", qc)
	}
	if _, ok := snap["EMP001"]; !ok {
		t.Error("stored profile missing from snapshot")
	}
}

func TestLookupPrefersStoreThenSeeds(t *testing.T) {
	store := newMemStore()
	store.seedProfile(Employee{ID: "EMP001", FullName: "Stored", Department: DeptIT, Role: RoleEmployee})
	dir := NewDirectory(store)

	got, err := dir.Lookup(context.Background(), "EMP001")
	if err != nil || got == nil || got.FullName != "Stored" {
		t.Fatalf("Lookup stored = (%+v, %v)", got, err)
	}

	mgr, err := dir.Lookup(context.Background(), "RTG_MGR")
	if err != nil || mgr == nil || mgr.Section != SectionRTG {
		t.Fatalf("Lookup seeded manager = (%+v, %v)", mgr, err)
	}

	missing, err := dir.Lookup(context.Background(), "NOBODY")
	if err != nil || missing != nil {
		t.Errorf("Lookup missing = (%+v, %v), want (nil, nil)", missing, err)
	}
}

func TestSeededManagersCoverEverySeededSection(t *testing.T) {
	managers := SeededManagers()
	if len(managers) != 7 {
		t.Fatalf("len(managers) = %d, want 7", len(managers))
	}
	seen := map[Section]bool{}
	for _, m := range managers {
		if m.Department != DeptEngineering {
			t.Errorf("%s department = %s, want Engineering", m.ID, m.Department)
		}
		seen[m.Section] = true
	}
	for _, s := range []Section{SectionQC, SectionRTG, SectionMES, SectionPlanning, SectionStore, SectionInfra, SectionShiftIncharge} {
		if !seen[s] {
			t.Errorf("no seeded manager for section %s", s)
		}
	}
}
