package shift

import "context"

// seededManagers are the fixed section-manager profiles. They are never stored
// in the record store and are implicitly approved.
var seededManagers = []Employee{
	{ID: "QC_MGR", FullName: "QC Manager", Department: DeptEngineering, Section: SectionQC, Role: RoleManager, Approved: true},
	{ID: "RTG_MGR", FullName: "RTG Manager", Department: DeptEngineering, Section: SectionRTG, Role: RoleManager, Approved: true},
	{ID: "MES_MGR", FullName: "MES Manager", Department: DeptEngineering, Section: SectionMES, Role: RoleManager, Approved: true},
	{ID: "PLN_MGR", FullName: "Planning Manager", Department: DeptEngineering, Section: SectionPlanning, Role: RoleManager, Approved: true},
	{ID: "STR_MGR", FullName: "Store Manager", Department: DeptEngineering, Section: SectionStore, Role: RoleManager, Approved: true},
	{ID: "INF_MGR", FullName: "Infra Manager", Department: DeptEngineering, Section: SectionInfra, Role: RoleManager, Approved: true},
	{ID: "SHIFT_MGR", FullName: "Shift Manager", Department: DeptEngineering, Section: SectionShiftIncharge, Role: RoleManager, Approved: true},
}

// SeededManagers returns the fixed manager profiles keyed by id.
func SeededManagers() map[string]Employee {
	out := make(map[string]Employee, len(seededManagers))
	for _, m := range seededManagers {
		out[m.ID] = m
	}
	return out
}

// SeededManager returns one seeded manager profile by id.
func SeededManager(id string) (Employee, bool) {
	for _, m := range seededManagers {
		if m.ID == id {
			return m, true
		}
	}
	return Employee{}, false
}

// Directory exposes the merged employee view: stored profiles plus the seeded
// managers. It is recomputed per call rather than cached, matching the rest of
// the derived views.
type Directory struct {
	store Store
}

// NewDirectory creates a directory over a store.
func NewDirectory(store Store) *Directory {
	return &Directory{store: store}
}

// Snapshot returns id→employee for every stored profile and seeded manager.
// A stored profile with a manager id wins over the seed, matching how the
// merged map was built in the source system.
func (d *Directory) Snapshot(ctx context.Context) (map[string]Employee, error) {
	out := SeededManagers()
	profiles, err := d.store.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		out[p.ID] = p
	}
	return out, nil
}

// Lookup resolves one id against the seeded managers and the store.
func (d *Directory) Lookup(ctx context.Context, id string) (*Employee, error) {
	p, err := d.store.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}
	if m, ok := SeededManager(id); ok {
		return &m, nil
	}
	return nil, nil
}
