package shift

import "time"

// Department is the employee's top-level organizational unit.
type Department string

const (
	DeptOperations    Department = "Operations"
	DeptEngineering   Department = "Engineering"
	DeptHumanResource Department = "Human Resource"
	DeptFinance       Department = "Finance"
	DeptSafety        Department = "Safety"
	DeptIT            Department = "IT"
	DeptSecurity      Department = "Security"
	DeptPlanning      Department = "Planning"
	DeptOthers        Department = "Others"
)

// Departments lists every valid department.
var Departments = []Department{
	DeptOperations, DeptEngineering, DeptHumanResource, DeptFinance,
	DeptSafety, DeptIT, DeptSecurity, DeptPlanning, DeptOthers,
}

// Section is a sub-unit of Engineering; it scopes manager approval authority.
type Section string

const (
	SectionQC            Section = "QC"
	SectionRTG           Section = "RTG"
	SectionMES           Section = "MES"
	SectionShiftIncharge Section = "Shift Incharge"
	SectionPlanning      Section = "Planning"
	SectionStore         Section = "Store"
	SectionInfra         Section = "Infra"
	SectionOthers        Section = "Others"
)

// Sections lists every valid engineering section.
var Sections = []Section{
	SectionQC, SectionRTG, SectionMES, SectionShiftIncharge,
	SectionPlanning, SectionStore, SectionInfra, SectionOthers,
}

// ShiftType identifies what kind of shift a daily entry records.
type ShiftType string

const (
	ShiftFirst     ShiftType = "1st_shift"
	ShiftSecond    ShiftType = "2nd_shift"
	ShiftThird     ShiftType = "3rd_shift"
	ShiftLeave     ShiftType = "leave"
	ShiftMedical   ShiftType = "medical"
	ShiftOTOffDay  ShiftType = "ot_off_day"
	ShiftOTWeekOff ShiftType = "ot_week_off"
	ShiftOTHoliday ShiftType = "ot_public_holiday"
	ShiftOther     ShiftType = "other"
)

// ShiftTypes lists every valid shift type.
var ShiftTypes = []ShiftType{
	ShiftFirst, ShiftSecond, ShiftThird, ShiftLeave, ShiftMedical,
	ShiftOTOffDay, ShiftOTWeekOff, ShiftOTHoliday, ShiftOther,
}

// shiftLabels are the display names used in exports.
var shiftLabels = map[ShiftType]string{
	ShiftFirst:     "1st Shift (6:00 AM - 2:00 PM)",
	ShiftSecond:    "2nd Shift (2:00 PM - 10:00 PM)",
	ShiftThird:     "3rd Shift (10:00 PM - 6:00 AM)",
	ShiftLeave:     "Leave",
	ShiftMedical:   "Medical Leave",
	ShiftOTOffDay:  "OT (Off Day)",
	ShiftOTWeekOff: "OT (Week Off)",
	ShiftOTHoliday: "OT (Public Holiday)",
	ShiftOther:     "Other",
}

// Label returns the human-readable name of a shift type.
func (t ShiftType) Label() string {
	if l, ok := shiftLabels[t]; ok {
		return l
	}
	return string(t)
}

// IsOvertime reports whether the type is one of the ot_* variants.
func (t ShiftType) IsOvertime() bool {
	switch t {
	case ShiftOTOffDay, ShiftOTWeekOff, ShiftOTHoliday:
		return true
	}
	return false
}

// IsRegular reports whether the type is a rotation shift (1st/2nd/3rd).
func (t ShiftType) IsRegular() bool {
	switch t {
	case ShiftFirst, ShiftSecond, ShiftThird:
		return true
	}
	return false
}

// IsLeave reports whether the type is a leave variant.
func (t ShiftType) IsLeave() bool {
	return t == ShiftLeave || t == ShiftMedical
}

// ValidShiftType reports whether s names a known shift type.
func ValidShiftType(s ShiftType) bool {
	_, ok := shiftLabels[s]
	return ok
}

// ValidDepartment reports whether d names a known department.
func ValidDepartment(d Department) bool {
	for _, v := range Departments {
		if v == d {
			return true
		}
	}
	return false
}

// ValidSection reports whether s names a known section.
func ValidSection(s Section) bool {
	for _, v := range Sections {
		if v == s {
			return true
		}
	}
	return false
}

// Role distinguishes regular employees from approvers.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// Employee is a registered profile. Seeded managers also appear as Employee
// values but are never stored.
type Employee struct {
	ID         string     `json:"id"`
	FullName   string     `json:"full_name"`
	Department Department `json:"department"`
	Section    Section    `json:"section,omitempty"`
	Role       Role       `json:"role"`
	Approved   bool       `json:"approved"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// DecisionStatus is the state of an entry in the approval workflow.
type DecisionStatus string

const (
	StatusPending  DecisionStatus = "pending"
	StatusApproved DecisionStatus = "approved"
	StatusRejected DecisionStatus = "rejected"
)

// String implements fmt.Stringer with the export-facing capitalized form.
func (s DecisionStatus) String() string {
	switch s {
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	default:
		return "Pending"
	}
}

// Decision records the approval outcome of an entry. A pending entry has
// Status Pending and zero By/At. By and At are set exactly once, when the
// entry leaves the pending state, and are never cleared afterwards.
type Decision struct {
	Status        DecisionStatus `json:"status"`
	By            string         `json:"by,omitempty"`
	At            time.Time      `json:"at,omitempty"`
	Justification string         `json:"justification,omitempty"`
}

// Settled reports whether the entry has left the pending state.
func (d Decision) Settled() bool {
	return d.Status == StatusApproved || d.Status == StatusRejected
}

// Entry is one employee's shift record for a single civil date.
// Date is a zone-less "2006-01-02" string; at most one entry exists per
// (EmployeeID, Date) pair.
type Entry struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employee_id"`
	Date        string    `json:"date"`
	ShiftType   ShiftType `json:"shift_type"`
	OtherRemark string    `json:"other_remark,omitempty"`
	Decision    Decision  `json:"decision"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DateLayout is the civil date format used throughout.
const DateLayout = "2006-01-02"

// MonthLayout is the "2006-01" year-month format used by roster and OT views.
const MonthLayout = "2006-01"
