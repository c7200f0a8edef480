package shift

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository persists profiles, shift entries and device bindings in Postgres.
// The tri-state decision maps onto a nullable boolean column: NULL pending,
// TRUE approved, FALSE rejected. Rejection justifications live in other_remark,
// overwriting whatever the employee wrote.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

var _ Store = (*Repository)(nil)

const profileColumns = `id, full_name, department, section, role, is_approved, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (Employee, error) {
	var (
		e       Employee
		section sql.NullString
	)
	if err := row.Scan(&e.ID, &e.FullName, &e.Department, &section, &e.Role, &e.Approved, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return Employee{}, err
	}
	if section.Valid {
		e.Section = Section(section.String)
	}
	return e, nil
}

// GetProfile returns a profile by id, or nil when none exists.
func (r *Repository) GetProfile(ctx context.Context, id string) (*Employee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	e, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// ListProfiles returns every stored profile.
func (r *Repository) ListProfiles(ctx context.Context) ([]Employee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Employee
	for rows.Next() {
		e, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

// InsertProfile writes a new profile row.
func (r *Repository) InsertProfile(ctx context.Context, e Employee) (Employee, error) {
	var section any
	if e.Section != "" {
		section = string(e.Section)
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO profiles (id, full_name, department, section, role, is_approved)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at, updated_at
	`, e.ID, e.FullName, e.Department, section, e.Role, e.Approved)
	if err := row.Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
		return Employee{}, err
	}
	return e, nil
}

// SetProfileApproved flips the approval flag on an existing profile.
func (r *Repository) SetProfileApproved(ctx context.Context, id string, approved bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles SET is_approved = $2, updated_at = NOW() WHERE id = $1
	`, id, approved)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteProfile removes a profile. Shift entries are not cascade-deleted.
func (r *Repository) DeleteProfile(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

const entryColumns = `id, employee_id, date, shift_type, other_remark, approved, approved_by, approved_at, created_at, updated_at`

func scanEntry(row interface{ Scan(...any) error }) (Entry, error) {
	var (
		e        Entry
		remark   sql.NullString
		approved sql.NullBool
		by       sql.NullString
		at       sql.NullTime
	)
	if err := row.Scan(&e.ID, &e.EmployeeID, &e.Date, &e.ShiftType, &remark, &approved, &by, &at, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return Entry{}, err
	}
	e.OtherRemark = remark.String
	e.Decision = decisionFromColumns(approved, by, at, remark)
	return e, nil
}

func decisionFromColumns(approved sql.NullBool, by sql.NullString, at sql.NullTime, remark sql.NullString) Decision {
	if !approved.Valid {
		return Decision{Status: StatusPending}
	}
	d := Decision{By: by.String, At: at.Time}
	if approved.Bool {
		d.Status = StatusApproved
	} else {
		d.Status = StatusRejected
		d.Justification = remark.String
	}
	return d
}

// GetEntry returns an entry by id, or nil when none exists.
func (r *Repository) GetEntry(ctx context.Context, id string) (*Entry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM shift_entries WHERE id = $1`, id)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// ListEntries returns every entry, newest first. Derived views recompute over
// this full snapshot rather than maintaining indexes.
func (r *Repository) ListEntries(ctx context.Context) ([]Entry, error) {
	return r.queryEntries(ctx, `SELECT `+entryColumns+` FROM shift_entries ORDER BY created_at DESC`)
}

// EntriesByEmployee returns one employee's entries, newest first.
func (r *Repository) EntriesByEmployee(ctx context.Context, employeeID string) ([]Entry, error) {
	return r.queryEntries(ctx, `
		SELECT `+entryColumns+` FROM shift_entries
		WHERE employee_id = $1 ORDER BY created_at DESC
	`, employeeID)
}

// EntryByEmployeeDate returns the single entry for an (employee, date) pair,
// or nil when none exists.
func (r *Repository) EntryByEmployeeDate(ctx context.Context, employeeID, date string) (*Entry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+` FROM shift_entries
		WHERE employee_id = $1 AND date = $2
		LIMIT 1
	`, employeeID, date)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// InsertEntry writes a new pending entry.
func (r *Repository) InsertEntry(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	var remark any
	if e.OtherRemark != "" {
		remark = e.OtherRemark
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO shift_entries (id, employee_id, date, shift_type, other_remark, approved)
		VALUES ($1,$2,$3,$4,$5,NULL)
		RETURNING created_at, updated_at
	`, e.ID, e.EmployeeID, e.Date, e.ShiftType, remark)
	if err := row.Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
		return Entry{}, err
	}
	e.Decision = Decision{Status: StatusPending}
	return e, nil
}

// UpdateEntryDecision settles an entry. remark, when non-nil, overwrites
// other_remark (rejection justifications).
func (r *Repository) UpdateEntryDecision(ctx context.Context, id string, d Decision, remark *string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE shift_entries
		SET approved = $2, approved_by = $3, approved_at = $4,
		    other_remark = COALESCE($5, other_remark), updated_at = NOW()
		WHERE id = $1
	`, id, d.Status == StatusApproved, d.By, d.At, remark)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeviceEmployee returns the employee id bound to a device, or "" when the
// device has never registered.
func (r *Repository) DeviceEmployee(ctx context.Context, deviceID string) (string, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT employee_id FROM device_registrations WHERE device_id = $1
	`, deviceID)
	var employeeID string
	if err := row.Scan(&employeeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return employeeID, nil
}

// SaveDeviceBinding upserts the device→employee binding.
func (r *Repository) SaveDeviceBinding(ctx context.Context, deviceID, employeeID string, lastLogin time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO device_registrations (device_id, employee_id, last_login)
		VALUES ($1, $2, $3)
		ON CONFLICT (device_id) DO UPDATE SET
			employee_id = EXCLUDED.employee_id,
			last_login = EXCLUDED.last_login
	`, deviceID, employeeID, lastLogin)
	return err
}

func (r *Repository) queryEntries(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
