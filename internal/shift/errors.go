package shift

import "errors"

var (
	ErrDuplicateID           = errors.New("shift: employee id already exists")
	ErrMissingSection        = errors.New("shift: section required for Engineering")
	ErrInvalidDepartment     = errors.New("shift: unknown department")
	ErrInvalidSection        = errors.New("shift: unknown section")
	ErrInvalidShiftType      = errors.New("shift: unknown shift type")
	ErrInvalidDate           = errors.New("shift: date must be today or tomorrow")
	ErrDateAlreadyUsed       = errors.New("shift: entry already exists for that date")
	ErrMissingRemark         = errors.New("shift: remark required for other shift type")
	ErrJustificationTooShort = errors.New("shift: justification must be at least 10 characters")
	ErrNotFound              = errors.New("shift: not found")
)
