// Package access holds the gate-code checks for the manager, HR and admin
// surfaces. Codes are compared by exact string equality; the system inherited
// this access model and it is not a hashing-grade credential store.
package access

import (
	"errors"
	"sync"

	"shiftboard/internal/shift"
)

// ErrUnknownUser is returned when a password change targets an id that has no
// gate code.
var ErrUnknownUser = errors.New("access: unknown user id")

// Control owns the gate codes, loaded once at process start. Manager
// passwords may be rewritten at runtime through ChangePassword; the admin and
// HR codes are fixed for the process lifetime.
type Control struct {
	adminCode string
	hrCode    string

	mu               sync.RWMutex
	managerPasswords map[string]string
}

// New builds a Control from the configured codes. The manager password map is
// copied so config stays immutable.
func New(adminCode, hrCode string, managerPasswords map[string]string) *Control {
	passwords := make(map[string]string, len(managerPasswords))
	for id, pw := range managerPasswords {
		passwords[id] = pw
	}
	return &Control{
		adminCode:        adminCode,
		hrCode:           hrCode,
		managerPasswords: passwords,
	}
}

// CheckAdmin reports whether code opens the admin surface.
func (c *Control) CheckAdmin(code string) bool { return code == c.adminCode }

// CheckHR reports whether code opens the HR surface.
func (c *Control) CheckHR(code string) bool { return code == c.hrCode }

// CheckManager validates a manager login and returns the seeded manager
// profile on success.
func (c *Control) CheckManager(managerID, password string) (shift.Employee, bool) {
	c.mu.RLock()
	expected, ok := c.managerPasswords[managerID]
	c.mu.RUnlock()
	if !ok || password != expected {
		return shift.Employee{}, false
	}
	manager, ok := shift.SeededManager(managerID)
	if !ok {
		return shift.Employee{}, false
	}
	return manager, true
}

// ChangePassword rewrites a manager's gate code. The admin gate is enforced
// by the caller, the same boundary as the other admin actions.
func (c *Control) ChangePassword(userID, newPassword string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.managerPasswords[userID]; !ok {
		return ErrUnknownUser
	}
	c.managerPasswords[userID] = newPassword
	return nil
}
