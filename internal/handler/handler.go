package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shiftboard/internal/access"
	"shiftboard/internal/auth"
	"shiftboard/internal/export"
	"shiftboard/internal/queue"
	"shiftboard/internal/shift"
)

// Handler wires the workflow services to the HTTP surface.
type Handler struct {
	registration *shift.Registration
	submission   *shift.Submission
	approval     *shift.Approval
	dir          *shift.Directory
	store        shift.Store
	control      *access.Control
	q            queue.Queue

	jwtKey         string
	jwtIssuer      string
	sessionTTL     time.Duration
	baseHourlyRate float64
}

// New creates a handler.
func New(store shift.Store, control *access.Control, q queue.Queue, clock shift.Clock,
	jwtKey, jwtIssuer string, sessionTTL time.Duration, baseHourlyRate float64) *Handler {
	dir := shift.NewDirectory(store)
	return &Handler{
		registration:   shift.NewRegistration(store, clock),
		submission:     shift.NewSubmission(store, clock),
		approval:       shift.NewApproval(store, dir, clock),
		dir:            dir,
		store:          store,
		control:        control,
		q:              q,
		jwtKey:         jwtKey,
		jwtIssuer:      jwtIssuer,
		sessionTTL:     sessionTTL,
		baseHourlyRate: baseHourlyRate,
	}
}

// ---------- Logins ----------

// ManagerLogin exchanges a manager id + gate code for a session token scoped
// to the manager's section.
func (h *Handler) ManagerLogin(c *gin.Context) {
	var req struct {
		ManagerID string `json:"manager_id" binding:"required"`
		Password  string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	manager, ok := h.control.CheckManager(req.ManagerID, req.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	h.issueToken(c, manager.ID, string(shift.RoleManager), string(manager.Section))
}

// HRLogin exchanges the HR gate code for an hr-role token.
func (h *Handler) HRLogin(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.control.CheckHR(req.Code) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	h.issueToken(c, "HR", "hr", "")
}

// AdminLogin exchanges the admin gate code for an admin-role token.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.control.CheckAdmin(req.Code) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	h.issueToken(c, "ADMIN", string(shift.RoleAdmin), "")
}

func (h *Handler) issueToken(c *gin.Context, subject, role, section string) {
	token, err := auth.Issue(subject, role, section, h.jwtIssuer, h.jwtKey, h.sessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":      token.Value,
		"expires_at": token.ExpiresAt.Unix(),
		"role":       role,
	})
}

// ---------- Registration ----------

// RegisterEmployee creates a pending profile awaiting admin approval.
func (h *Handler) RegisterEmployee(c *gin.Context) {
	var req struct {
		ID         string `json:"id" binding:"required"`
		FullName   string `json:"full_name" binding:"required"`
		Department string `json:"department" binding:"required"`
		Section    string `json:"section"`
		DeviceID   string `json:"device_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, err := h.registration.Register(c.Request.Context(), shift.RegisterInput{
		ID:         req.ID,
		FullName:   req.FullName,
		Department: shift.Department(req.Department),
		Section:    shift.Section(req.Section),
		DeviceID:   req.DeviceID,
	})
	if err != nil {
		status := statusFor(err)
		if errors.Is(err, shift.ErrDuplicateID) {
			// The existing profile rides along so the client can resume it.
			c.JSON(status, gin.H{"error": err.Error(), "profile": profile})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// AutoLogin resolves a device id to its bound profile, mirroring the
// device-fingerprint auto-login of the client.
func (h *Handler) AutoLogin(c *gin.Context) {
	deviceID := c.Query("device_id")
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_id required"})
		return
	}
	profile, err := h.registration.AutoDetect(c.Request.Context(), deviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no registration for device"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// CheckEmployee is the exact-match profile lookup used before registering.
func (h *Handler) CheckEmployee(c *gin.Context) {
	profile, err := h.registration.CheckExisting(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ---------- Shift submission ----------

// AvailableDates returns today and tomorrow with their usage flags.
func (h *Handler) AvailableDates(c *gin.Context) {
	employeeID := c.Query("employee_id")
	if employeeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee_id required"})
		return
	}
	dates, err := h.submission.AvailableDates(c.Request.Context(), employeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

// SubmitShift creates a pending entry. Only approved employees get here; an
// unapproved or unknown profile is turned away before validation runs.
func (h *Handler) SubmitShift(c *gin.Context) {
	var req struct {
		EmployeeID  string `json:"employee_id" binding:"required"`
		Date        string `json:"date" binding:"required"`
		ShiftType   string `json:"shift_type" binding:"required"`
		OtherRemark string `json:"other_remark"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.store.GetProfile(c.Request.Context(), req.EmployeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil || !profile.Approved {
		c.JSON(http.StatusForbidden, gin.H{"error": "registration not approved"})
		return
	}

	entry, err := h.submission.Submit(c.Request.Context(), req.EmployeeID, req.Date, shift.ShiftType(req.ShiftType), req.OtherRemark)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ShiftHistory returns one employee's entries, newest first.
func (h *Handler) ShiftHistory(c *gin.Context) {
	employeeID := c.Query("employee_id")
	if employeeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee_id required"})
		return
	}
	entries, err := h.submission.History(c.Request.Context(), employeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if entries == nil {
		entries = []shift.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// ---------- Manager approval ----------

// SectionPending lists the pending entries for the manager's section.
func (h *Handler) SectionPending(c *gin.Context) {
	claims, _ := auth.FromContext(c)
	entries, err := h.approval.PendingFor(c.Request.Context(), shift.Section(claims.Section))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if entries == nil {
		entries = []shift.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// ApproveEntry settles a pending entry as approved.
func (h *Handler) ApproveEntry(c *gin.Context) {
	claims, _ := auth.FromContext(c)
	entry, err := h.approval.Approve(c.Request.Context(), c.Param("id"), claims.Subject)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	h.publishDecision("approved", entry.ID)
	c.JSON(http.StatusOK, entry)
}

// RejectEntry settles a pending entry as rejected with a justification.
func (h *Handler) RejectEntry(c *gin.Context) {
	var req struct {
		Justification string `json:"justification" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	claims, _ := auth.FromContext(c)
	entry, err := h.approval.Reject(c.Request.Context(), c.Param("id"), claims.Subject, req.Justification)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	h.publishDecision("rejected", entry.ID)
	c.JSON(http.StatusOK, entry)
}

// SectionHistory lists the settled entries for the manager's section,
// narrowed by optional exact-match filters.
func (h *Handler) SectionHistory(c *gin.Context) {
	claims, _ := auth.FromContext(c)
	entries, err := h.approval.HistoryFor(c.Request.Context(), shift.Section(claims.Section), shift.HistoryFilters{
		Date:       c.Query("date"),
		EmployeeID: c.Query("employee_id"),
		ShiftType:  shift.ShiftType(c.Query("shift_type")),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if entries == nil {
		entries = []shift.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// SectionExport downloads the section's entries as CSV.
func (h *Handler) SectionExport(c *gin.Context) {
	claims, _ := auth.FromContext(c)
	entries, err := h.approval.SectionEntries(c.Request.Context(), shift.Section(claims.Section))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	employees, err := h.dir.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	name := fmt.Sprintf("%s-attendance-%s.csv", claims.Section, time.Now().UTC().Format(shift.DateLayout))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("Content-Type", "text/csv")
	if err := export.WriteCSV(c.Writer, export.Rows(entries, employees)); err != nil {
		log.Printf("section export failed: %v", err)
	}
}

// ---------- HR ----------

// HREntries lists all entries across sections, narrowed by optional filters.
// The section filter only applies when the department filter is Engineering.
func (h *Handler) HREntries(c *gin.Context) {
	entries, _, err := h.filteredHREntries(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if entries == nil {
		entries = []shift.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// HRExport downloads the filtered HR view as CSV or XLSX.
func (h *Handler) HRExport(c *gin.Context) {
	entries, employees, err := h.filteredHREntries(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	rows := export.Rows(entries, employees)
	stamp := time.Now().UTC().Format(shift.DateLayout)

	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		c.Header("Content-Disposition", `attachment; filename="shift-data-`+stamp+`.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := export.WriteXLSX(c.Writer, rows); err != nil {
			log.Printf("xlsx export failed: %v", err)
		}
	case "csv":
		c.Header("Content-Disposition", `attachment; filename="shift-data-`+stamp+`.csv"`)
		c.Header("Content-Type", "text/csv")
		if err := export.WriteCSV(c.Writer, rows); err != nil {
			log.Printf("csv export failed: %v", err)
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
	}
}

func (h *Handler) filteredHREntries(c *gin.Context) ([]shift.Entry, map[string]shift.Employee, error) {
	ctx := c.Request.Context()
	employees, err := h.dir.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	all, err := h.store.ListEntries(ctx)
	if err != nil {
		return nil, nil, err
	}

	date := c.Query("date")
	employeeID := c.Query("employee_id")
	shiftType := c.Query("shift_type")
	department := c.Query("department")
	section := c.Query("section")

	var out []shift.Entry
	for _, e := range all {
		if date != "" && e.Date != date {
			continue
		}
		if employeeID != "" && e.EmployeeID != employeeID {
			continue
		}
		if shiftType != "" && string(e.ShiftType) != shiftType {
			continue
		}
		owner, known := employees[e.EmployeeID]
		if department != "" && (!known || string(owner.Department) != department) {
			continue
		}
		if section != "" && department == string(shift.DeptEngineering) &&
			(!known || string(owner.Section) != section) {
			continue
		}
		out = append(out, e)
	}
	return out, employees, nil
}

// ---------- Admin ----------

// AdminEmployees lists every profile plus the seeded managers.
func (h *Handler) AdminEmployees(c *gin.Context) {
	employees, err := h.dir.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]shift.Employee, 0, len(employees))
	for _, e := range employees {
		out = append(out, e)
	}
	c.JSON(http.StatusOK, gin.H{"employees": out})
}

// ApproveEmployeeProfile marks a registration approved. Idempotent.
func (h *Handler) ApproveEmployeeProfile(c *gin.Context) {
	if err := h.approval.ApproveEmployee(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "approved"})
}

// RejectEmployeeProfile deletes the registration outright. The employee must
// re-register; their entries stay behind, orphaned.
func (h *Handler) RejectEmployeeProfile(c *gin.Context) {
	if err := h.approval.RejectEmployee(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

// ChangePassword rewrites a manager gate code.
func (h *Handler) ChangePassword(c *gin.Context) {
	var req struct {
		UserID      string `json:"user_id" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.control.ChangePassword(req.UserID, req.NewPassword); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "changed"})
}

// ---------- Derived views ----------

// Roster projects one employee's calendar month.
func (h *Handler) Roster(c *gin.Context) {
	employeeID := c.Query("employee_id")
	month := c.Query("month")
	if employeeID == "" || month == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee_id and month required"})
		return
	}
	entries, err := h.store.EntriesByEmployee(c.Request.Context(), employeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	roster, err := shift.ProjectRoster(entries, month)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, roster)
}

// Overtime aggregates one employee's approved entries for a month.
func (h *Handler) Overtime(c *gin.Context) {
	employeeID := c.Query("employee_id")
	month := c.Query("month")
	if employeeID == "" || month == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee_id and month required"})
		return
	}
	if _, err := time.Parse(shift.MonthLayout, month); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return
	}
	entries, err := h.store.EntriesByEmployee(c.Request.Context(), employeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	summary := shift.CalculateOT(entries, month, h.baseHourlyRate)
	c.JSON(http.StatusOK, gin.H{"month": month, "summary": summary})
}

func (h *Handler) publishDecision(outcome, entryID string) {
	if h.q == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := h.q.Publish(ctx, queue.Message{Type: outcome, Body: []byte(entryID)}); err != nil {
		log.Printf("queue publish failed: %v", err)
	}
}

// statusFor maps domain sentinels onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, shift.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shift.ErrDuplicateID),
		errors.Is(err, shift.ErrDateAlreadyUsed):
		return http.StatusConflict
	case errors.Is(err, shift.ErrMissingSection),
		errors.Is(err, shift.ErrMissingRemark),
		errors.Is(err, shift.ErrJustificationTooShort),
		errors.Is(err, shift.ErrInvalidDate),
		errors.Is(err, shift.ErrInvalidDepartment),
		errors.Is(err, shift.ErrInvalidSection),
		errors.Is(err, shift.ErrInvalidShiftType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
