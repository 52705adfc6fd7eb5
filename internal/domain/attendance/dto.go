package attendance

import (
	"errors"
	"strings"
	"time"

	"github.com/davomat/davomat-backend-go/internal/pkg/validator"
)

// ========================================
// MARK DTOs
// ========================================

// MarkRequest checks an employee in or out. An empty EmployeeID means the
// caller marks themselves.
type MarkRequest struct {
	EmployeeID string  `json:"employee_id"`
	Comment    *string `json:"comment,omitempty" validate:"omitempty,max=500"`
}

func (r *MarkRequest) Validate() error {
	return validator.Struct(r)
}

// ScanRequest is a gatehouse badge scan. The direction toggles on the
// employee's current status.
type ScanRequest struct {
	EmployeeCode string  `json:"employee_code" validate:"required,employee_code"`
	Comment      *string `json:"comment,omitempty" validate:"omitempty,max=500"`
}

func (r *ScanRequest) Validate() error {
	r.EmployeeCode = strings.TrimSpace(r.EmployeeCode)
	return validator.Struct(r)
}

// SetTimeRequest is an administrator's manual entry or exit for an employee.
// Time is an optional "HH:MM" on the current local day; empty means now.
type SetTimeRequest struct {
	EmployeeID string    `json:"-"`
	Type       Direction `json:"type"`
	Time       *string   `json:"time,omitempty"`
}

func (r *SetTimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !r.Type.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: entry, exit",
		})
	}

	if r.Time != nil && *r.Time != "" && !validator.IsValidClock(*r.Time) {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CommentRequest attaches a comment to an event.
type CommentRequest struct {
	LogID   string `json:"-"`
	Comment string `json:"comment" validate:"max=500"`
}

func (r *CommentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LogID) {
		errs = append(errs, validator.ValidationError{
			Field:   "log_id",
			Message: "log_id is required",
		})
	}

	if err := validator.Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		errs = append(errs, fieldErrs...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// LOG DTOs
// ========================================

type LogFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Date       *string `json:"date,omitempty"` // YYYY-MM-DD, local to the configured timezone
	Direction  *string `json:"direction,omitempty"`

	// Resolved from Date in the operational timezone
	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *LogFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Date != nil && *f.Date != "" {
		if _, valid := validator.IsValidDate(*f.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Direction != nil && !Direction(*f.Direction).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "direction",
			Message: "direction must be one of: entry, exit",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LogResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Direction    string  `json:"direction"`
	Source       string  `json:"source"`
	RecordedBy   string  `json:"recorded_by"`
	Comment      *string `json:"comment,omitempty"`
	OccurredAt   string  `json:"occurred_at"`
	LocalTime    string  `json:"local_time"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type ListLogResponse struct {
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
	Showing    string        `json:"showing"`
	Logs       []LogResponse `json:"logs"`
}

// ========================================
// BOARD DTOs
// ========================================

type BoardResponse struct {
	Date      string         `json:"date"`
	Stats     StatsSummary   `json:"stats"`
	Employees []EmployeeView `json:"employees"`
}

// RawRecord is a record as received from outside the store, with timestamps
// still in string form.
type RawRecord struct {
	EmployeeID       string  `json:"employee_id"`
	FirstCheckInTime string  `json:"first_check_in_time"`
	LastCheckInTime  string  `json:"last_check_in_time"`
	LastCheckOutTime string  `json:"last_check_out_time"`
	LastComment      *string `json:"last_comment"`
	Status           string  `json:"status"`
}

// Record converts r, treating malformed timestamps as absent.
func (r RawRecord) Record() Record {
	return Record{
		EmployeeID:       r.EmployeeID,
		FirstCheckInTime: ParseInstant(r.FirstCheckInTime),
		LastCheckInTime:  ParseInstant(r.LastCheckInTime),
		LastCheckOutTime: ParseInstant(r.LastCheckOutTime),
		LastComment:      r.LastComment,
		Status:           r.Status,
	}
}

type DeriveRequest struct {
	Records []RawRecord `json:"records"`
}

func (r *DeriveRequest) Validate() error {
	if len(r.Records) > 5000 {
		return validator.ValidationErrors{{
			Field:   "records",
			Message: "records must not exceed 5000 items",
		}}
	}
	return nil
}

type DeriveResponse struct {
	Views []View       `json:"views"`
	Stats StatsSummary `json:"stats"`
}
