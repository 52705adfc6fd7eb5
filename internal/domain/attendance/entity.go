package attendance

import (
	"time"
)

// Status is the stored attendance state of an employee for the current operational day.
type Status string

const (
	StatusWorking Status = "ishda"      // checked in, not checked out
	StatusOutside Status = "tashqarida" // checked out after an earlier check-in
	StatusAbsent  Status = "kelmagan"   // no check-in yet today
)

// IsValid reports whether s is one of the three steady states.
func (s Status) IsValid() bool {
	switch s {
	case StatusWorking, StatusOutside, StatusAbsent:
		return true
	}
	return false
}

// Record is the raw per-employee, per-day attendance state as kept by the store.
type Record struct {
	EmployeeID       string
	FirstCheckInTime *time.Time
	LastCheckInTime  *time.Time
	LastCheckOutTime *time.Time
	LastComment      *string
	Status           string
}

// Direction of a single gate event.
type Direction string

const (
	DirectionEntry Direction = "entry"
	DirectionExit  Direction = "exit"
)

func (d Direction) IsValid() bool {
	return d == DirectionEntry || d == DirectionExit
}

// Source identifies where an event was recorded.
type Source string

const (
	SourceSelf  Source = "self"  // employee marked their own attendance
	SourcePost  Source = "post"  // gatehouse scan
	SourceAdmin Source = "admin" // manual correction by an administrator
)

// Log is one entry/exit event. Logs are append-only apart from the comment.
type Log struct {
	ID         string
	EmployeeID string
	Direction  Direction
	Source     Source
	RecordedBy string
	Comment    *string
	OccurredAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}

// State is the mutable attendance part of an employee document.
type State struct {
	Status           Status
	FirstCheckInTime *time.Time
	LastCheckInTime  *time.Time
	LastCheckOutTime *time.Time
	LastComment      *string
	LastLogID        *string
}
