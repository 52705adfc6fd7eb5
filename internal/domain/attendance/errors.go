package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in/out errors
	ErrAlreadyCheckedIn = errors.New("employee is already at work")
	ErrNotCheckedIn     = errors.New("employee is not at work")
	ErrStateConflict    = errors.New("attendance state changed concurrently, retry")

	// Comment errors
	ErrCommentNotAllowed = errors.New("comments are only allowed on your own active record")

	// General errors
	ErrLogNotFound      = errors.New("attendance log not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrUnauthorized     = errors.New("unauthorized to access this attendance record")
	ErrMarkNotAllowed   = errors.New("not allowed to mark attendance for another employee")
	ErrInvalidIdentity  = errors.New("identity claims are missing or invalid")
)
