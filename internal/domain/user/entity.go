package user

import (
	"time"

	"github.com/davomat/davomat-backend-go/internal/domain/attendance"
)

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access
	RoleViewer   Role = "viewer"   // Read-only dashboards, may comment on own record
	RolePost     Role = "post"     // Gatehouse: marks entry/exit for anyone
	RoleEmployee Role = "employee" // Marks own attendance
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleViewer, RolePost, RoleEmployee:
		return true
	}
	return false
}

// User is an account and, at the same time, an employee whose attendance is
// tracked. The attendance fields hold today's state only.
type User struct {
	ID           string
	Username     string
	PasswordHash *string
	FullName     string
	Position     string
	EmployeeCode string
	DepartmentID *string
	Level        *int
	Role         Role
	PhotoURL     *string

	AttendanceStatus string
	FirstCheckInTime *time.Time
	LastCheckInTime  *time.Time
	LastCheckOutTime *time.Time
	LastComment      *string
	LastLogID        *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	DepartmentName *string
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TracksAttendance is false for gatehouse accounts, which only record
// other people's attendance.
func (u *User) TracksAttendance() bool {
	return u.Role != RolePost
}

// Record returns the attendance record held on the user.
func (u *User) Record() attendance.Record {
	return attendance.Record{
		EmployeeID:       u.ID,
		FirstCheckInTime: u.FirstCheckInTime,
		LastCheckInTime:  u.LastCheckInTime,
		LastCheckOutTime: u.LastCheckOutTime,
		LastComment:      u.LastComment,
		Status:           u.AttendanceStatus,
	}
}

// State returns the mutable attendance part of the user.
func (u *User) State() attendance.State {
	status, _ := attendance.NormalizeStatus(u.AttendanceStatus)
	return attendance.State{
		Status:           status,
		FirstCheckInTime: u.FirstCheckInTime,
		LastCheckInTime:  u.LastCheckInTime,
		LastCheckOutTime: u.LastCheckOutTime,
		LastComment:      u.LastComment,
		LastLogID:        u.LastLogID,
	}
}

// ApplyState copies s onto the user.
func (u *User) ApplyState(s attendance.State) {
	u.AttendanceStatus = string(s.Status)
	u.FirstCheckInTime = s.FirstCheckInTime
	u.LastCheckInTime = s.LastCheckInTime
	u.LastCheckOutTime = s.LastCheckOutTime
	u.LastComment = s.LastComment
	u.LastLogID = s.LastLogID
}

// EmployeeView pairs the user's identity with the derived view.
func (u *User) EmployeeView(view attendance.View) attendance.EmployeeView {
	return attendance.EmployeeView{
		ID:             u.ID,
		EmployeeCode:   u.EmployeeCode,
		FullName:       u.FullName,
		Username:       u.Username,
		Position:       u.Position,
		DepartmentID:   u.DepartmentID,
		DepartmentName: u.DepartmentName,
		Level:          u.Level,
		LastLogID:      u.LastLogID,
		View:           view,
	}
}
