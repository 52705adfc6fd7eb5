package user

import (
	"context"

	"github.com/davomat/davomat-backend-go/internal/domain/attendance"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmployeeCode(ctx context.Context, code string) (User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]User, error)
	CountByDepartment(ctx context.Context, departmentID string) (int64, error)
	Create(ctx context.Context, newUser User) (User, error)
	Update(ctx context.Context, req UpdateUserRequest) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	Delete(ctx context.Context, id string) error

	// UpdateAttendanceState writes next only if the stored status still equals
	// expected. It returns ErrStateUpdateNotApplied otherwise.
	UpdateAttendanceState(ctx context.Context, id string, expected attendance.Status, next attendance.State) error

	// SetLastComment updates the comment shown on the user's active record.
	SetLastComment(ctx context.Context, id string, logID string, comment string) error

	// ResetAttendance returns every user to the absent state and clears the
	// day's markers. It reports how many users were touched.
	ResetAttendance(ctx context.Context) (int64, error)
}
