package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Board returns today's derived views for every employee, sorted by level
	// and filtered, with statistics over the whole day
	Board(ctx context.Context, filter BoardFilter) (BoardResponse, error)

	// GetEmployeeView returns the derived view of a single employee
	GetEmployeeView(ctx context.Context, employeeID string) (EmployeeView, error)

	// CheckIn marks an employee as working
	CheckIn(ctx context.Context, req MarkRequest) (EmployeeView, error)

	// CheckOut marks an employee as outside
	CheckOut(ctx context.Context, req MarkRequest) (EmployeeView, error)

	// Scan toggles entry/exit for a badge scanned at the gatehouse
	Scan(ctx context.Context, req ScanRequest) (EmployeeView, error)

	// SetTime records a manual entry or exit (administrator)
	SetTime(ctx context.Context, req SetTimeRequest) (EmployeeView, error)

	// Comment attaches a comment to an event
	Comment(ctx context.Context, req CommentRequest) (LogResponse, error)

	// ListLogs retrieves entry/exit history
	ListLogs(ctx context.Context, filter LogFilter) (ListLogResponse, error)

	// Derive computes views for records supplied by the caller
	Derive(ctx context.Context, req DeriveRequest) (DeriveResponse, error)

	// Export renders the filtered board as an XLSX workbook
	Export(ctx context.Context, filter BoardFilter) ([]byte, error)

	// ResetDay returns every employee to the absent state for a new day
	ResetDay(ctx context.Context) (int64, error)
}
