package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/davomat/davomat-backend-go/internal/domain/attendance"
	"github.com/davomat/davomat-backend-go/internal/domain/auth"
	"github.com/davomat/davomat-backend-go/internal/domain/user"
	"github.com/davomat/davomat-backend-go/internal/pkg/database"
	"github.com/davomat/davomat-backend-go/internal/pkg/sse"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	tx      database.Transactor
	users   user.UserRepository
	logs    attendance.LogRepository
	hub     *sse.Hub
	workday attendance.Workday
	now     func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	users user.UserRepository,
	logs attendance.LogRepository,
	hub *sse.Hub,
	workday attendance.Workday,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:      tx,
		users:   users,
		logs:    logs,
		hub:     hub,
		workday: workday,
		now:     time.Now,
	}
}

func (s *AttendanceServiceImpl) location() *time.Location {
	if s.workday.Location == nil {
		return time.UTC
	}
	return s.workday.Location
}

// derive builds the view of u at the current instant. Statuses outside the
// three known states are shown as absent and logged.
func (s *AttendanceServiceImpl) derive(u user.User, ref time.Time) attendance.EmployeeView {
	if _, ok := attendance.NormalizeStatus(u.AttendanceStatus); !ok {
		slog.Warn("Unrecognized attendance status, showing as absent",
			"employee_id", u.ID,
			"status", u.AttendanceStatus)
	}
	return u.EmployeeView(attendance.DeriveView(u.Record(), ref, s.workday))
}

func (s *AttendanceServiceImpl) publish(event string, data interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(attendance.MonitorTopic, sse.Event{Event: event, Data: data})
}

func (s *AttendanceServiceImpl) getEmployee(ctx context.Context, id string) (user.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, attendance.ErrEmployeeNotFound
		}
		return user.User{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return u, nil
}

// Board implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Board(ctx context.Context, filter attendance.BoardFilter) (attendance.BoardResponse, error) {
	users, err := s.users.List(ctx, user.ListUsersFilter{})
	if err != nil {
		return attendance.BoardResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	ref := s.now()
	rows := make([]attendance.EmployeeView, 0, len(users))
	for _, u := range users {
		if !u.TracksAttendance() {
			continue
		}
		rows = append(rows, s.derive(u, ref))
	}

	attendance.SortByLevel(rows, func(r attendance.EmployeeView) *int { return r.Level })

	return attendance.BoardResponse{
		Date:      ref.In(s.location()).Format("2006-01-02"),
		Stats:     attendance.AggregateStats(attendance.Views(rows)),
		Employees: filter.Apply(rows),
	}, nil
}

// GetEmployeeView implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetEmployeeView(ctx context.Context, employeeID string) (attendance.EmployeeView, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return attendance.EmployeeView{}, attendance.ErrInvalidIdentity
	}

	if employeeID != identity.UserID && !identity.Can(user.PermissionAttendanceViewAll) {
		return attendance.EmployeeView{}, attendance.ErrUnauthorized
	}

	u, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return attendance.EmployeeView{}, err
	}

	return s.derive(u, s.now()), nil
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.MarkRequest) (attendance.EmployeeView, error) {
	return s.mark(ctx, req, attendance.DirectionEntry)
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.MarkRequest) (attendance.EmployeeView, error) {
	return s.mark(ctx, req, attendance.DirectionExit)
}

func (s *AttendanceServiceImpl) mark(ctx context.Context, req attendance.MarkRequest, dir attendance.Direction) (attendance.EmployeeView, error) {
	if err := req.Validate(); err != nil {
		return attendance.EmployeeView{}, err
	}

	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return attendance.EmployeeView{}, attendance.ErrInvalidIdentity
	}

	targetID := req.EmployeeID
	if targetID == "" {
		targetID = identity.UserID
	}

	source := attendance.SourceSelf
	if targetID == identity.UserID {
		if !identity.Can(user.PermissionAttendanceMarkOwn) {
			return attendance.EmployeeView{}, attendance.ErrMarkNotAllowed
		}
	} else {
		if !identity.Can(user.PermissionAttendanceMarkAny) {
			return attendance.EmployeeView{}, attendance.ErrMarkNotAllowed
		}
		source = attendance.SourceAdmin
		if identity.Role == user.RolePost {
			source = attendance.SourcePost
		}
	}

	return s.record(ctx, targetID, func(user.User) attendance.Direction { return dir }, event{
		source:     source,
		recordedBy: identity.UserID,
		comment:    req.Comment,
		at:         s.now(),
		strict:     true,
	})
}

// Scan implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Scan(ctx context.Context, req attendance.ScanRequest) (attendance.EmployeeView, error) {
	if err := req.Validate(); err != nil {
		return attendance.EmployeeView{}, err
	}

	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return attendance.EmployeeView{}, attendance.ErrInvalidIdentity
	}
	if !identity.Can(user.PermissionAttendanceMarkAny) {
		return attendance.EmployeeView{}, attendance.ErrMarkNotAllowed
	}

	u, err := s.users.GetByEmployeeCode(ctx, req.EmployeeCode)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return attendance.EmployeeView{}, attendance.ErrEmployeeNotFound
		}
		return attendance.EmployeeView{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	return s.record(ctx, u.ID, func(current user.User) attendance.Direction {
		return attendance.NextDirection(current.AttendanceStatus)
	}, event{
		source:     attendance.SourcePost,
		recordedBy: identity.UserID,
		comment:    req.Comment,
		at:         s.now(),
		strict:     true,
	})
}

// SetTime implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) SetTime(ctx context.Context, req attendance.SetTimeRequest) (attendance.EmployeeView, error) {
	if err := req.Validate(); err != nil {
		return attendance.EmployeeView{}, err
	}

	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return attendance.EmployeeView{}, attendance.ErrInvalidIdentity
	}
	if !identity.Can(user.PermissionAttendanceSetTime) {
		return attendance.EmployeeView{}, attendance.ErrUnauthorized
	}

	at := s.now()
	if req.Time != nil && *req.Time != "" {
		at, err = s.onToday(*req.Time)
		if err != nil {
			return attendance.EmployeeView{}, err
		}
	}

	return s.record(ctx, req.EmployeeID, func(user.User) attendance.Direction { return req.Type }, event{
		source:     attendance.SourceAdmin,
		recordedBy: identity.UserID,
		at:         at,
	})
}

// onToday places an "HH:MM" clock time on the current local day.
func (s *AttendanceServiceImpl) onToday(clock string) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse time: %w", err)
	}
	today := s.now().In(s.location())
	return time.Date(today.Year(), today.Month(), today.Day(), parsed.Hour(), parsed.Minute(), 0, 0, s.location()), nil
}

type event struct {
	source     attendance.Source
	recordedBy string
	comment    *string
	at         time.Time
	// strict rejects an entry while working and an exit while not working.
	strict bool
}

// record moves the employee's state and appends the matching log. The state
// write only succeeds if nobody changed the status since it was read, and the
// log is inserted after it so a losing writer leaves no event behind.
func (s *AttendanceServiceImpl) record(
	ctx context.Context,
	employeeID string,
	direction func(user.User) attendance.Direction,
	ev event,
) (attendance.EmployeeView, error) {
	var updated user.User
	var dir attendance.Direction

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		u, err := s.getEmployee(ctx, employeeID)
		if err != nil {
			return err
		}

		dir = direction(u)
		prev := u.State()

		var next attendance.State
		if ev.strict {
			next, err = attendance.ApplyEvent(prev, dir, ev.at)
			if err != nil {
				return err
			}
		} else {
			next = attendance.ApplyCorrection(prev, dir, ev.at)
		}

		logID, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate log id: %w", err)
		}
		next.LastLogID = ptrTo(logID.String())
		next.LastComment = ev.comment

		if err := s.users.UpdateAttendanceState(ctx, u.ID, attendance.Status(u.AttendanceStatus), next); err != nil {
			if errors.Is(err, user.ErrStateUpdateNotApplied) {
				return attendance.ErrStateConflict
			}
			return fmt.Errorf("failed to update attendance state: %w", err)
		}

		if _, err := s.logs.Create(ctx, attendance.Log{
			ID:         logID.String(),
			EmployeeID: u.ID,
			Direction:  dir,
			Source:     ev.source,
			RecordedBy: ev.recordedBy,
			Comment:    ev.comment,
			OccurredAt: ev.at.UTC(),
		}); err != nil {
			s.revertState(ctx, u.ID, next.Status, prev)
			return fmt.Errorf("failed to create attendance log: %w", err)
		}

		u.ApplyState(next)
		updated = u
		return nil
	})
	if err != nil {
		return attendance.EmployeeView{}, err
	}

	view := s.derive(updated, s.now())
	slog.Info("Attendance recorded",
		"employee_id", updated.ID,
		"direction", dir,
		"source", ev.source,
		"recorded_by", ev.recordedBy)
	s.publish(dir.EventName(), view)

	return view, nil
}

// revertState puts back the state a failed log insert left orphaned. Inside a
// transaction the rollback restores it instead.
func (s *AttendanceServiceImpl) revertState(ctx context.Context, employeeID string, current attendance.Status, prev attendance.State) {
	if err := s.users.UpdateAttendanceState(ctx, employeeID, current, prev); err != nil {
		slog.Warn("Failed to revert attendance state", "employee_id", employeeID, "error", err)
	}
}

func ptrTo(v string) *string { return &v }

// Comment implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Comment(ctx context.Context, req attendance.CommentRequest) (attendance.LogResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.LogResponse{}, err
	}

	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return attendance.LogResponse{}, attendance.ErrInvalidIdentity
	}

	var updated attendance.Log
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		log, err := s.logs.GetByID(ctx, req.LogID)
		if err != nil {
			return err
		}

		owner, err := s.getEmployee(ctx, log.EmployeeID)
		if err != nil {
			return err
		}
		active := owner.LastLogID != nil && *owner.LastLogID == log.ID

		if !identity.Can(user.PermissionAttendanceCommentAny) {
			if !identity.Can(user.PermissionAttendanceCommentOwn) || owner.ID != identity.UserID || !active {
				return attendance.ErrCommentNotAllowed
			}
		}

		if err := s.logs.UpdateComment(ctx, log.ID, req.Comment); err != nil {
			return fmt.Errorf("failed to update comment: %w", err)
		}

		if active {
			if err := s.users.SetLastComment(ctx, owner.ID, log.ID, req.Comment); err != nil {
				if errors.Is(err, user.ErrStateUpdateNotApplied) {
					return attendance.ErrStateConflict
				}
				return fmt.Errorf("failed to update last comment: %w", err)
			}
		}

		comment := req.Comment
		log.Comment = &comment
		log.EmployeeName = &owner.FullName
		updated = log
		return nil
	})
	if err != nil {
		return attendance.LogResponse{}, err
	}

	resp := s.toLogResponse(updated)
	s.publish(attendance.EventComment, resp)
	return resp, nil
}

// ListLogs implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListLogs(ctx context.Context, filter attendance.LogFilter) (attendance.ListLogResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListLogResponse{}, err
	}

	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return attendance.ListLogResponse{}, attendance.ErrInvalidIdentity
	}

	if !identity.Can(user.PermissionAttendanceViewAll) {
		self := identity.UserID
		filter.EmployeeID = &self
	}

	if filter.Date != nil && *filter.Date != "" {
		day, err := time.ParseInLocation("2006-01-02", *filter.Date, s.location())
		if err != nil {
			return attendance.ListLogResponse{}, fmt.Errorf("failed to parse date: %w", err)
		}
		from, to := day.UTC(), day.AddDate(0, 0, 1).UTC()
		filter.From, filter.To = &from, &to
	}

	logs, total, err := s.logs.List(ctx, filter)
	if err != nil {
		return attendance.ListLogResponse{}, fmt.Errorf("failed to list attendance logs: %w", err)
	}

	responses := make([]attendance.LogResponse, 0, len(logs))
	for _, l := range logs {
		responses = append(responses, s.toLogResponse(l))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListLogResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Logs:       responses,
	}, nil
}

func (s *AttendanceServiceImpl) toLogResponse(l attendance.Log) attendance.LogResponse {
	occurred := l.OccurredAt
	return attendance.LogResponse{
		ID:           l.ID,
		EmployeeID:   l.EmployeeID,
		EmployeeName: l.EmployeeName,
		Direction:    string(l.Direction),
		Source:       string(l.Source),
		RecordedBy:   l.RecordedBy,
		Comment:      l.Comment,
		OccurredAt:   l.OccurredAt.UTC().Format(time.RFC3339),
		LocalTime:    attendance.FormatTimeOfDay(&occurred, s.location()),
		CreatedAt:    l.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    l.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Derive implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Derive(ctx context.Context, req attendance.DeriveRequest) (attendance.DeriveResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DeriveResponse{}, err
	}

	ref := s.now()
	views := make([]attendance.View, 0, len(req.Records))
	for _, raw := range req.Records {
		if _, ok := attendance.NormalizeStatus(raw.Status); !ok {
			slog.Warn("Unrecognized attendance status, showing as absent",
				"employee_id", raw.EmployeeID,
				"status", raw.Status)
		}
		views = append(views, attendance.DeriveView(raw.Record(), ref, s.workday))
	}

	return attendance.DeriveResponse{
		Views: views,
		Stats: attendance.AggregateStats(views),
	}, nil
}

// ResetDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ResetDay(ctx context.Context) (int64, error) {
	count, err := s.users.ResetAttendance(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to reset attendance: %w", err)
	}

	s.publish(attendance.EventReset, map[string]interface{}{
		"date":  s.now().In(s.location()).Format("2006-01-02"),
		"count": count,
	})
	return count, nil
}
