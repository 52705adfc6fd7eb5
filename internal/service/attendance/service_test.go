package attendance

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/davomat/davomat-backend-go/internal/domain/attendance"
	"github.com/davomat/davomat-backend-go/internal/domain/user"
	"github.com/davomat/davomat-backend-go/internal/mocks"
	"github.com/davomat/davomat-backend-go/internal/pkg/database"
	"github.com/davomat/davomat-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var tashkent = time.FixedZone("UZT", 5*60*60)

// 10:00 in Tashkent.
var testNow = time.Date(2025, 3, 14, 5, 0, 0, 0, time.UTC)

type fixture struct {
	svc   *AttendanceServiceImpl
	users *mocks.UserRepository
	logs  *mocks.LogRepository
	hub   *sse.Hub
}

func newFixture(t *testing.T) fixture {
	users := &mocks.UserRepository{}
	logs := &mocks.LogRepository{}
	hub := sse.NewHub()

	svc := NewAttendanceService(database.NoopTransactor{}, users, logs, hub, attendance.NewWorkday(tashkent)).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return testNow }

	t.Cleanup(func() {
		users.AssertExpectations(t)
		logs.AssertExpectations(t)
	})

	return fixture{svc: svc, users: users, logs: logs, hub: hub}
}

func local(hour, minute int) *time.Time {
	t := time.Date(2025, 3, 14, hour, minute, 0, 0, tashkent).UTC()
	return &t
}

func ptr[T any](v T) *T { return &v }

func as(role user.Role, id string) context.Context {
	return mocks.ContextWithIdentity(context.Background(), id, id, role)
}

func TestBoard(t *testing.T) {
	f := newFixture(t)

	f.users.On("List", mock.Anything, user.ListUsersFilter{}).Return([]user.User{
		{ID: "u1", FullName: "Unranked", Role: user.RoleEmployee, AttendanceStatus: "kelmagan"},
		{ID: "u2", FullName: "Late", Role: user.RoleEmployee, Level: ptr(2), AttendanceStatus: "ishda",
			FirstCheckInTime: local(9, 20), LastCheckInTime: local(9, 20)},
		{ID: "gate", FullName: "Gatehouse", Role: user.RolePost},
		{ID: "u3", FullName: "Boss", Role: user.RoleAdmin, Level: ptr(0), AttendanceStatus: "tashqarida",
			FirstCheckInTime: local(8, 50), LastCheckInTime: local(8, 50), LastCheckOutTime: local(9, 30)},
		{ID: "u4", FullName: "Weird", Role: user.RoleEmployee, AttendanceStatus: "sick"},
	}, nil)

	board, err := f.svc.Board(context.Background(), attendance.BoardFilter{})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-14", board.Date)
	require.Len(t, board.Employees, 4)
	assert.Equal(t, []string{"u3", "u2", "u1", "u4"}, []string{
		board.Employees[0].ID, board.Employees[1].ID, board.Employees[2].ID, board.Employees[3].ID,
	})

	boss := board.Employees[0]
	assert.Equal(t, attendance.StatusOutside, boss.Status)
	assert.Equal(t, "08:50", boss.EntryTime)
	assert.Equal(t, "09:30", boss.ExitTime)
	assert.False(t, boss.IsLate)

	late := board.Employees[1]
	assert.True(t, late.IsLate)
	assert.Equal(t, 20, late.LateMinutes)

	assert.Equal(t, attendance.StatusAbsent, board.Employees[3].Status)

	assert.Equal(t, 4, board.Stats.Total)
	assert.Equal(t, attendance.CategoryStat{Count: 1, Percentage: 25}, board.Stats.Working)
	assert.Equal(t, attendance.CategoryStat{Count: 1, Percentage: 25}, board.Stats.Outside)
	assert.Equal(t, attendance.CategoryStat{Count: 2, Percentage: 50}, board.Stats.Absent)
	assert.Equal(t, attendance.CategoryStat{Count: 1, Percentage: 25}, board.Stats.Late)
}

func TestBoard_FilterKeepsDayStats(t *testing.T) {
	f := newFixture(t)

	f.users.On("List", mock.Anything, user.ListUsersFilter{}).Return([]user.User{
		{ID: "u1", Role: user.RoleEmployee, AttendanceStatus: "ishda"},
		{ID: "u2", Role: user.RoleEmployee, AttendanceStatus: "kelmagan"},
	}, nil)

	board, err := f.svc.Board(context.Background(), attendance.BoardFilter{Status: "ishda"})
	require.NoError(t, err)

	require.Len(t, board.Employees, 1)
	assert.Equal(t, "u1", board.Employees[0].ID)
	assert.Equal(t, 2, board.Stats.Total)
}

func TestBoard_RepositoryError(t *testing.T) {
	f := newFixture(t)
	f.users.On("List", mock.Anything, user.ListUsersFilter{}).Return(nil, errors.New("connection refused"))

	_, err := f.svc.Board(context.Background(), attendance.BoardFilter{})
	assert.ErrorContains(t, err, "connection refused")
}

func TestGetEmployeeView(t *testing.T) {
	t.Run("self", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("GetByID", mock.Anything, "e1").Return(user.User{ID: "e1", AttendanceStatus: "ishda"}, nil)

		view, err := f.svc.GetEmployeeView(as(user.RoleEmployee, "e1"), "e1")
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusWorking, view.Status)
	})

	t.Run("other without permission", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.GetEmployeeView(as(user.RoleEmployee, "e1"), "e2")
		assert.ErrorIs(t, err, attendance.ErrUnauthorized)
	})

	t.Run("viewer sees others", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("GetByID", mock.Anything, "e2").Return(user.User{}, user.ErrUserNotFound)

		_, err := f.svc.GetEmployeeView(as(user.RoleViewer, "v1"), "e2")
		assert.ErrorIs(t, err, attendance.ErrEmployeeNotFound)
	})

	t.Run("no identity", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.GetEmployeeView(context.Background(), "e1")
		assert.ErrorIs(t, err, attendance.ErrInvalidIdentity)
	})
}

func TestCheckIn_Self(t *testing.T) {
	f := newFixture(t)
	events, unsubscribe := f.hub.Subscribe(attendance.MonitorTopic)
	defer unsubscribe()

	f.users.On("GetByID", mock.Anything, "e1").Return(user.User{
		ID: "e1", FullName: "Aziz", Role: user.RoleEmployee, AttendanceStatus: "kelmagan",
	}, nil)
	var reserved string
	f.users.On("UpdateAttendanceState", mock.Anything, "e1", attendance.StatusAbsent, mock.MatchedBy(func(s attendance.State) bool {
		return s.Status == attendance.StatusWorking &&
			s.FirstCheckInTime != nil && s.FirstCheckInTime.Equal(testNow) &&
			s.LastLogID != nil && *s.LastLogID != ""
	})).Run(func(args mock.Arguments) {
		reserved = *args.Get(3).(attendance.State).LastLogID
	}).Return(nil)
	// The log is only written once the state update has claimed its id.
	f.logs.On("Create", mock.Anything, mock.MatchedBy(func(l attendance.Log) bool {
		return reserved != "" && l.ID == reserved &&
			l.EmployeeID == "e1" &&
			l.Direction == attendance.DirectionEntry &&
			l.Source == attendance.SourceSelf &&
			l.RecordedBy == "e1" &&
			l.OccurredAt.Equal(testNow)
	})).Return(attendance.Log{ID: "ignored"}, nil)

	view, err := f.svc.CheckIn(as(user.RoleEmployee, "e1"), attendance.MarkRequest{})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusWorking, view.Status)
	assert.Equal(t, "10:00", view.EntryTime)
	assert.True(t, view.IsLate)
	assert.Equal(t, 60, view.LateMinutes)
	require.NotNil(t, view.LastLogID)
	assert.Equal(t, reserved, *view.LastLogID)

	select {
	case ev := <-events:
		assert.Equal(t, attendance.EventEntry, ev.Event)
	default:
		t.Fatal("expected monitor event")
	}
}

func TestCheckIn_AlreadyWorking(t *testing.T) {
	f := newFixture(t)
	f.users.On("GetByID", mock.Anything, "e1").Return(user.User{ID: "e1", AttendanceStatus: "ishda"}, nil)

	_, err := f.svc.CheckIn(as(user.RoleEmployee, "e1"), attendance.MarkRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	f.logs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckOut_NotWorking(t *testing.T) {
	f := newFixture(t)
	f.users.On("GetByID", mock.Anything, "e1").Return(user.User{ID: "e1", AttendanceStatus: "tashqarida"}, nil)

	_, err := f.svc.CheckOut(as(user.RoleEmployee, "e1"), attendance.MarkRequest{})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestMark_Permissions(t *testing.T) {
	t.Run("employee cannot mark others", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CheckIn(as(user.RoleEmployee, "e1"), attendance.MarkRequest{EmployeeID: "e2"})
		assert.ErrorIs(t, err, attendance.ErrMarkNotAllowed)
	})

	t.Run("viewer cannot mark self", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CheckIn(as(user.RoleViewer, "v1"), attendance.MarkRequest{})
		assert.ErrorIs(t, err, attendance.ErrMarkNotAllowed)
	})

	t.Run("post marks others as post", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("GetByID", mock.Anything, "e2").Return(user.User{ID: "e2", AttendanceStatus: "ishda"}, nil)
		f.logs.On("Create", mock.Anything, mock.MatchedBy(func(l attendance.Log) bool {
			return l.Source == attendance.SourcePost && l.Direction == attendance.DirectionExit && l.RecordedBy == "gate"
		})).Return(attendance.Log{ID: "log-2"}, nil)
		f.users.On("UpdateAttendanceState", mock.Anything, "e2", attendance.StatusWorking, mock.Anything).Return(nil)

		view, err := f.svc.CheckOut(as(user.RolePost, "gate"), attendance.MarkRequest{EmployeeID: "e2"})
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusOutside, view.Status)
		assert.Equal(t, "10:00", view.ExitTime)
	})
}

func TestMark_StateConflict(t *testing.T) {
	f := newFixture(t)
	f.users.On("GetByID", mock.Anything, "e1").Return(user.User{ID: "e1", AttendanceStatus: "kelmagan"}, nil)
	f.users.On("UpdateAttendanceState", mock.Anything, "e1", attendance.StatusAbsent, mock.Anything).
		Return(user.ErrStateUpdateNotApplied)

	_, err := f.svc.CheckIn(as(user.RoleEmployee, "e1"), attendance.MarkRequest{})
	assert.ErrorIs(t, err, attendance.ErrStateConflict)
	f.logs.AssertNumberOfCalls(t, "Create", 0)
}

func TestMark_LogFailureRevertsState(t *testing.T) {
	f := newFixture(t)
	events, unsubscribe := f.hub.Subscribe(attendance.MonitorTopic)
	defer unsubscribe()

	f.users.On("GetByID", mock.Anything, "e1").Return(user.User{ID: "e1", AttendanceStatus: "kelmagan"}, nil)
	f.users.On("UpdateAttendanceState", mock.Anything, "e1", attendance.StatusAbsent, mock.MatchedBy(func(s attendance.State) bool {
		return s.Status == attendance.StatusWorking
	})).Return(nil).Once()
	f.logs.On("Create", mock.Anything, mock.Anything).Return(attendance.Log{}, errors.New("insert failed"))
	f.users.On("UpdateAttendanceState", mock.Anything, "e1", attendance.StatusWorking, mock.MatchedBy(func(s attendance.State) bool {
		return s.Status == attendance.StatusAbsent && s.LastLogID == nil && s.FirstCheckInTime == nil
	})).Return(nil).Once()

	_, err := f.svc.CheckIn(as(user.RoleEmployee, "e1"), attendance.MarkRequest{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, attendance.ErrStateConflict)

	select {
	case ev := <-events:
		t.Fatalf("unexpected monitor event %q", ev.Event)
	default:
	}
}

func TestMark_CommentIsValidated(t *testing.T) {
	f := newFixture(t)
	long := string(bytes.Repeat([]byte("x"), 501))

	_, err := f.svc.CheckIn(as(user.RoleEmployee, "e1"), attendance.MarkRequest{Comment: &long})
	assert.Error(t, err)
}

func TestScan_Toggles(t *testing.T) {
	tests := []struct {
		status string
		want   attendance.Direction
	}{
		{"kelmagan", attendance.DirectionEntry},
		{"ishda", attendance.DirectionExit},
		{"tashqarida", attendance.DirectionEntry},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			f := newFixture(t)
			f.users.On("GetByEmployeeCode", mock.Anything, "A-001").Return(user.User{ID: "e1"}, nil)
			f.users.On("GetByID", mock.Anything, "e1").Return(user.User{ID: "e1", AttendanceStatus: tt.status}, nil)
			f.logs.On("Create", mock.Anything, mock.MatchedBy(func(l attendance.Log) bool {
				return l.Direction == tt.want && l.Source == attendance.SourcePost
			})).Return(attendance.Log{ID: "log-1"}, nil)
			f.users.On("UpdateAttendanceState", mock.Anything, "e1", attendance.Status(tt.status), mock.Anything).Return(nil)

			_, err := f.svc.Scan(as(user.RolePost, "gate"), attendance.ScanRequest{EmployeeCode: " A-001 "})
			require.NoError(t, err)
		})
	}
}

func TestScan_UnknownCode(t *testing.T) {
	f := newFixture(t)
	f.users.On("GetByEmployeeCode", mock.Anything, "NOPE").Return(user.User{}, user.ErrUserNotFound)

	_, err := f.svc.Scan(as(user.RolePost, "gate"), attendance.ScanRequest{EmployeeCode: "NOPE"})
	assert.ErrorIs(t, err, attendance.ErrEmployeeNotFound)
}

func TestScan_RequiresMarkAny(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Scan(as(user.RoleViewer, "v1"), attendance.ScanRequest{EmployeeCode: "A-001"})
	assert.ErrorIs(t, err, attendance.ErrMarkNotAllowed)
}

func TestSetTime(t *testing.T) {
	f := newFixture(t)
	first := local(9, 30)

	f.users.On("GetByID", mock.Anything, "e1").Return(user.User{
		ID: "e1", AttendanceStatus: "ishda", FirstCheckInTime: first, LastCheckInTime: first,
	}, nil)
	f.logs.On("Create", mock.Anything, mock.MatchedBy(func(l attendance.Log) bool {
		return l.Source == attendance.SourceAdmin && l.OccurredAt.Equal(*local(8, 55))
	})).Return(attendance.Log{ID: "log-9"}, nil)
	f.users.On("UpdateAttendanceState", mock.Anything, "e1", attendance.StatusWorking, mock.Anything).Return(nil)

	view, err := f.svc.SetTime(as(user.RoleAdmin, "admin"), attendance.SetTimeRequest{
		EmployeeID: "e1",
		Type:       attendance.DirectionEntry,
		Time:       ptr("08:55"),
	})
	require.NoError(t, err)

	assert.Equal(t, "08:55", view.EntryTime)
	assert.False(t, view.IsLate, "earlier manual entry replaces the late first check-in")
}

func TestSetTime_AdminOnly(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SetTime(as(user.RolePost, "gate"), attendance.SetTimeRequest{
		EmployeeID: "e1",
		Type:       attendance.DirectionExit,
	})
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)
}

func TestComment(t *testing.T) {
	owner := user.User{ID: "e1", FullName: "Aziz", LastLogID: ptr("log-2")}

	t.Run("own active log", func(t *testing.T) {
		f := newFixture(t)
		f.logs.On("GetByID", mock.Anything, "log-2").Return(attendance.Log{ID: "log-2", EmployeeID: "e1"}, nil)
		f.users.On("GetByID", mock.Anything, "e1").Return(owner, nil)
		f.logs.On("UpdateComment", mock.Anything, "log-2", "traffic").Return(nil)
		f.users.On("SetLastComment", mock.Anything, "e1", "log-2", "traffic").Return(nil)

		resp, err := f.svc.Comment(as(user.RoleEmployee, "e1"), attendance.CommentRequest{LogID: "log-2", Comment: "traffic"})
		require.NoError(t, err)
		assert.Equal(t, "traffic", *resp.Comment)
		assert.Equal(t, "Aziz", *resp.EmployeeName)
	})

	t.Run("own old log", func(t *testing.T) {
		f := newFixture(t)
		f.logs.On("GetByID", mock.Anything, "log-1").Return(attendance.Log{ID: "log-1", EmployeeID: "e1"}, nil)
		f.users.On("GetByID", mock.Anything, "e1").Return(owner, nil)

		_, err := f.svc.Comment(as(user.RoleViewer, "e1"), attendance.CommentRequest{LogID: "log-1", Comment: "late"})
		assert.ErrorIs(t, err, attendance.ErrCommentNotAllowed)
	})

	t.Run("someone else's log", func(t *testing.T) {
		f := newFixture(t)
		f.logs.On("GetByID", mock.Anything, "log-2").Return(attendance.Log{ID: "log-2", EmployeeID: "e1"}, nil)
		f.users.On("GetByID", mock.Anything, "e1").Return(owner, nil)

		_, err := f.svc.Comment(as(user.RoleEmployee, "e2"), attendance.CommentRequest{LogID: "log-2", Comment: "x"})
		assert.ErrorIs(t, err, attendance.ErrCommentNotAllowed)
	})

	t.Run("admin comments old log without touching state", func(t *testing.T) {
		f := newFixture(t)
		f.logs.On("GetByID", mock.Anything, "log-1").Return(attendance.Log{ID: "log-1", EmployeeID: "e1"}, nil)
		f.users.On("GetByID", mock.Anything, "e1").Return(owner, nil)
		f.logs.On("UpdateComment", mock.Anything, "log-1", "approved").Return(nil)

		_, err := f.svc.Comment(as(user.RoleAdmin, "admin"), attendance.CommentRequest{LogID: "log-1", Comment: "approved"})
		require.NoError(t, err)
		f.users.AssertNotCalled(t, "SetLastComment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing log", func(t *testing.T) {
		f := newFixture(t)
		f.logs.On("GetByID", mock.Anything, "nope").Return(attendance.Log{}, attendance.ErrLogNotFound)

		_, err := f.svc.Comment(as(user.RoleAdmin, "admin"), attendance.CommentRequest{LogID: "nope", Comment: "x"})
		assert.ErrorIs(t, err, attendance.ErrLogNotFound)
	})
}

func TestListLogs(t *testing.T) {
	t.Run("employee sees own logs only", func(t *testing.T) {
		f := newFixture(t)
		f.logs.On("List", mock.Anything, mock.MatchedBy(func(filter attendance.LogFilter) bool {
			return filter.EmployeeID != nil && *filter.EmployeeID == "e1" && filter.Page == 1 && filter.Limit == 20
		})).Return([]attendance.Log{
			{ID: "log-1", EmployeeID: "e1", Direction: attendance.DirectionEntry, OccurredAt: *local(9, 1)},
		}, int64(1), nil)

		resp, err := f.svc.ListLogs(as(user.RoleEmployee, "e1"), attendance.LogFilter{EmployeeID: ptr("e2")})
		require.NoError(t, err)

		assert.Equal(t, int64(1), resp.TotalCount)
		assert.Equal(t, 1, resp.TotalPages)
		assert.Equal(t, "1-1 of 1", resp.Showing)
		require.Len(t, resp.Logs, 1)
		assert.Equal(t, "09:01", resp.Logs[0].LocalTime)
	})

	t.Run("date resolves to local day", func(t *testing.T) {
		f := newFixture(t)
		f.logs.On("List", mock.Anything, mock.MatchedBy(func(filter attendance.LogFilter) bool {
			return filter.From != nil && filter.To != nil &&
				filter.From.Equal(time.Date(2025, 3, 13, 19, 0, 0, 0, time.UTC)) &&
				filter.To.Equal(time.Date(2025, 3, 14, 19, 0, 0, 0, time.UTC))
		})).Return(nil, int64(0), nil)

		resp, err := f.svc.ListLogs(as(user.RoleViewer, "v1"), attendance.LogFilter{Date: ptr("2025-03-14")})
		require.NoError(t, err)
		assert.Equal(t, "0 of 0", resp.Showing)
		assert.Empty(t, resp.Logs)
	})

	t.Run("invalid filter", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.ListLogs(as(user.RoleAdmin, "admin"), attendance.LogFilter{Limit: 500})
		assert.Error(t, err)
	})
}

func TestDerive(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Derive(context.Background(), attendance.DeriveRequest{Records: []attendance.RawRecord{
		{EmployeeID: "1", Status: "ishda", FirstCheckInTime: "2025-03-14T04:10:00Z", LastCheckInTime: "2025-03-14T04:10:00Z"},
		{EmployeeID: "2", Status: "ishda", FirstCheckInTime: "2025-03-14T09:06:00+05:00"},
		{EmployeeID: "3", Status: "tashqarida", FirstCheckInTime: "2025-03-14T03:59:00Z"},
		{EmployeeID: "4", Status: "kelmagan"},
		{EmployeeID: "5", Status: "", FirstCheckInTime: "garbage"},
	}})
	require.NoError(t, err)

	require.Len(t, resp.Views, 5)
	assert.Equal(t, "09:10", resp.Views[0].EntryTime)
	assert.Equal(t, 6, resp.Views[1].LateMinutes)
	assert.Equal(t, attendance.StatusAbsent, resp.Views[4].Status)

	assert.Equal(t, attendance.CategoryStat{Count: 2, Percentage: 40}, resp.Stats.Working)
	assert.Equal(t, attendance.CategoryStat{Count: 1, Percentage: 20}, resp.Stats.Outside)
	assert.Equal(t, attendance.CategoryStat{Count: 2, Percentage: 40}, resp.Stats.Absent)
	assert.Equal(t, attendance.CategoryStat{Count: 2, Percentage: 40}, resp.Stats.Late)
}

func TestResetDay(t *testing.T) {
	f := newFixture(t)
	events, unsubscribe := f.hub.Subscribe(attendance.MonitorTopic)
	defer unsubscribe()

	f.users.On("ResetAttendance", mock.Anything).Return(int64(12), nil)

	count, err := f.svc.ResetDay(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)

	ev := <-events
	assert.Equal(t, attendance.EventReset, ev.Event)
}

func TestExport(t *testing.T) {
	f := newFixture(t)
	f.users.On("List", mock.Anything, user.ListUsersFilter{}).Return([]user.User{
		{ID: "u1", EmployeeCode: "A-001", FullName: "Aziz", Role: user.RoleEmployee, AttendanceStatus: "ishda",
			FirstCheckInTime: local(9, 10), LastCheckInTime: local(9, 10), DepartmentName: ptr("IT")},
		{ID: "u2", EmployeeCode: "A-002", FullName: "Dilnoza", Role: user.RoleEmployee},
	}, nil)

	data, err := f.svc.Export(context.Background(), attendance.BoardFilter{})
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	rows, err := wb.GetRows(boardSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Employee code", rows[0][0])
	assert.Equal(t, []string{"A-001", "Aziz", "", "IT", "ishda", "09:10", "-", "yes", "10", "-"}, rows[1])
	assert.Equal(t, "kelmagan", rows[2][4])

	stats, err := wb.GetRows(statsSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Total", "2", "100"}, stats[2])
}
