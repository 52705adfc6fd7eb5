package mongodb_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/davomat/davomat-backend-go/internal/domain/attendance"
	"github.com/davomat/davomat-backend-go/internal/domain/department"
	"github.com/davomat/davomat-backend-go/internal/domain/user"
	"github.com/davomat/davomat-backend-go/internal/pkg/database"
	"github.com/davomat/davomat-backend-go/internal/repository/mongodb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// newTestDB connects to TEST_MONGO_URI and hands out a throwaway database
// that is dropped when the test ends.
func newTestDB(t *testing.T) *database.MongoDB {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	db, err := database.NewMongoDB(uri, fmt.Sprintf("davomat_test_%d", time.Now().UnixNano()))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, mongodb.EnsureIndexes(ctx, db))

	t.Cleanup(func() {
		_ = db.Database.Drop(ctx)
		_ = db.Close(ctx)
	})
	return db
}

func createUser(t *testing.T, repo user.UserRepository, username, code string, level *int) user.User {
	t.Helper()
	u, err := repo.Create(context.Background(), user.User{
		Username:         username,
		FullName:         "Employee " + username,
		EmployeeCode:     code,
		Level:            level,
		Role:             user.RoleEmployee,
		AttendanceStatus: string(attendance.StatusAbsent),
	})
	require.NoError(t, err)
	return u
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := mongodb.NewUserRepository(db)
	depts := mongodb.NewDepartmentRepository(db)

	dept, err := depts.Create(ctx, department.Department{Name: "IT"})
	require.NoError(t, err)

	one, zero := 1, 0
	a := createUser(t, users, "second", "E-2", &one)
	createUser(t, users, "unranked", "E-3", nil)
	createUser(t, users, "first", "E-1", &zero)

	require.NoError(t, users.Update(ctx, user.UpdateUserRequest{ID: a.ID, DepartmentID: &dept.ID}))

	list, err := users.List(ctx, user.ListUsersFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Username)
	assert.Equal(t, "second", list[1].Username)
	assert.Equal(t, "unranked", list[2].Username)
	require.NotNil(t, list[1].DepartmentName)
	assert.Equal(t, "IT", *list[1].DepartmentName)

	_, err = users.Create(ctx, user.User{Username: "first", EmployeeCode: "E-9", Role: user.RoleEmployee})
	assert.ErrorIs(t, err, user.ErrUsernameExists)

	_, err = users.Create(ctx, user.User{Username: "other", EmployeeCode: "E-1", Role: user.RoleEmployee})
	assert.ErrorIs(t, err, user.ErrEmployeeCodeExists)

	count, err := users.CountByDepartment(ctx, dept.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := depts.GetByID(ctx, dept.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.EmployeeCount)

	search := "UNRANK"
	list, err = users.List(ctx, user.ListUsersFilter{Search: &search})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUserRepository_UpdateAttendanceState(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := mongodb.NewUserRepository(db)
	u := createUser(t, users, "aziz", "A-001", nil)

	at := time.Date(2025, 3, 14, 4, 0, 0, 0, time.UTC)
	next := attendance.State{Status: attendance.StatusWorking, FirstCheckInTime: &at, LastCheckInTime: &at}

	require.NoError(t, users.UpdateAttendanceState(ctx, u.ID, attendance.StatusAbsent, next))
	assert.ErrorIs(t, users.UpdateAttendanceState(ctx, u.ID, attendance.StatusAbsent, next), user.ErrStateUpdateNotApplied)

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ishda", got.AttendanceStatus)
	require.NotNil(t, got.FirstCheckInTime)
	assert.True(t, at.Equal(*got.FirstCheckInTime))

	n, err := users.ResetAttendance(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err = users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "kelmagan", got.AttendanceStatus)
	assert.Nil(t, got.FirstCheckInTime)
}

func TestUserRepository_MissingStatusMatchesEmpty(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := mongodb.NewUserRepository(db)

	_, err := db.Collection("users").InsertOne(ctx, bson.M{
		"_id":           "legacy",
		"username":      "legacy",
		"employee_code": "L-1",
		"role":          "employee",
	})
	require.NoError(t, err)

	at := time.Date(2025, 3, 14, 4, 0, 0, 0, time.UTC)
	err = users.UpdateAttendanceState(ctx, "legacy", "", attendance.State{Status: attendance.StatusWorking, LastCheckInTime: &at})
	assert.NoError(t, err)
}

func TestAttendanceLogRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := mongodb.NewUserRepository(db)
	logs := mongodb.NewAttendanceLogRepository(db)
	u := createUser(t, users, "aziz", "A-001", nil)

	base := time.Date(2025, 3, 14, 4, 0, 0, 0, time.UTC)
	first, err := logs.Create(ctx, attendance.Log{
		EmployeeID: u.ID, Direction: attendance.DirectionEntry, Source: attendance.SourceSelf,
		RecordedBy: u.ID, OccurredAt: base,
	})
	require.NoError(t, err)
	_, err = logs.Create(ctx, attendance.Log{
		EmployeeID: u.ID, Direction: attendance.DirectionExit, Source: attendance.SourcePost,
		RecordedBy: u.ID, OccurredAt: base.Add(time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, logs.UpdateComment(ctx, first.ID, "late bus"))
	got, err := logs.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Comment)
	assert.Equal(t, "late bus", *got.Comment)
	require.NotNil(t, got.EmployeeName)
	assert.Equal(t, "Employee aziz", *got.EmployeeName)

	_, err = logs.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, attendance.ErrLogNotFound)

	list, total, err := logs.List(ctx, attendance.LogFilter{EmployeeID: &u.ID, Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 1)
	assert.Equal(t, attendance.DirectionExit, list[0].Direction)

	exit := "exit"
	_, total, err = logs.List(ctx, attendance.LogFilter{Direction: &exit, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestDepartmentRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	depts := mongodb.NewDepartmentRepository(db)

	d, err := depts.Create(ctx, department.Department{Name: "IT"})
	require.NoError(t, err)

	_, err = depts.Create(ctx, department.Department{Name: "IT"})
	assert.ErrorIs(t, err, department.ErrDepartmentNameExists)

	name := "Engineering"
	require.NoError(t, depts.Update(ctx, department.UpdateDepartmentRequest{ID: d.ID, Name: &name}))

	list, err := depts.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Engineering", list[0].Name)

	require.NoError(t, depts.Delete(ctx, d.ID))
	assert.ErrorIs(t, depts.Delete(ctx, d.ID), department.ErrDepartmentNotFound)
}

func TestAttendanceLogRepository_KeepsReservedID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := mongodb.NewUserRepository(db)
	logs := mongodb.NewAttendanceLogRepository(db)
	u := createUser(t, users, "aziz", "A-001", nil)

	id := uuid.Must(uuid.NewV7()).String()
	created, err := logs.Create(ctx, attendance.Log{
		ID: id, EmployeeID: u.ID, Direction: attendance.DirectionEntry, Source: attendance.SourcePost,
		RecordedBy: u.ID, OccurredAt: time.Date(2025, 3, 14, 4, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)

	got, err := logs.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, attendance.DirectionEntry, got.Direction)
}
