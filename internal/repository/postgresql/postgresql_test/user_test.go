package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/davomat/davomat-backend-go/internal/domain/attendance"
	"github.com/davomat/davomat-backend-go/internal/domain/department"
	"github.com/davomat/davomat-backend-go/internal/domain/user"
	"github.com/davomat/davomat-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, repo user.UserRepository, username, code string, level *int) user.User {
	t.Helper()
	hash := "hash"
	u, err := repo.Create(context.Background(), user.User{
		Username:         username,
		PasswordHash:     &hash,
		FullName:         "Employee " + username,
		EmployeeCode:     code,
		Level:            level,
		Role:             user.RoleEmployee,
		AttendanceStatus: string(attendance.StatusAbsent),
	})
	require.NoError(t, err)
	return u
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	depts := postgresql.NewDepartmentRepository(db)
	repo := postgresql.NewUserRepository(db)

	dept, err := depts.Create(ctx, department.Department{Name: "IT"})
	require.NoError(t, err)

	hash := "hash"
	created, err := repo.Create(ctx, user.User{
		Username:         "aziz",
		PasswordHash:     &hash,
		FullName:         "Aziz Karimov",
		EmployeeCode:     "A-001",
		DepartmentID:     &dept.ID,
		Role:             user.RoleEmployee,
		AttendanceStatus: string(attendance.StatusAbsent),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	require.NotNil(t, created.DepartmentName)
	assert.Equal(t, "IT", *created.DepartmentName)

	byCode, err := repo.GetByEmployeeCode(ctx, "A-001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCode.ID)

	_, err = repo.GetByUsername(ctx, "missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = repo.Create(ctx, user.User{Username: "aziz", EmployeeCode: "A-002", Role: user.RoleEmployee, AttendanceStatus: "kelmagan"})
	assert.ErrorIs(t, err, user.ErrUsernameExists)

	_, err = repo.Create(ctx, user.User{Username: "other", EmployeeCode: "A-001", Role: user.RoleEmployee, AttendanceStatus: "kelmagan"})
	assert.ErrorIs(t, err, user.ErrEmployeeCodeExists)

	count, err := repo.CountByDepartment(ctx, dept.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_ListOrdersByLevel(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewUserRepository(db)

	two, one := 2, 1
	createTestUser(t, repo, "unranked", "U-1", nil)
	createTestUser(t, repo, "second", "U-2", &two)
	createTestUser(t, repo, "first", "U-3", &one)

	users, err := repo.List(context.Background(), user.ListUsersFilter{})
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "first", users[0].Username)
	assert.Equal(t, "second", users[1].Username)
	assert.Equal(t, "unranked", users[2].Username)

	search := "seco"
	users, err = repo.List(context.Background(), user.ListUsersFilter{Search: &search})
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestUserRepository_UpdateAttendanceState(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(db)
	u := createTestUser(t, repo, "aziz", "A-001", nil)

	at := time.Date(2025, 3, 14, 4, 0, 0, 0, time.UTC)
	next := attendance.State{Status: attendance.StatusWorking, FirstCheckInTime: &at, LastCheckInTime: &at}

	require.NoError(t, repo.UpdateAttendanceState(ctx, u.ID, attendance.StatusAbsent, next))

	err := repo.UpdateAttendanceState(ctx, u.ID, attendance.StatusAbsent, next)
	assert.True(t, errors.Is(err, user.ErrStateUpdateNotApplied))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ishda", got.AttendanceStatus)
	require.NotNil(t, got.FirstCheckInTime)
	assert.True(t, at.Equal(*got.FirstCheckInTime))

	n, err := repo.ResetAttendance(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "kelmagan", got.AttendanceStatus)
	assert.Nil(t, got.FirstCheckInTime)
	assert.Nil(t, got.LastLogID)
}

func TestUserRepository_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(db)
	u := createTestUser(t, repo, "aziz", "A-001", nil)

	name := "Aziz K."
	level := 0
	require.NoError(t, repo.Update(ctx, user.UpdateUserRequest{ID: u.ID, FullName: &name, Level: &level}))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aziz K.", got.FullName)
	require.NotNil(t, got.Level)
	assert.Equal(t, 0, *got.Level)

	require.NoError(t, repo.Update(ctx, user.UpdateUserRequest{ID: u.ID, ClearLevel: true}))
	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Level)

	require.NoError(t, repo.Delete(ctx, u.ID))
	assert.ErrorIs(t, repo.Delete(ctx, u.ID), user.ErrUserNotFound)
}
