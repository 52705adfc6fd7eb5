// Package mocks holds testify mocks of the repository and service ports.
package mocks

import (
	"context"

	"github.com/davomat/davomat-backend-go/internal/domain/attendance"
	"github.com/davomat/davomat-backend-go/internal/domain/department"
	"github.com/davomat/davomat-backend-go/internal/domain/user"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *UserRepository) GetByEmployeeCode(ctx context.Context, code string) (user.User, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *UserRepository) List(ctx context.Context, filter user.ListUsersFilter) ([]user.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *UserRepository) CountByDepartment(ctx context.Context, departmentID string) (int64, error) {
	args := m.Called(ctx, departmentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	args := m.Called(ctx, newUser)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, req user.UpdateUserRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *UserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return m.Called(ctx, userID, passwordHash).Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserRepository) UpdateAttendanceState(ctx context.Context, id string, expected attendance.Status, next attendance.State) error {
	return m.Called(ctx, id, expected, next).Error(0)
}

func (m *UserRepository) SetLastComment(ctx context.Context, id string, logID string, comment string) error {
	return m.Called(ctx, id, logID, comment).Error(0)
}

func (m *UserRepository) ResetAttendance(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type LogRepository struct {
	mock.Mock
}

func (m *LogRepository) Create(ctx context.Context, log attendance.Log) (attendance.Log, error) {
	args := m.Called(ctx, log)
	return args.Get(0).(attendance.Log), args.Error(1)
}

func (m *LogRepository) GetByID(ctx context.Context, id string) (attendance.Log, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(attendance.Log), args.Error(1)
}

func (m *LogRepository) UpdateComment(ctx context.Context, id string, comment string) error {
	return m.Called(ctx, id, comment).Error(0)
}

func (m *LogRepository) List(ctx context.Context, filter attendance.LogFilter) ([]attendance.Log, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]attendance.Log), args.Get(1).(int64), args.Error(2)
}

type DepartmentRepository struct {
	mock.Mock
}

func (m *DepartmentRepository) Create(ctx context.Context, dept department.Department) (department.Department, error) {
	args := m.Called(ctx, dept)
	return args.Get(0).(department.Department), args.Error(1)
}

func (m *DepartmentRepository) GetByID(ctx context.Context, id string) (department.Department, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(department.Department), args.Error(1)
}

func (m *DepartmentRepository) List(ctx context.Context) ([]department.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]department.Department), args.Error(1)
}

func (m *DepartmentRepository) Update(ctx context.Context, req department.UpdateDepartmentRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *DepartmentRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
