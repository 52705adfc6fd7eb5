package mocks

import (
	"context"

	"github.com/davomat/davomat-backend-go/internal/domain/attendance"
	"github.com/davomat/davomat-backend-go/internal/domain/department"
	"github.com/davomat/davomat-backend-go/internal/domain/user"
	"github.com/stretchr/testify/mock"
)

type AttendanceService struct {
	mock.Mock
}

func (m *AttendanceService) Board(ctx context.Context, filter attendance.BoardFilter) (attendance.BoardResponse, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(attendance.BoardResponse), args.Error(1)
}

func (m *AttendanceService) GetEmployeeView(ctx context.Context, employeeID string) (attendance.EmployeeView, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).(attendance.EmployeeView), args.Error(1)
}

func (m *AttendanceService) CheckIn(ctx context.Context, req attendance.MarkRequest) (attendance.EmployeeView, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(attendance.EmployeeView), args.Error(1)
}

func (m *AttendanceService) CheckOut(ctx context.Context, req attendance.MarkRequest) (attendance.EmployeeView, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(attendance.EmployeeView), args.Error(1)
}

func (m *AttendanceService) Scan(ctx context.Context, req attendance.ScanRequest) (attendance.EmployeeView, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(attendance.EmployeeView), args.Error(1)
}

func (m *AttendanceService) SetTime(ctx context.Context, req attendance.SetTimeRequest) (attendance.EmployeeView, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(attendance.EmployeeView), args.Error(1)
}

func (m *AttendanceService) Comment(ctx context.Context, req attendance.CommentRequest) (attendance.LogResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(attendance.LogResponse), args.Error(1)
}

func (m *AttendanceService) ListLogs(ctx context.Context, filter attendance.LogFilter) (attendance.ListLogResponse, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(attendance.ListLogResponse), args.Error(1)
}

func (m *AttendanceService) Derive(ctx context.Context, req attendance.DeriveRequest) (attendance.DeriveResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(attendance.DeriveResponse), args.Error(1)
}

func (m *AttendanceService) Export(ctx context.Context, filter attendance.BoardFilter) ([]byte, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *AttendanceService) ResetDay(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type UserService struct {
	mock.Mock
}

func (m *UserService) Me(ctx context.Context) (user.UserResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(user.UserResponse), args.Error(1)
}

func (m *UserService) List(ctx context.Context, filter user.ListUsersFilter) ([]user.UserResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.UserResponse), args.Error(1)
}

func (m *UserService) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.UserResponse), args.Error(1)
}

func (m *UserService) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(user.UserResponse), args.Error(1)
}

func (m *UserService) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(user.UserResponse), args.Error(1)
}

func (m *UserService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type DepartmentService struct {
	mock.Mock
}

func (m *DepartmentService) List(ctx context.Context) ([]department.DepartmentResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]department.DepartmentResponse), args.Error(1)
}

func (m *DepartmentService) GetByID(ctx context.Context, id string) (department.DepartmentResponse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(department.DepartmentResponse), args.Error(1)
}

func (m *DepartmentService) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(department.DepartmentResponse), args.Error(1)
}

func (m *DepartmentService) Update(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(department.DepartmentResponse), args.Error(1)
}

func (m *DepartmentService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
