package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/davomat/davomat-backend-go/internal/domain/attendance"
	"github.com/davomat/davomat-backend-go/internal/domain/auth"
	"github.com/davomat/davomat-backend-go/internal/domain/department"
	"github.com/davomat/davomat-backend-go/internal/domain/user"
	"github.com/davomat/davomat-backend-go/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	tx          database.Transactor
	users       user.UserRepository
	departments department.DepartmentRepository
}

func NewUserService(tx database.Transactor, users user.UserRepository, departments department.DepartmentRepository) user.UserService {
	return &UserServiceImpl{
		tx:          tx,
		users:       users,
		departments: departments,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *UserServiceImpl) checkDepartment(ctx context.Context, id *string) error {
	if id == nil {
		return nil
	}
	if _, err := s.departments.GetByID(ctx, *id); err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return err
		}
		return fmt.Errorf("failed to get department: %w", err)
	}
	return nil
}

// Me implements user.UserService.
func (s *UserServiceImpl) Me(ctx context.Context) (user.UserResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, auth.ErrInvalidToken
	}
	return s.GetByID(ctx, identity.UserID)
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, filter user.ListUsersFilter) ([]user.UserResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}
	return responses, nil
}

// GetByID implements user.UserService.
func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, err
		}
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u.ToResponse(), nil
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	var created user.User
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetByUsername(ctx, req.Username); err == nil {
			return user.ErrUsernameExists
		} else if !errors.Is(err, user.ErrUserNotFound) {
			return fmt.Errorf("failed to check username: %w", err)
		}

		if _, err := s.users.GetByEmployeeCode(ctx, req.EmployeeCode); err == nil {
			return user.ErrEmployeeCodeExists
		} else if !errors.Is(err, user.ErrUserNotFound) {
			return fmt.Errorf("failed to check employee code: %w", err)
		}

		if err := s.checkDepartment(ctx, req.DepartmentID); err != nil {
			return err
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		created, err = s.users.Create(ctx, user.User{
			Username:         req.Username,
			PasswordHash:     &hash,
			FullName:         req.FullName,
			Position:         req.Position,
			EmployeeCode:     req.EmployeeCode,
			DepartmentID:     req.DepartmentID,
			Level:            req.Level,
			Role:             user.Role(req.Role),
			PhotoURL:         req.PhotoURL,
			AttendanceStatus: string(attendance.StatusAbsent),
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("User created", "user_id", created.ID, "username", created.Username, "role", created.Role)
	return created.ToResponse(), nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.users.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		if req.EmployeeCode != nil && *req.EmployeeCode != current.EmployeeCode {
			if _, err := s.users.GetByEmployeeCode(ctx, *req.EmployeeCode); err == nil {
				return user.ErrEmployeeCodeExists
			} else if !errors.Is(err, user.ErrUserNotFound) {
				return fmt.Errorf("failed to check employee code: %w", err)
			}
		}

		if err := s.checkDepartment(ctx, req.DepartmentID); err != nil {
			return err
		}

		if err := s.users.Update(ctx, req); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		if req.Password != nil {
			hash, err := hashPassword(*req.Password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			if err := s.users.UpdatePassword(ctx, req.ID, hash); err != nil {
				return fmt.Errorf("failed to update password: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return s.GetByID(ctx, req.ID)
}

// Delete implements user.UserService.
func (s *UserServiceImpl) Delete(ctx context.Context, id string) error {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return auth.ErrInvalidToken
	}
	if identity.UserID == id {
		return user.ErrCannotDeleteSelf
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("User deleted", "user_id", id, "deleted_by", identity.UserID)
	return nil
}
