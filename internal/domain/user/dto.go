package user

import (
	"strings"

	"github.com/davomat/davomat-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	FullName       string  `json:"full_name"`
	Position       string  `json:"position"`
	EmployeeCode   string  `json:"employee_code"`
	DepartmentID   *string `json:"department_id,omitempty"`
	DepartmentName *string `json:"department_name,omitempty"`
	Level          *int    `json:"level,omitempty"`
	Role           string  `json:"role"`
	PhotoURL       *string `json:"photo_url,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// CreateUserRequest represents request to create a new user
type CreateUserRequest struct {
	Username     string  `json:"username" validate:"required,min=3,max=50"`
	Password     string  `json:"password" validate:"required,min=8,max=255"`
	FullName     string  `json:"full_name" validate:"required,max=255"`
	Position     string  `json:"position" validate:"max=255"`
	EmployeeCode string  `json:"employee_code" validate:"required,employee_code"`
	DepartmentID *string `json:"department_id,omitempty"`
	Level        *int    `json:"level,omitempty" validate:"omitempty,gte=0,lte=1000"`
	Role         string  `json:"role" validate:"required,oneof=admin viewer post employee"`
	PhotoURL     *string `json:"photo_url,omitempty" validate:"omitempty,url"`
}

func (r *CreateUserRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.FullName = strings.TrimSpace(r.FullName)
	r.EmployeeCode = strings.TrimSpace(r.EmployeeCode)

	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}

	if r.DepartmentID != nil && !validator.IsValidUUID(*r.DepartmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "department_id",
			Message: "department_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateUserRequest represents request to update user. Nil fields are left
// unchanged; ClearDepartment and ClearLevel unset the optional fields.
type UpdateUserRequest struct {
	ID              string  `json:"-"`
	FullName        *string `json:"full_name,omitempty" validate:"omitempty,min=1,max=255"`
	Position        *string `json:"position,omitempty" validate:"omitempty,max=255"`
	EmployeeCode    *string `json:"employee_code,omitempty" validate:"omitempty,employee_code"`
	DepartmentID    *string `json:"department_id,omitempty"`
	ClearDepartment bool    `json:"clear_department,omitempty"`
	Level           *int    `json:"level,omitempty" validate:"omitempty,gte=0,lte=1000"`
	ClearLevel      bool    `json:"clear_level,omitempty"`
	Role            *string `json:"role,omitempty" validate:"omitempty,oneof=admin viewer post employee"`
	PhotoURL        *string `json:"photo_url,omitempty" validate:"omitempty,url"`
	Password        *string `json:"password,omitempty" validate:"omitempty,min=8,max=255"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}

	if r.DepartmentID != nil && !validator.IsValidUUID(*r.DepartmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "department_id",
			Message: "department_id must be a valid UUID",
		})
	}

	if r.DepartmentID != nil && r.ClearDepartment {
		errs = append(errs, validator.ValidationError{
			Field:   "clear_department",
			Message: "clear_department cannot be combined with department_id",
		})
	}

	if r.Level != nil && r.ClearLevel {
		errs = append(errs, validator.ValidationError{
			Field:   "clear_level",
			Message: "clear_level cannot be combined with level",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ListUsersFilter narrows the user list. Every field is optional.
type ListUsersFilter struct {
	Search       *string `json:"search,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	Role         *string `json:"role,omitempty"`
}

func (f *ListUsersFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Role != nil && !Role(*f.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: admin, viewer, post, employee",
		})
	}

	if f.DepartmentID != nil && !validator.IsValidUUID(*f.DepartmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "department_id",
			Message: "department_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToResponse renders u for the API.
func (u User) ToResponse() UserResponse {
	return UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		FullName:       u.FullName,
		Position:       u.Position,
		EmployeeCode:   u.EmployeeCode,
		DepartmentID:   u.DepartmentID,
		DepartmentName: u.DepartmentName,
		Level:          u.Level,
		Role:           string(u.Role),
		PhotoURL:       u.PhotoURL,
		CreatedAt:      u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:      u.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
