package user

import "errors"

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrUsernameExists           = errors.New("username already registered")
	ErrEmployeeCodeExists       = errors.New("employee code already registered")
	ErrInvalidPasswordLength    = errors.New("password must be at least 8 characters")
	ErrAdminPrivilegeRequired   = errors.New("admin privilege required")
	ErrInsufficientPermissions  = errors.New("insufficient permissions")
	ErrCannotDeleteSelf         = errors.New("cannot delete your own account")
	ErrUpdatedAtBeforeCreatedAt = errors.New("updated_at cannot be before created_at")
	ErrStateUpdateNotApplied    = errors.New("attendance state was modified by another request")
)
