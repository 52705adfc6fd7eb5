package user

import (
	"context"
)

type UserService interface {
	Me(ctx context.Context) (UserResponse, error)
	List(ctx context.Context, filter ListUsersFilter) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error
}
