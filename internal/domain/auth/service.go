package auth

import (
	"context"
)

type AuthService interface {
	IssueToken(ctx context.Context, req IssueTokenRequest) (TokenResponse, error)
}
