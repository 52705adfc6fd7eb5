package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrMissingClaims      = errors.New("token is missing required claims")
	ErrPasswordNotSet     = errors.New("account has no password set")
)
