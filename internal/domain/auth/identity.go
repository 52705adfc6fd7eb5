package auth

import (
	"context"
	"fmt"

	"github.com/davomat/davomat-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// Identity is the authenticated caller as carried by the access token.
type Identity struct {
	UserID   string
	Username string
	Role     user.Role
}

func (i Identity) Can(p user.Permission) bool {
	return user.HasPermission(i.Role, p)
}

// IdentityFromContext reads the verified token claims placed on ctx by the
// jwtauth verifier.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, fmt.Errorf("user_id claim: %w", ErrMissingClaims)
	}

	role, ok := claims["role"].(string)
	if !ok || !user.Role(role).IsValid() {
		return Identity{}, fmt.Errorf("role claim: %w", ErrMissingClaims)
	}

	username, _ := claims["username"].(string)

	return Identity{
		UserID:   userID,
		Username: username,
		Role:     user.Role(role),
	}, nil
}
