package mocks

import (
	"context"

	"github.com/davomat/davomat-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

var tokenAuth = jwtauth.New("HS256", []byte("mocks-secret"), nil)

// ContextWithIdentity returns ctx carrying a verified access token for the
// given user, as the jwtauth verifier would leave it.
func ContextWithIdentity(ctx context.Context, userID, username string, role user.Role) context.Context {
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"user_id":  userID,
		"username": username,
		"role":     string(role),
		"type":     "access",
	})
	return jwtauth.NewContext(ctx, token, err)
}
