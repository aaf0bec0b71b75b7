package auth

import (
	"context"
	"fmt"
)

// UserClaims represents the authenticated user information carried on the
// request context.
type UserClaims struct {
	UID   string
	Name  string
	Email string
}

type contextKey string

const userClaimsKey contextKey = "userClaims"

// WithUserClaims returns a context carrying the given user claims.
func WithUserClaims(ctx context.Context, claims *UserClaims) context.Context {
	return context.WithValue(ctx, userClaimsKey, claims)
}

// GetUserClaims extracts user claims from the context.
func GetUserClaims(ctx context.Context) (*UserClaims, bool) {
	claims, ok := ctx.Value(userClaimsKey).(*UserClaims)
	return claims, ok
}

// RequireAuth extracts user claims from context or returns an error.
func RequireAuth(ctx context.Context) (*UserClaims, error) {
	claims, ok := GetUserClaims(ctx)
	if !ok {
		return nil, fmt.Errorf("user not authenticated")
	}
	return claims, nil
}
