package middleware

import (
	"context"

	"github.com/sarang-church/groupware-backend-go/internal/domain/auth"
	"github.com/sarang-church/groupware-backend-go/internal/domain/user"
)

// Caller is the authenticated user behind a request.
type Caller struct {
	UserID    string
	Email     string
	Role      user.Role
	Token     string
	ExpiresAt int64
}

func (c Caller) Can(permission user.Permission) bool {
	return user.HasPermission(c.Role, permission)
}

type callerKey struct{}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFromContext returns the caller stored by AuthRequired.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok
}

func callerFromClaims(claims map[string]interface{}) (Caller, error) {
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Caller{}, auth.ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok {
		return Caller{}, auth.ErrInvalidToken
	}
	email, _ := claims["email"].(string)

	return Caller{UserID: userID, Email: email, Role: user.Role(role)}, nil
}
