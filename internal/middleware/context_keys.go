package middleware

import (
	"context"

	"github.com/yogeshkhant77/Booksy/internal/domain/entity"
)

// ContextKey is a private key type so context values cannot collide with
// other packages.
type ContextKey string

const userCtxKey = ContextKey("auth_user")

// WithUser stores the authenticated account on the request context.
func WithUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, userCtxKey, user)
}

// UserFromContext returns the authenticated account, or nil when the
// request never passed the authenticator.
func UserFromContext(ctx context.Context) *entity.User {
	user, _ := ctx.Value(userCtxKey).(*entity.User)
	return user
}
