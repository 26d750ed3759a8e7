package auth

import (
	"context"
	"errors"
)

var ErrNotLogged = errors.New("not logged in")

var _ Checker = (*LoginChecker)(nil)

type Checker interface {
	// CurrentUser returns the email behind a session token.
	CurrentUser(ctx context.Context, token string) (string, error)
}

type userCtxKey struct{}

// WithUser stores the logged user email in the context.
func WithUser(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userCtxKey{}, email)
}

// UserFromContext returns the logged user email, set by the auth middleware.
func UserFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(userCtxKey{}).(string)
	return email, ok && email != ""
}
