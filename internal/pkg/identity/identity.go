// Package identity carries the authenticated caller through a context.
package identity

import (
	"context"

	"github.com/google/uuid"
)

type Identity struct {
	UserId uuid.UUID
	Email  string
}

type contextKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// EmailFromContext returns the caller's e-mail, or "" when unknown.
func EmailFromContext(ctx context.Context) string {
	id, _ := FromContext(ctx)
	return id.Email
}
