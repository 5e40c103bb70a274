package http

import (
	"context"

	"rentease-backend/internal/security"
)

type identityKey struct{}

func withIdentity(ctx context.Context, id security.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller resolved by the auth middleware.
func IdentityFromContext(ctx context.Context) (security.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(security.Identity)
	return id, ok
}
