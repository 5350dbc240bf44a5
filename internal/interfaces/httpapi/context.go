package httpapi

import (
	"context"

	"github.com/daffahmad/fantasy-contest/internal/domain/user"
)

type contextKey string

// Only the auth middleware writes this key; handlers read it through
// principalFromContext.
const principalContextKey contextKey = "auth_principal"

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}
