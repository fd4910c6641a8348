package auth

import (
	"context"
	"slices"

	"github.com/rogerio-castellano/inventory-console/internal/models"
)

type contextKey string

const principalKey = contextKey("principal")

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID      int
	Username    string
	Role        string
	Permissions []string
}

func (p Principal) Can(permission string) bool {
	return p.Role == models.RoleAdmin || slices.Contains(p.Permissions, permission)
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
