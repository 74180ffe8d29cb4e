package auth

import (
	"context"

	"github.com/google/uuid"
)

type Role string

const (
	RoleFoodie Role = "foodie"
	RoleCook   Role = "cook"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleFoodie, RoleCook, RoleAdmin:
		return true
	}
	return false
}

// Principal is the authenticated caller. Every mutating service operation
// receives one explicitly; ownership checks compare against UserID.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}

func (p Principal) Authenticated() bool {
	return p.UserID != uuid.Nil
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Is reports whether the principal is the user with the given id.
func (p Principal) Is(userID uuid.UUID) bool {
	return p.Authenticated() && p.UserID == userID
}

type ctxKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PrincipalFrom returns the caller stored by the auth middleware, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok && p.Authenticated()
}
