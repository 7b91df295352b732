package auth

import "context"

// contextKey is unexported so only this package can install a principal
// into a context.
type contextKey struct{}

var principalKey contextKey

// ContextWithPrincipal returns a context carrying the principal. If the
// context already carries one, it is returned unchanged; the identity a
// request enters the handler chain with is the identity it keeps.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	if p == nil {
		return ctx
	}
	if existing, ok := PrincipalFromContext(ctx); ok && existing != nil {
		return ctx
	}
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the principal attached to the context,
// if any. A false result means the request is anonymous.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok
}
