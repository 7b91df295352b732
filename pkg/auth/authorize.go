package auth

import (
	"log/slog"
	"net/http"
	"strings"
)

// Response bodies for rejected requests. Fixed strings so callers can
// never distinguish a missing token from an invalid one.
const (
	MsgUnauthorized = "Unauthorized: Authentication token was either missing or invalid."
	MsgForbidden    = "Access Denied: You don't have the necessary permissions."
)

// Rule protects a set of routes. A rule matches a request when the path
// starts with PathPrefix and, if Method is set, the method equals it.
// A matching rule passes when the principal holds any of Roles or any
// of Authorities; listing both means either suffices.
//
// A rule with neither Roles nor Authorities only requires that the
// caller is authenticated.
type Rule struct {
	PathPrefix  string
	Method      string
	Roles       []Role
	Authorities []string
}

// Matches reports whether the rule applies to the request.
func (ru Rule) Matches(r *http.Request) bool {
	if !strings.HasPrefix(r.URL.Path, ru.PathPrefix) {
		return false
	}
	return ru.Method == "" || ru.Method == r.Method
}

// Permits reports whether the principal satisfies the rule.
func (ru Rule) Permits(p *Principal) bool {
	if len(ru.Roles) == 0 && len(ru.Authorities) == 0 {
		return true
	}
	for _, role := range ru.Roles {
		if p.HasRole(role) {
			return true
		}
	}
	for _, authority := range ru.Authorities {
		if p.HasAuthority(authority) {
			return true
		}
	}
	return false
}

// DefaultRules returns the rule table for the service's protected
// routes. The management routes admit both roles; the method rules
// additionally require the matching read or create permission.
func DefaultRules() []Rule {
	return []Rule{
		{PathPrefix: "/management", Roles: []Role{RoleAdmin, RoleMember}},
		{PathPrefix: "/management", Method: http.MethodGet,
			Authorities: []string{PermissionAdminRead, PermissionManagementRead}},
		{PathPrefix: "/management", Method: http.MethodPost,
			Authorities: []string{PermissionAdminCreate, PermissionManagementCreate}},
	}
}

// Authorizer returns middleware enforcing the rule table. It runs after
// [Middleware] in the handler chain. Requests matching no rule pass
// through. For matched requests an anonymous caller receives 401 and an
// authenticated caller failing any matching rule receives 403; every
// matching rule must pass.
func Authorizer(rules []Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, authenticated := PrincipalFromContext(r.Context())

			for _, rule := range rules {
				if !rule.Matches(r) {
					continue
				}
				if !authenticated {
					http.Error(w, MsgUnauthorized, http.StatusUnauthorized)
					return
				}
				if !rule.Permits(principal) {
					slog.WarnContext(r.Context(), "denying request, insufficient authorities",
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("subject", principal.Email))
					http.Error(w, MsgForbidden, http.StatusForbidden)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
