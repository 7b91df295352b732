package auth

import (
	"log/slog"
	"net/http"
	"strings"
)

// DefaultSkipPrefixes lists the path prefixes the middleware ignores.
// The login and registration endpoints cannot require a token, since
// they exist to mint one.
var DefaultSkipPrefixes = []string{"/auth/"}

// bearerScheme is the expected Authorization scheme, matched case
// insensitively.
const bearerScheme = "Bearer "

// ExtractBearerToken pulls the token out of an Authorization header
// value. The scheme comparison is case insensitive. An empty result
// means no usable bearer credential was presented.
func ExtractBearerToken(header string) string {
	if len(header) <= len(bearerScheme) {
		return ""
	}
	if !strings.EqualFold(header[:len(bearerScheme)], bearerScheme) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerScheme):])
}

// Middleware returns the request interception filter. For each request
// it attempts to establish the caller's identity from the Authorization
// header: extract the bearer token, validate it, and resolve the
// subject to a stored principal. On success the principal is attached
// to the request context; on any failure the request proceeds as
// anonymous. The filter never terminates a request itself; rejection is
// the authorizer's job.
//
// Requests whose path starts with one of skipPrefixes bypass the filter
// entirely. When none are given [DefaultSkipPrefixes] applies.
func Middleware(codec *TokenCodec, resolver PrincipalResolver, skipPrefixes ...string) func(http.Handler) http.Handler {
	if len(skipPrefixes) == 0 {
		skipPrefixes = DefaultSkipPrefixes
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range skipPrefixes {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			ctx := r.Context()

			// Re-entrant filter chains must not overwrite an identity
			// established upstream.
			if _, ok := PrincipalFromContext(ctx); ok {
				next.ServeHTTP(w, r)
				return
			}

			token := ExtractBearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			subject, err := codec.ExtractSubject(ctx, token)
			if err != nil {
				slog.WarnContext(ctx, "rejecting bearer token, proceeding as anonymous",
					slog.String("path", r.URL.Path),
					slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}

			principal, err := resolver.ByEmail(ctx, subject)
			if err != nil {
				slog.WarnContext(ctx, "token subject did not resolve to a user, proceeding as anonymous",
					slog.String("subject", subject),
					slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}

			// The token must be bound to the resolved principal, not just
			// structurally valid.
			if !codec.Verify(ctx, token, principal.Email) {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(ctx, principal)))
		})
	}
}
