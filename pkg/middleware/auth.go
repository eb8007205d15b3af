package middleware

import (
	"context"
	"net/http"

	"planora/pkg/logger"
)

// Caller is the identity the upstream gateway resolved for a request. The
// service trusts these headers; token verification happens before traffic
// reaches it.
type Caller struct {
	ID   string
	Role string
}

const (
	RoleUser   = "user"
	RoleVendor = "vendor"
	RoleAdmin  = "admin"
)

const (
	HeaderCallerID   = "X-Caller-Id"
	HeaderCallerRole = "X-Caller-Role"
)

const CallerKey contextKey = "caller"

// CallerIdentity extracts the gateway-resolved caller from request headers
// and stores it on the context. Requests without identity still pass through;
// handlers decide per route whether anonymous access is allowed.
func CallerIdentity(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderCallerID)
			role := r.Header.Get(HeaderCallerRole)

			if id != "" {
				if !validRole(role) {
					log.Warn("Unknown caller role, treating caller as anonymous",
						"role", role,
						"path", r.URL.Path,
					)
				} else {
					ctx := context.WithValue(r.Context(), CallerKey, Caller{ID: id, Role: role})
					r = r.WithContext(ctx)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CallerFromContext returns the authenticated caller, if any.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(CallerKey).(Caller)
	return caller, ok
}

func validRole(role string) bool {
	switch role {
	case RoleUser, RoleVendor, RoleAdmin:
		return true
	}
	return false
}
