package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hazelworks/finbook/internal/api/domain"
	"github.com/hazelworks/finbook/internal/api/store"
	"github.com/hazelworks/finbook/pkg/httpx"
	"github.com/hazelworks/finbook/pkg/jwtx"
	"github.com/hazelworks/finbook/pkg/slogx"
)

// Guard authenticates and authorizes every request according to the access
// policy. Public routes pass straight through without touching the
// Authorization header.
type Guard struct {
	Policy   *Policy
	Verifier *jwtx.Verifier
	Store    store.Store
}

// Middleware wires the guard into an httpx chain.
func (g *Guard) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			g.serve(next, w, r)
		})
	}
}

func (g *Guard) serve(next http.Handler, w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	require := g.Policy.Evaluate(r.Method, r.URL.Path)
	if require == RequirePublic {
		next.ServeHTTP(w, r)
		return
	}

	raw, ok := bearerToken(r)
	if !ok {
		writeBearerError(w, "missing bearer token")
		return
	}

	claims, err := g.Verifier.Verify(raw)
	if err != nil {
		switch {
		case errors.Is(err, jwtx.ErrExpired):
			writeBearerError(w, "token expired")
		default:
			writeBearerError(w, "token verification failed")
		}
		log.Warn("token verify failed", "err", err)
		return
	}

	// The token carries only the username; role comes from the store so a
	// demotion takes effect without waiting for the token to expire. A miss
	// or a store failure both look like a bad token from the outside, so a
	// caller can never confirm an account was deleted.
	user, err := g.Store.Users().GetByIdentifier(ctx, claims.Subject)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("principal lookup failed", "err", err)
		}
		writeBearerError(w, "token verification failed")
		return
	}

	if require == RequireAdmin && user.Role != domain.RoleAdmin {
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "admin role required")
		return
	}

	principal := domain.Principal{
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
	next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, principal)))
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	return raw, raw != ""
}

// RFC 6750-style error response for bearer auth failures.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", desc)
}
