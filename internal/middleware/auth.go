package middleware

import (
	"context"
	"net/http"
	"strings"

	"complaint-desk/internal/model"
	"complaint-desk/internal/service"
	"complaint-desk/pkg/apierror"
)

type tokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (model.User, error)
}

type contextKey string

const userContextKey contextKey = "auth_user"

type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth resolves the bearer token to a user before anything else runs.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
			writeAPIError(w, apierror.Unauthorized("missing or invalid authorization header"))
			return
		}

		user, err := m.verifier.VerifyToken(r.Context(), header[7:])
		if err != nil {
			writeAPIError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles must run after RequireAuth.
func (m *AuthMiddleware) RequireRoles(allowed ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				writeAPIError(w, apierror.Unauthorized("authentication required"))
				return
			}

			if err := service.CheckRole(user.Role, allowed...); err != nil {
				writeAPIError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func UserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userContextKey).(model.User)
	return user, ok
}

// WithUser returns a copy of ctx carrying user, as RequireAuth does.
func WithUser(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}
