package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"complaint-desk/internal/model"
	"complaint-desk/pkg/apierror"
)

type stubVerifier struct {
	users map[string]model.User
}

func (s stubVerifier) VerifyToken(_ context.Context, token string) (model.User, error) {
	user, ok := s.users[token]
	if !ok {
		return model.User{}, apierror.Unauthorized("invalid token")
	}
	return user, nil
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *model.APIError {
	t.Helper()
	var body model.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.False(t, body.Success)
	require.NotNil(t, body.Error)
	return body.Error
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	verifier := stubVerifier{users: map[string]model.User{
		"complainer-token": {ID: 1, Role: model.RoleComplainer},
		"approver-token":   {ID: 2, Role: model.RoleApprover},
	}}
	auth := NewAuthMiddleware(verifier)

	var seen model.User
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := auth.RequireAuth(auth.RequireRoles(model.RoleApprover)(echo))

	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{name: "missing header", status: http.StatusUnauthorized, code: apierror.CodeUnauthorized},
		{name: "wrong scheme", header: "Basic abc", status: http.StatusUnauthorized, code: apierror.CodeUnauthorized},
		{name: "unknown token", header: "Bearer nope", status: http.StatusUnauthorized, code: apierror.CodeUnauthorized},
		{name: "wrong role", header: "Bearer complainer-token", status: http.StatusForbidden, code: apierror.CodeForbidden},
		{name: "allowed", header: "bearer approver-token", status: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/complaints/1/approve", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				require.Equal(t, tt.code, decodeError(t, rec).Code)
				return
			}
			require.Equal(t, int64(2), seen.ID)
		})
	}
}

func TestRequireRolesWithoutUser(t *testing.T) {
	t.Parallel()

	handler := NewAuthMiddleware(stubVerifier{}).RequireRoles(model.RoleAdmin)(okHandler)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/users", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
