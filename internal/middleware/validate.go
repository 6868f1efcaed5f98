package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"complaint-desk/pkg/apierror"
)

const maxBodyBytes = 8 << 20

type structValidator interface {
	Struct(payload any) error
}

type bodyContextKey struct{}

// ValidateBody decodes the JSON body into T and checks its validate tags.
// Handlers read the result with BodyFromContext.
func ValidateBody[T any](v structValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer r.Body.Close()

			var payload T
			decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
			if err := decoder.Decode(&payload); err != nil {
				if errors.Is(err, io.EOF) {
					writeAPIError(w, apierror.BadRequest("request body is required", ""))
					return
				}
				writeAPIError(w, apierror.BadRequest("invalid JSON body", err.Error()))
				return
			}

			if err := v.Struct(payload); err != nil {
				writeAPIError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), bodyContextKey{}, payload)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func BodyFromContext[T any](ctx context.Context) (T, bool) {
	payload, ok := ctx.Value(bodyContextKey{}).(T)
	return payload, ok
}
