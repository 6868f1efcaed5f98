package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/rs/cors"
)

const corsPreflightMaxAge = 3600

// CORS allows the browser methods the API routes use. Origins are trimmed and
// de-duplicated, and a "*" entry allows every origin.
func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   normalizeOrigins(origins),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders:   []string{"Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader, "Retry-After"},
		MaxAge:           corsPreflightMaxAge,
		AllowCredentials: false,
	}).Handler
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "" || slices.Contains(out, origin) {
			continue
		}
		if origin == "*" {
			return []string{"*"}
		}
		out = append(out, origin)
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
