// Package middleware holds the chi-compatible middleware used by the
// bookstore server: a structured request logger and the basic-auth gate
// in front of the /admin routes.
package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Logger returns middleware that writes one slog line per request with
// method, path, status, and duration. It wraps the ResponseWriter with
// chi's WrapResponseWriter so the status code is observable after the
// handler runs.
func Logger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Info("request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// BasicAuth returns middleware that challenges every request with HTTP
// basic auth against the single configured credential pair. Anything
// outside the routes it is mounted on stays unauthenticated.
//
// subtle.ConstantTimeCompare is used instead of == so the comparison
// takes the same time whether the guess is close or not.
func BasicAuth(user, password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqUser, reqPass, ok := r.BasicAuth()
			if !ok ||
				subtle.ConstantTimeCompare([]byte(reqUser), []byte(user)) != 1 ||
				subtle.ConstantTimeCompare([]byte(reqPass), []byte(password)) != 1 {
				w.Header().Set("WWW-Authenticate", `Basic realm="admin"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ResolveAdminPassword returns the configured admin password, or
// generates a random one and prints it to the log when none is set.
// Development convenience only — production configs set ADMIN_PASSWORD.
func ResolveAdminPassword(log *slog.Logger, user, configured string) string {
	if configured != "" {
		return configured
	}

	generated := uuid.NewString()
	log.Warn("no admin password configured, generated one for this run",
		slog.String("user", user),
		slog.String("password", generated),
	)
	return generated
}
