// Package api holds the HTTP middleware shared by every route: request ids and
// access logging, API-key auth and per-client rate limiting.
package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFrom returns the id assigned by RequestLogger, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogger tags each request with an id (the caller's X-Request-ID or a fresh
// UUID), echoes it in the response and logs the outcome.
func RequestLogger(next http.Handler) http.Handler {
	log := slog.Default().With("component", "http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))

		level := slog.LevelInfo
		if rec.status >= 500 {
			level = slog.LevelWarn
		}
		log.Log(r.Context(), level, "request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

// APIKeyMiddleware rejects requests that do not carry key as a bearer token or in
// X-API-Key. An empty key disables the check.
func APIKeyMiddleware(key string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Always allow OPTIONS for CORS
			if key == "" || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			if subtle.ConstantTimeCompare([]byte(extractAPIKey(r)), []byte(key)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractAPIKey prefers the Authorization header over X-API-Key.
func extractAPIKey(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			if token := strings.TrimSpace(parts[1]); token != "" {
				return token
			}
		}
	}
	return strings.TrimSpace(r.Header.Get("X-API-Key"))
}
