package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/gorilla/mux"
)

// RateLimit allows each client IP perMinute requests per sliding minute and answers
// the excess with 429. The client IP honours X-Forwarded-For and X-Real-IP so limits
// hold behind a reverse proxy. perMinute <= 0 disables limiting.
func RateLimit(perMinute int) mux.MiddlewareFunc {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(tooManyRequests),
	)
}

func tooManyRequests(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	json.NewEncoder(w).Encode(map[string]string{"error": "too many requests"})
}
