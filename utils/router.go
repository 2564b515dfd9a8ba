package utils

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions configures the base router.
type RouterOptions struct {
	AllowedOrigins []string
	// Health adds fields to the /health response; may be nil.
	Health func() map[string]any
}

// NewRouter constructs the base mux router with CORS, /health and /metrics.
func NewRouter(opts RouterOptions) *mux.Router {
	r := mux.NewRouter()
	r.Use(NewOriginPolicy(opts.AllowedOrigins).Middleware())

	// Preflights must match a route for the CORS middleware to run.
	r.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{}
		if opts.Health != nil {
			for k, v := range opts.Health() {
				body[k] = v
			}
		}
		body["status"] = "ok"
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(body)
	}).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}
