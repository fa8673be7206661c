// Package router provides centralized API route registration.
// All HTTP routes are registered here with the middleware each needs.
package router

import (
	"net/http"
	"time"

	"fashionrag/internal/handler"
	"fashionrag/internal/middleware"
)

// Register registers all API routes to http.DefaultServeMux.
// It creates middleware instances internally and returns a cleanup
// function that should be called on shutdown to stop background goroutines.
func Register(app *handler.App, frontendURL string) func() {
	// Build the secure API middleware chain: SecurityHeaders + CORS + RequestID
	secureAPI := middleware.Chain(
		middleware.SecurityHeaders(),
		middleware.CORS(frontendURL),
		middleware.RequestID(),
	)

	// Burst limiter in front of the persistent query quota: 60 requests
	// per minute per IP. The quota meters usage over hours; this keeps
	// rapid-fire clients from hammering the database at all.
	apiRL := middleware.NewRateLimiter(60, 1*time.Minute)
	burst := apiRL.Limit()

	// Helper to apply the secureAPI chain
	secure := func(h http.HandlerFunc) http.HandlerFunc {
		return secureAPI(h)
	}

	// Helper to apply secureAPI + burst rate limit
	secureRL := func(h http.HandlerFunc) http.HandlerFunc {
		return secureAPI(burst(h))
	}

	// ── Liveness ──
	http.HandleFunc("/", secure(handler.HandleRoot()))
	http.HandleFunc("/health", secure(handler.HandleHealth()))

	// ── Query ──
	http.HandleFunc("/api/v1/query", secureRL(handler.HandleQuery(app)))
	http.HandleFunc("/api/v1/rate-limit-status", secureRL(handler.HandleRateLimitStatus(app)))

	// ── Store statistics ──
	http.HandleFunc("/api/v1/stats", secure(handler.HandleStats(app)))

	// Return cleanup function to stop rate limiter goroutines
	return func() {
		apiRL.Stop()
	}
}
