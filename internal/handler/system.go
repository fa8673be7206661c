package handler

import (
	"log"
	"net/http"

	"fashionrag/internal/errlog"
	"fashionrag/internal/middleware"
)

// HandleRoot reports API liveness at the root path. The root pattern
// catches every path no other route claims, so unknown paths are
// answered here with 404.
func HandleRoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			WriteError(w, http.StatusNotFound, "not found")
			return
		}
		if r.Method != http.MethodGet {
			WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{
			"message": "Fashion RAG API is running",
			"status":  "healthy",
			"version": "1.0.0",
		})
	}
}

// HandleHealth is the health check endpoint used by deploy probes.
func HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"message": "Fashion RAG API is operational",
		})
	}
}

// HandleStats reports document store statistics.
func HandleStats(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		WriteJSON(w, http.StatusOK, app.store.Stats())
	}
}

// HandleRateLimitStatus reports the client's quota usage without
// consuming a query.
func HandleRateLimitStatus(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		status, err := app.limiter.GetStatus(middleware.GetClientIP(r), r.UserAgent())
		if err != nil {
			log.Printf("[RateLimit] status lookup failed: %v", err)
			errlog.Logf("[RateLimit] status lookup failed: %v", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		WriteJSON(w, http.StatusOK, status)
	}
}
