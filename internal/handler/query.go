package handler

import (
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"fashionrag/internal/errlog"
	"fashionrag/internal/middleware"
)

const (
	minQueryRunes = 3
	maxQueryRunes = 500
)

// QueryRequest is the body of POST /api/v1/query.
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResponse is the success payload for a query.
type QueryResponse struct {
	Response  string        `json:"response"`
	Query     string        `json:"query"`
	Status    string        `json:"status"`
	RateLimit RateLimitInfo `json:"rate_limit"`
}

// RateLimitInfo reports the quota left after a successful query.
type RateLimitInfo struct {
	Remaining int    `json:"remaining"`
	ResetTime string `json:"reset_time"`
}

// RateLimitExceeded is the 429 payload for clients over quota.
type RateLimitExceeded struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Remaining int    `json:"remaining"`
	ResetTime string `json:"reset_time"`
}

// HandleQuery processes a style question through the RAG pipeline.
// The quota check runs before validation, so malformed queries still
// consume a slot.
func HandleQuery(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req QueryRequest
		if err := ReadJSONBody(r, &req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		decision, err := app.limiter.Check(middleware.GetClientIP(r), r.UserAgent())
		if err != nil {
			log.Printf("[Query] rate limit check failed: %v", err)
			errlog.Logf("[Query] rate limit check failed: %v", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if !decision.Allowed {
			WriteJSON(w, http.StatusTooManyRequests, RateLimitExceeded{
				Error:     "Rate limit exceeded",
				Message:   decision.Message,
				Remaining: decision.Remaining,
				ResetTime: decision.ResetTime,
			})
			return
		}

		if utf8.RuneCountInString(strings.TrimSpace(req.Query)) < minQueryRunes {
			WriteError(w, http.StatusBadRequest, "Query too short. Please provide at least 3 characters.")
			return
		}
		if utf8.RuneCountInString(req.Query) > maxQueryRunes {
			WriteError(w, http.StatusBadRequest, "Query too long. Please limit to 500 characters.")
			return
		}

		response, err := app.queryEngine.Answer(req.Query)
		if err != nil {
			log.Printf("[Query] error: %v", err)
			errlog.Logf("[Query] query processing failed: %v", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		WriteJSON(w, http.StatusOK, QueryResponse{
			Response: response,
			Query:    req.Query,
			Status:   "success",
			RateLimit: RateLimitInfo{
				Remaining: decision.Remaining,
				ResetTime: decision.ResetTime,
			},
		})
	}
}
