package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"
)

// RequestID returns a middleware that tags every request with an
// identifier for log correlation. An incoming X-Request-ID is reused so
// IDs survive proxy hops; otherwise a fresh one is generated.
func RequestID() Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = newRequestID()
				r.Header.Set("X-Request-ID", id)
			}
			w.Header().Set("X-Request-ID", id)
			next(w, r)
		}
	}
}

// newRequestID produces a 16-character random hex identifier. If the
// random source fails the timestamp keeps IDs unique enough for logs.
func newRequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
