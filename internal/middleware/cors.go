package middleware

import "net/http"

// defaultFrontendURL is the development frontend origin. While the
// configuration still points at it, the API stays open to any origin so
// local setups work without extra configuration.
const defaultFrontendURL = "http://localhost:3000"

// CORS returns a middleware handling cross-origin requests. A configured
// production frontend URL locks the API down to exactly that origin;
// otherwise any origin is allowed. Preflight requests are answered
// directly without reaching the handler.
func CORS(frontendURL string) Middleware {
	origin := "*"
	if frontendURL != "" && frontendURL != defaultFrontendURL {
		origin = frontendURL
	}

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if origin != "*" {
				// Credentials cannot be combined with a wildcard origin.
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next(w, r)
		}
	}
}
