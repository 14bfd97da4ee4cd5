package middleware

import (
	"strings"

	"github.com/go-chi/cors"
)

// DefaultAllowedOrigins admits the LinkedIn pages the extension runs on.
var DefaultAllowedOrigins = []string{"https://www.linkedin.com"}

// CORS returns cors.Options parameterized by the given allowed origins.
// Browser extension origins ("chrome-extension://...") are passed through as is.
// If "*" is present, AllowCredentials is set to false (browsers reject
// Access-Control-Allow-Credentials: true with a wildcard origin).
func CORS(allowedOrigins []string) cors.Options {
	if len(allowedOrigins) == 0 {
		allowedOrigins = DefaultAllowedOrigins
	}

	allowCreds := true
	for _, o := range allowedOrigins {
		if strings.TrimSpace(o) == "*" {
			allowCreds = false
			break
		}
	}

	return cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: allowCreds,
		MaxAge:           300,
	}
}
