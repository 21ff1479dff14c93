package handler

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// DefaultOrigins are the front ends allowed to call the API.
var DefaultOrigins = []string{
	"http://localhost:3000",
	"https://localhost:3000",
	"https://*.vercel.app",
	"https://*.netlify.app",
}

// CORSConfig builds the allow-list from DefaultOrigins plus extra origins.
// Extras without an http(s) scheme are dropped with a warning.
func CORSConfig(extra ...string) cors.Config {
	origins := append([]string(nil), DefaultOrigins...)
	seen := make(map[string]bool, len(origins))
	for _, o := range origins {
		seen[o] = true
	}
	for _, o := range extra {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" || seen[o] {
			continue
		}
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			log.Printf("Warning: ignoring CORS origin %q without http(s) scheme", o)
			continue
		}
		seen[o] = true
		origins = append(origins, o)
	}

	return cors.Config{
		AllowOrigins:     origins,
		AllowWildcard:    true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// CORS returns the middleware for CORSConfig(extra...).
func CORS(extra ...string) gin.HandlerFunc {
	return cors.New(CORSConfig(extra...))
}
