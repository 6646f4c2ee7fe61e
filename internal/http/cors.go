package http

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/allisson/onboarding/internal/config"
)

// corsMaxAge is how long browsers may cache a preflight answer.
const corsMaxAge = 12 * time.Hour

// newCORSMiddleware builds the CORS middleware for browser onboarding clients.
// It returns nil when CORS is disabled or no usable origin is configured.
//
// Credentials are allowed, so a wildcard origin is never honored: each origin
// must be listed explicitly.
func newCORSMiddleware(cfg *config.Config, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.CORSEnabled {
		return nil
	}

	origins := allowedOrigins(cfg.CORSAllowOrigins, logger)
	if len(origins) == 0 {
		logger.Warn("cors enabled without explicit origins, not applied")
		return nil
	}

	logger.Info("cors enabled", slog.Any("origins", origins))

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"X-Request-Id", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	})
}

// allowedOrigins splits the comma separated list, dropping blanks and wildcards.
func allowedOrigins(list string, logger *slog.Logger) []string {
	var origins []string
	for _, origin := range strings.Split(list, ",") {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		switch {
		case origin == "":
		case strings.Contains(origin, "*"):
			logger.Warn("ignoring wildcard cors origin", slog.String("origin", origin))
		default:
			origins = append(origins, origin)
		}
	}
	return origins
}
