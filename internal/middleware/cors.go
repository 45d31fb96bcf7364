package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/guttosm/badge-service/internal/logger"
)

// CORS returns a middleware answering cross-origin requests from origins.
// An empty list or "*" allows every origin. Entries without an http(s)
// scheme are ignored.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Accept", "Accept-Language", "Cache-Control", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader, CacheStatusHeader},
		MaxAge:        24 * time.Hour,
	}

	allowed := make([]string, 0, len(origins))
	for _, origin := range origins {
		switch {
		case origin == "*":
			cfg.AllowAllOrigins = true
		case strings.HasPrefix(origin, "http://"), strings.HasPrefix(origin, "https://"):
			allowed = append(allowed, origin)
		default:
			log := logger.Logger()
			log.Warn().Str("origin", origin).Msg("Ignoring CORS origin without http(s) scheme")
		}
	}

	if cfg.AllowAllOrigins || len(allowed) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowed
	}

	return cors.New(cfg)
}
