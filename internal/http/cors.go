package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// corsMiddleware returns the CORS handler for a comma-separated origin list,
// or nil when CORS is off or no usable origin is configured. Clients carry the
// bearer token in the Authorization header, so cookies are never allowed.
func corsMiddleware(enabled bool, allowOrigins string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins := splitOrigins(allowOrigins)
	if len(origins) == 0 {
		logger.Warn("cors enabled without origins, skipping")
		return nil
	}
	logger.Info("cors enabled", slog.Any("origins", origins))

	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"X-Request-Id"},
		MaxAge:        time.Hour,
	})
}

func splitOrigins(s string) []string {
	var origins []string
	for origin := range strings.SplitSeq(s, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
