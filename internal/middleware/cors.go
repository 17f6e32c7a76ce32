package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/coachassist/backend/internal/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var devOrigins = []string{
	"http://localhost:5173", // Vite dev server
	"http://127.0.0.1:5173",
}

// AllowedOrigins returns the browser origins accepted in production.
func AllowedOrigins(cfg *config.Config) []string {
	var origins []string
	if cfg.FrontendURL != "" {
		origins = append(origins, strings.TrimRight(cfg.FrontendURL, "/"))
	}
	return origins
}

// CORSMiddleware returns a CORS middleware configured for the environment
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	log.Printf("[CORS] Environment: %s, FrontendURL: %s", cfg.Environment, cfg.FrontendURL)

	corsConfig := cors.Config{
		AllowMethods: []string{
			"GET", "POST", "PUT", "DELETE", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin", "Content-Length", "Content-Type", "Authorization",
			"Accept", "Cache-Control", "X-Requested-With",
		},
		ExposeHeaders: []string{
			"Content-Length", "Content-Disposition", "X-Cache", "X-Diagnostics",
		},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if cfg.Environment == "development" {
		corsConfig.AllowOrigins = devOrigins
	} else {
		corsConfig.AllowOrigins = AllowedOrigins(cfg)
		if len(corsConfig.AllowOrigins) == 0 {
			// cors.New panics without any allowed origin
			log.Printf("[CORS] FRONTEND_URL not set; cross-origin requests are refused")
			corsConfig.AllowOriginFunc = func(string) bool { return false }
		}
		log.Printf("[CORS] Production allowed origins: %v", corsConfig.AllowOrigins)
	}

	return cors.New(corsConfig)
}

// WebSocketOriginCheck validates WebSocket upgrade origins
func WebSocketOriginCheck(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")
		if origin == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "WebSocket origin required"})
			return
		}

		var allowed bool
		if cfg.Environment == "development" {
			allowed = strings.HasPrefix(origin, "http://localhost:") ||
				strings.HasPrefix(origin, "http://127.0.0.1:")
		} else {
			for _, o := range AllowedOrigins(cfg) {
				if origin == o {
					allowed = true
					break
				}
			}
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "WebSocket origin not allowed"})
			return
		}

		c.Next()
	}
}
