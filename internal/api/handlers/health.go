package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/coachassist/backend/internal/workspace"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

var startTime = time.Now()

const version = "1.0.0"

// HealthCheck reports uptime, open workspaces and whether the library
// database answers. A missing database is "disabled", not an error: editing
// and export work without it.
func HealthCheck(db *sqlx.DB, workspaces *workspace.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, database := "ok", "disabled"
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				status, database = "degraded", "unreachable"
			} else {
				database = "ok"
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     status,
			"service":    "coachassist-api",
			"version":    version,
			"uptime":     time.Since(startTime).String(),
			"workspaces": workspaces.Len(),
			"database":   database,
		})
	}
}
