package handlers

import (
	"net/http"

	"github.com/coachassist/backend/internal/config"
	"github.com/coachassist/backend/internal/geometry"
	"github.com/coachassist/backend/internal/strategy"
	"github.com/gin-gonic/gin"
)

// GetConfig returns the values the editor needs to draw and export.
func GetConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		labels := make([]string, 0, strategy.NumPlayers)
		for i := 0; i < strategy.NumPlayers; i++ {
			l, _ := strategy.PlayerLabel(i)
			labels = append(labels, string(l))
		}
		c.JSON(http.StatusOK, gin.H{
			"field": gin.H{
				"half_length": geometry.FieldHalfLength,
				"half_width":  geometry.FieldHalfWidth,
				"scale":       geometry.FieldScale,
			},
			"players":          labels,
			"clang_defaults":   defaultOptions(cfg),
			"max_upload_bytes": cfg.MaxUploadBytes,
		})
	}
}
