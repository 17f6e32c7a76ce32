package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/coachassist/backend/internal/accounts"
	"github.com/coachassist/backend/internal/config"
	"github.com/coachassist/backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type loginRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Token    string `json:"token" binding:"required,max=256"`
}

// Login exchanges a coach username and access token for a session JWT.
func Login(db *sqlx.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and token required"})
			return
		}
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "accounts unavailable"})
			return
		}

		coach, err := accounts.Authenticate(db, strings.TrimSpace(req.Username), req.Token)
		if err != nil {
			if errors.Is(err, accounts.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		token, exp, err := middleware.IssueToken(cfg, coach.ID, coach.Username)
		if err != nil {
			log.Printf("[AUTH] Failed to sign token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		log.Printf("[AUTH] Coach %s logged in", coach.Username)
		c.JSON(http.StatusOK, gin.H{
			"token":      token,
			"expires_at": exp.Format(time.RFC3339),
			"coach":      coach,
		})
	}
}
