package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coachassist/backend/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// CoachClaims is the payload of a coach session token.
type CoachClaims struct {
	CoachID  int    `json:"coach_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// IssueToken signs a session token valid for cfg.SessionTimeoutMin minutes.
func IssueToken(cfg *config.Config, coachID int, username string) (string, time.Time, error) {
	exp := time.Now().Add(time.Duration(cfg.SessionTimeoutMin) * time.Minute)
	claims := CoachClaims{
		CoachID:  coachID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   username,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// ParseToken validates a session token and returns its claims.
func ParseToken(cfg *config.Config, token string) (*CoachClaims, error) {
	claims := &CoachClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.CoachID <= 0 {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// RequireCoach validates the bearer token and sets coach_id and username in
// the context. Browsers cannot set headers on websocket upgrades, so those
// requests may pass the token as ?token= instead.
func RequireCoach(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		} else if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
			token = c.Query("token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := ParseToken(cfg, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("coach_id", claims.CoachID)
		c.Set("username", claims.Username)
		c.Next()
	}
}
