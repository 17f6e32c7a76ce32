package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/coachassist/backend/internal/clang"
	"github.com/coachassist/backend/internal/config"
	"github.com/coachassist/backend/internal/strategy"
	"github.com/coachassist/backend/internal/workspace"
	"github.com/gin-gonic/gin"
)

// loadWorkspace resolves :id for the authenticated coach, answering 404
// itself when it does not exist.
func loadWorkspace(c *gin.Context, workspaces *workspace.Manager) (*workspace.Workspace, bool) {
	w, err := workspaces.Get(c.Param("id"), c.GetInt("coach_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "workspace not found"})
		return nil, false
	}
	return w, true
}

// respondError maps model and workspace errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, strategy.ErrInvalidName), errors.Is(err, strategy.ErrInvalidPlayer):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, strategy.ErrUnknownRegion):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, workspace.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "workspace not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// playerParam parses a player label ("1".."9", "A", "B") into an index.
func playerParam(label string) (int, bool) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if len(label) != 1 {
		return -1, false
	}
	return strategy.ParsePlayerLabel(rune(label[0]))
}

// defaultOptions returns the generator options configured for the server.
func defaultOptions(cfg *config.Config) clang.Options {
	opts := clang.DefaultOptions()
	opts.AddPlayOn = cfg.CLangAddPlayOn
	opts.EnableShooting = cfg.CLangEnableShooting
	opts.FreedomRadius = cfg.CLangFreedomRadius
	opts.PositioningRadius = cfg.CLangPositioningRadius
	opts.RulePrefix = cfg.CLangRulePrefix
	return opts
}
