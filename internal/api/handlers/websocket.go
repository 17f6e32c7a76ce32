package handlers

import (
	"github.com/coachassist/backend/internal/workspace"
	"github.com/coachassist/backend/internal/ws"
	"github.com/gin-gonic/gin"
)

// HandleWorkspaceWebSocket streams a workspace's change events.
func HandleWorkspaceWebSocket(hub *ws.Hub, workspaces *workspace.Manager) gin.HandlerFunc {
	return ws.HandleWebSocket(hub, workspaces)
}
