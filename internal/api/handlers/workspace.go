package handlers

import (
	"net/http"

	"github.com/coachassist/backend/internal/strategy"
	"github.com/coachassist/backend/internal/workspace"
	"github.com/gin-gonic/gin"
)

type createWorkspaceRequest struct {
	Name string `json:"name" binding:"required,max=128"`
}

// CreateWorkspace opens an empty strategy for editing.
func CreateWorkspace(workspaces *workspace.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createWorkspaceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
			return
		}

		w, err := workspaces.Create(c.GetInt("coach_id"), req.Name)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, w.Info())
	}
}

func ListWorkspaces(workspaces *workspace.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"workspaces": workspaces.List(c.GetInt("coach_id"))})
	}
}

// GetWorkspace returns the workspace metadata and a snapshot of its model.
func GetWorkspace(workspaces *workspace.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, ok := loadWorkspace(c, workspaces)
		if !ok {
			return
		}

		var snap strategy.Snapshot
		if err := w.Do(func(m *strategy.Model) error {
			snap = m.Snapshot()
			return nil
		}); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"workspace": w.Info(), "strategy": snap})
	}
}

// CloseWorkspace discards the workspace. Unsaved changes are lost.
func CloseWorkspace(workspaces *workspace.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := workspaces.Close(c.Param("id"), c.GetInt("coach_id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ClearWorkspace empties the model.
func ClearWorkspace(workspaces *workspace.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, ok := loadWorkspace(c, workspaces)
		if !ok {
			return
		}
		if err := w.Do(func(m *strategy.Model) error {
			m.Clear()
			return nil
		}); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
