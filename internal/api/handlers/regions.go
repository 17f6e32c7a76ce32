package handlers

import (
	"net/http"

	"github.com/coachassist/backend/internal/casfile"
	"github.com/coachassist/backend/internal/geometry"
	"github.com/coachassist/backend/internal/strategy"
	"github.com/coachassist/backend/internal/workspace"
	"github.com/gin-gonic/gin"
)

// rectRequest is a rectangle in field coordinates. Corners may come in any
// order.
type rectRequest struct {
	X1 *float64 `json:"x1" binding:"required"`
	Y1 *float64 `json:"y1" binding:"required"`
	X2 *float64 `json:"x2" binding:"required"`
	Y2 *float64 `json:"y2" binding:"required"`
}

// PutRegion adds or replaces the region named in the path.
func PutRegion(workspaces *workspace.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		if !casfile.ValidName(name) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid region name"})
			return
		}
		var req rectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "x1, y1, x2 and y2 required"})
			return
		}
		w, ok := loadWorkspace(c, workspaces)
		if !ok {
			return
		}

		field := geometry.NewRect(*req.X1, *req.Y1, *req.X2, *req.Y2)
		var stored geometry.Rect
		if err := w.Do(func(m *strategy.Model) error {
			if err := m.AddRegion(name, geometry.ToInternal(field)); err != nil {
				return err
			}
			stored, _ = m.FieldRegion(name)
			return nil
		}); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"name": name, "rect": stored})
	}
}

// DeleteRegion removes a region, and its partition mark if it had one.
// Removing an unknown region succeeds.
func DeleteRegion(workspaces *workspace.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, ok := loadWorkspace(c, workspaces)
		if !ok {
			return
		}
		name := c.Param("name")
		if err := w.Do(func(m *strategy.Model) error {
			m.RemoveRegion(name)
			return nil
		}); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// PutPartition marks an existing region as a partition.
func PutPartition(workspaces *workspace.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, ok := loadWorkspace(c, workspaces)
		if !ok {
			return
		}
		name := c.Param("name")
		if err := w.Do(func(m *strategy.Model) error {
			return m.MarkPartition(name)
		}); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"name": name, "is_partition": true})
	}
}

func DeletePartition(workspaces *workspace.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, ok := loadWorkspace(c, workspaces)
		if !ok {
			return
		}
		name := c.Param("name")
		if err := w.Do(func(m *strategy.Model) error {
			m.UnmarkPartition(name)
			return nil
		}); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
