package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/coachassist/backend/internal/casfile"
	"github.com/coachassist/backend/internal/geometry"
	"github.com/coachassist/backend/internal/strategy"
	"github.com/coachassist/backend/internal/workspace"
	"github.com/gin-gonic/gin"
)

type coefsRequest struct {
	C1 *float64 `json:"c1" binding:"required"`
	C2 *float64 `json:"c2" binding:"required"`
	O1 *float64 `json:"o1" binding:"required"`
	O2 *float64 `json:"o2" binding:"required"`
}

// PutCoefs stores the positioning map of a player for a partition. The
// partition does not have to exist yet; entries for missing partitions are
// kept but neither saved nor generated.
func PutCoefs(workspaces *workspace.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		player, ok := playerParam(c.Param("label"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player label must be 1-9, A or B"})
			return
		}
		partition := c.Param("partition")
		if !casfile.ValidName(partition) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid partition name"})
			return
		}
		var req coefsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "c1, c2, o1 and o2 required"})
			return
		}
		w, ok := loadWorkspace(c, workspaces)
		if !ok {
			return
		}

		coefs := geometry.NewCoefs(*req.C1, *req.C2, *req.O1, *req.O2)
		var live bool
		if err := w.Do(func(m *strategy.Model) error {
			if err := m.SetPlayerCoefs(player, partition, coefs); err != nil {
				return err
			}
			live = m.IsPartition(partition)
			return nil
		}); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"player": player, "partition": partition, "coefs": coefs, "active": live})
	}
}

func GetCoefs(workspaces *workspace.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		player, ok := playerParam(c.Param("label"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player label must be 1-9, A or B"})
			return
		}
		w, ok := loadWorkspace(c, workspaces)
		if !ok {
			return
		}

		partition := c.Param("partition")
		var coefs geometry.Coefs
		var found, live bool
		_ = w.Do(func(m *strategy.Model) error {
			coefs, found = m.PlayerCoefs(player, partition)
			live = m.IsPartition(partition)
			return nil
		})
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "no coefficients for this player and partition"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"player": player, "partition": partition, "coefs": coefs, "active": live})
	}
}

// GetPosition evaluates where a player stands for a ball position given in
// field coordinates.
func GetPosition(workspaces *workspace.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		player, ok := playerParam(c.Query("player"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player label must be 1-9, A or B"})
			return
		}
		x, errX := strconv.ParseFloat(c.Query("x"), 64)
		y, errY := strconv.ParseFloat(c.Query("y"), 64)
		if errX != nil || errY != nil || !finite(x) || !finite(y) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "x and y must be numbers"})
			return
		}
		w, ok := loadWorkspace(c, workspaces)
		if !ok {
			return
		}

		var pos geometry.Point
		var partition string
		var found bool
		_ = w.Do(func(m *strategy.Model) error {
			pos, partition, found = m.PositionFor(player, geometry.NewPoint(x, y))
			return nil
		})
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "no partition positions this player for that ball"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"player": player, "partition": partition, "position": pos})
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
