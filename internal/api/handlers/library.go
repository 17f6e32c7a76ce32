package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/coachassist/backend/internal/casfile"
	"github.com/coachassist/backend/internal/store"
	"github.com/coachassist/backend/internal/strategy"
	"github.com/coachassist/backend/internal/workspace"
	"github.com/gin-gonic/gin"
)

type saveRequest struct {
	Name string `json:"name" binding:"max=128"`
}

func libraryUnavailable(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "strategy library unavailable"})
}

// SaveToLibrary stores the workspace as a .cas document in the coach's
// library, under the workspace name unless the body names another.
func SaveToLibrary(workspaces *workspace.Manager, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if st == nil {
			libraryUnavailable(c)
			return
		}
		var req saveRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		w, ok := loadWorkspace(c, workspaces)
		if !ok {
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			name = w.Name()
		}

		var doc string
		var regions, partitions int
		if err := w.Do(func(m *strategy.Model) error {
			var err error
			doc, err = casfile.WriteString(m)
			regions, partitions = len(m.RegionNames()), len(m.PartitionNames())
			return err
		}); err != nil {
			respondError(c, err)
			return
		}

		saved, err := st.SaveStrategy(c.Request.Context(), c.GetInt("coach_id"), name, doc, regions, partitions)
		if err != nil {
			log.Printf("[STORE] Save of workspace %s failed: %v", w.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save strategy"})
			return
		}
		w.SetLibrary(saved.PublicID, saved.Name)
		c.JSON(http.StatusOK, saved)
	}
}

func ListLibrary(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if st == nil {
			libraryUnavailable(c)
			return
		}
		list, err := st.ListStrategies(c.Request.Context(), c.GetInt("coach_id"))
		if err != nil {
			log.Printf("[STORE] %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch strategies"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"strategies": list})
	}
}

// OpenFromLibrary loads a saved strategy into a new workspace.
func OpenFromLibrary(workspaces *workspace.Manager, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if st == nil {
			libraryUnavailable(c)
			return
		}
		coachID := c.GetInt("coach_id")
		saved, err := st.GetStrategy(c.Request.Context(), coachID, c.Param("public_id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "strategy not found"})
				return
			}
			log.Printf("[STORE] %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch strategy"})
			return
		}

		w, err := workspaces.Create(coachID, saved.Name)
		if err != nil {
			respondError(c, err)
			return
		}
		w.SetLibrary(saved.PublicID, "")

		diags, snap, err := loadDocument(w, func(m *strategy.Model) (casfile.Diagnostics, error) {
			return casfile.ReadString(saved.CasText, m)
		})
		if err != nil {
			log.Printf("[CASFILE] Opening %s failed: %v", saved.PublicID, err)
			workspaces.Close(w.ID, coachID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read stored strategy"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"workspace": w.Info(), "diagnostics": diags, "strategy": snap})
	}
}

func DeleteFromLibrary(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if st == nil {
			libraryUnavailable(c)
			return
		}
		err := st.DeleteStrategy(c.Request.Context(), c.GetInt("coach_id"), c.Param("public_id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "strategy not found"})
				return
			}
			log.Printf("[STORE] %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete strategy"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ListExports returns the coach's recent rule generations.
func ListExports(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if st == nil {
			libraryUnavailable(c)
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		list, err := st.ListExports(c.Request.Context(), c.GetInt("coach_id"), limit)
		if err != nil {
			log.Printf("[STORE] %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch exports"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"exports": list})
	}
}
