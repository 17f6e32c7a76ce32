package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/coachassist/backend/internal/casfile"
	"github.com/coachassist/backend/internal/config"
	"github.com/coachassist/backend/internal/metrics"
	"github.com/coachassist/backend/internal/strategy"
	"github.com/coachassist/backend/internal/workspace"
	"github.com/gin-gonic/gin"
)

// loadDocument replaces the workspace model with the parsed document and
// records the outcome. The model is only replaced when the whole document
// could be read.
func loadDocument(w *workspace.Workspace, read func(m *strategy.Model) (casfile.Diagnostics, error)) (casfile.Diagnostics, strategy.Snapshot, error) {
	var diags casfile.Diagnostics
	var snap strategy.Snapshot
	err := w.Do(func(m *strategy.Model) error {
		var err error
		diags, err = read(m)
		if err != nil {
			return err
		}
		snap = m.Snapshot()
		return nil
	})

	switch {
	case err != nil:
		metrics.StrategyLoads.WithLabelValues("error").Inc()
	case len(diags) > 0:
		metrics.StrategyLoads.WithLabelValues("diagnostics").Inc()
		for _, d := range diags {
			metrics.ParseDiagnostics.WithLabelValues(d.Reason).Inc()
		}
	default:
		metrics.StrategyLoads.WithLabelValues("ok").Inc()
	}
	if diags == nil {
		diags = casfile.Diagnostics{}
	}
	return diags, snap, err
}

// PutCas loads a .cas document (the request body) into the workspace.
// Malformed lines are skipped and reported; the rest is loaded.
func PutCas(workspaces *workspace.Manager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, ok := loadWorkspace(c, workspaces)
		if !ok {
			return
		}

		body := http.MaxBytesReader(c.Writer, c.Request.Body, int64(cfg.MaxUploadBytes))
		diags, snap, err := loadDocument(w, func(m *strategy.Model) (casfile.Diagnostics, error) {
			return casfile.Read(body, m)
		})
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("document larger than %d bytes", cfg.MaxUploadBytes)})
				return
			}
			if errors.Is(err, workspace.ErrNotFound) {
				respondError(c, err)
				return
			}
			log.Printf("[CASFILE] Load into workspace %s failed: %v", w.ID, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read document"})
			return
		}

		if len(diags) > 0 {
			log.Printf("[CASFILE] Workspace %s loaded with %d rejected lines", w.ID, len(diags))
		}
		c.JSON(http.StatusOK, gin.H{"diagnostics": diags, "strategy": snap})
	}
}

// GetCas returns the workspace model as a .cas document.
func GetCas(workspaces *workspace.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, ok := loadWorkspace(c, workspaces)
		if !ok {
			return
		}

		var doc string
		if err := w.Do(func(m *strategy.Model) error {
			var err error
			doc, err = casfile.WriteString(m)
			return err
		}); err != nil {
			respondError(c, err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", w.Name()+casfile.Extension))
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(doc))
	}
}
