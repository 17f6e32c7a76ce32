package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/coachassist/backend/internal/cache"
	"github.com/coachassist/backend/internal/casfile"
	"github.com/coachassist/backend/internal/clang"
	"github.com/coachassist/backend/internal/config"
	"github.com/coachassist/backend/internal/models"
	"github.com/coachassist/backend/internal/store"
	"github.com/coachassist/backend/internal/strategy"
	"github.com/coachassist/backend/internal/workspace"
	"github.com/gin-gonic/gin"
)

// GenerateCLang compiles the workspace into CLang rules. The optional JSON
// body overrides the server's default options field by field.
func GenerateCLang(workspaces *workspace.Manager, exports *cache.ExportCache, st *store.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts := defaultOptions(cfg)
		if err := c.ShouldBindJSON(&opts); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid options"})
			return
		}
		if err := opts.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		w, ok := loadWorkspace(c, workspaces)
		if !ok {
			return
		}

		var text, digest, source string
		if err := w.Do(func(m *strategy.Model) error {
			generate := func() string { return clang.NewGenerator(m, opts).Generate() }
			if exports == nil {
				text, source = generate(), "generated"
				return nil
			}
			doc, err := json.Marshal(m.Snapshot())
			if err != nil {
				return err
			}
			text, digest, source = exports.Generate(c.Request.Context(), string(doc), opts, generate)
			return nil
		}); err != nil {
			respondError(c, err)
			return
		}

		if st != nil {
			recordExport(c, st, w, opts, digest, text)
		}

		c.Header("X-Cache", source)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", casfile.ExportName(w.Name()+casfile.Extension)))
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
	}
}

func recordExport(c *gin.Context, st *store.Store, w *workspace.Workspace, opts clang.Options, digest, text string) {
	if digest == "" {
		digest = cache.Key(text, opts)
	}
	optsJSON, _ := json.Marshal(opts)
	e := &models.Export{
		CoachID:   c.GetInt("coach_id"),
		Options:   optsJSON,
		Digest:    digest,
		RuleCount: strings.Count(text, "(definerule "),
	}
	if err := st.RecordExport(c.Request.Context(), e, w.Info().LibraryID); err != nil {
		log.Printf("[CLANG] Export of workspace %s not recorded: %v", w.ID, err)
	}
}
