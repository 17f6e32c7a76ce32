package api

import (
	"log"

	"github.com/coachassist/backend/internal/api/handlers"
	"github.com/coachassist/backend/internal/cache"
	"github.com/coachassist/backend/internal/config"
	"github.com/coachassist/backend/internal/metrics"
	"github.com/coachassist/backend/internal/middleware"
	"github.com/coachassist/backend/internal/store"
	"github.com/coachassist/backend/internal/workspace"
	"github.com/coachassist/backend/internal/ws"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Services are the long-lived components the handlers work with. DB, Store
// and Exports may be nil; the routes depending on them then answer 503 or
// skip caching.
type Services struct {
	DB         *sqlx.DB
	Store      *store.Store
	Exports    *cache.ExportCache
	Workspaces *workspace.Manager
	Hub        *ws.Hub
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, svc Services, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(metrics.Middleware())

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Next()
		})
		log.Println("[DEV MODE] no-cache headers enabled for all routes")
	}

	router.GET("/metrics", metrics.Handler())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck(svc.DB, svc.Workspaces))
		v1.GET("/config", handlers.GetConfig(cfg))
		v1.POST("/auth/login", handlers.Login(svc.DB, cfg))

		authed := v1.Group("", middleware.RequireCoach(cfg))

		wsGroup := authed.Group("/workspaces")
		{
			wsGroup.POST("", handlers.CreateWorkspace(svc.Workspaces))
			wsGroup.GET("", handlers.ListWorkspaces(svc.Workspaces))
			wsGroup.GET("/:id", handlers.GetWorkspace(svc.Workspaces))
			wsGroup.DELETE("/:id", handlers.CloseWorkspace(svc.Workspaces))
			wsGroup.POST("/:id/clear", handlers.ClearWorkspace(svc.Workspaces))

			wsGroup.PUT("/:id/regions/:name", handlers.PutRegion(svc.Workspaces))
			wsGroup.DELETE("/:id/regions/:name", handlers.DeleteRegion(svc.Workspaces))
			wsGroup.PUT("/:id/partitions/:name", handlers.PutPartition(svc.Workspaces))
			wsGroup.DELETE("/:id/partitions/:name", handlers.DeletePartition(svc.Workspaces))

			wsGroup.PUT("/:id/players/:label/coefs/:partition", handlers.PutCoefs(svc.Workspaces))
			wsGroup.GET("/:id/players/:label/coefs/:partition", handlers.GetCoefs(svc.Workspaces))
			wsGroup.GET("/:id/position", handlers.GetPosition(svc.Workspaces))

			wsGroup.PUT("/:id/cas", handlers.PutCas(svc.Workspaces, cfg))
			wsGroup.GET("/:id/cas", handlers.GetCas(svc.Workspaces))
			wsGroup.POST("/:id/clang", handlers.GenerateCLang(svc.Workspaces, svc.Exports, svc.Store, cfg))
			wsGroup.POST("/:id/library", handlers.SaveToLibrary(svc.Workspaces, svc.Store))

			wsGroup.GET("/:id/ws", middleware.WebSocketOriginCheck(cfg), handlers.HandleWorkspaceWebSocket(svc.Hub, svc.Workspaces))
		}

		library := authed.Group("/library")
		{
			library.GET("", handlers.ListLibrary(svc.Store))
			library.POST("/:public_id/open", handlers.OpenFromLibrary(svc.Workspaces, svc.Store))
			library.DELETE("/:public_id", handlers.DeleteFromLibrary(svc.Store))
		}

		authed.GET("/exports", handlers.ListExports(svc.Store))
	}
}
