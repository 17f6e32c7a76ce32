package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coachassist/backend/internal/api"
	"github.com/coachassist/backend/internal/cache"
	"github.com/coachassist/backend/internal/config"
	"github.com/coachassist/backend/internal/database"
	"github.com/coachassist/backend/internal/migrations"
	"github.com/coachassist/backend/internal/redis"
	"github.com/coachassist/backend/internal/store"
	"github.com/coachassist/backend/internal/workspace"
	"github.com/coachassist/backend/internal/ws"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if cfg.MigrateOnStart {
		log.Println("[MIGRATE] Running DB migrations on startup...")
		if err := migrations.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	rdb, err := redis.Connect(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	exports, err := cache.New(rdb, time.Duration(cfg.ExportCacheTTLSeconds)*time.Second)
	if err != nil {
		log.Fatalf("Failed to create export cache: %v", err)
	}
	defer exports.Close()

	// Editors of a workspace may be connected to any instance; events travel
	// through redis and each instance relays them to its own hub.
	hub := ws.NewHub()
	go hub.Run(ctx)
	notifier := ws.NewNotifier(hub, rdb)
	notifier.StartRelay(ctx)

	workspaces := workspace.NewManager(notifier)
	workspaces.StartIdleWorker(ctx,
		time.Duration(cfg.WorkspacePollSeconds)*time.Second,
		time.Duration(cfg.WorkspaceIdleMinutes)*time.Minute)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	api.SetupRoutes(router, api.Services{
		DB:         db,
		Store:      store.New(db),
		Exports:    exports,
		Workspaces: workspaces,
		Hub:        hub,
	}, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Starting Coach Assistant server on port %s", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
	log.Println("Server stopped")
}
