package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL    string
	MigrateOnStart bool
	MigrationsPath string

	// Redis
	RedisURL string

	// Server
	Port           string
	FrontendURL    string
	MaxUploadBytes int

	// Workspaces
	WorkspaceIdleMinutes  int
	WorkspacePollSeconds  int
	ExportCacheTTLSeconds int

	// Rule generation defaults
	CLangAddPlayOn         bool
	CLangEnableShooting    bool
	CLangFreedomRadius     float64
	CLangPositioningRadius float64
	CLangRulePrefix        string

	// Security
	JWTSecret         string
	SessionTimeoutMin int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Database
		DatabaseURL:    getEnv("DATABASE_URL", "postgres://localhost:5432/coachassist?sslmode=disable"),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", false),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),

		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		// Server
		Port:           getEnv("APP_PORT", "8080"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:5173"),
		MaxUploadBytes: getEnvInt("MAX_UPLOAD_BYTES", 1<<20),

		// Workspaces
		WorkspaceIdleMinutes:  getEnvInt("WORKSPACE_IDLE_MINUTES", 120),
		WorkspacePollSeconds:  getEnvInt("WORKSPACE_POLL_SECONDS", 60),
		ExportCacheTTLSeconds: getEnvInt("EXPORT_CACHE_TTL_SECONDS", 900),

		// Rule generation defaults
		CLangAddPlayOn:         getEnvBool("CLANG_ADD_PLAY_ON", false),
		CLangEnableShooting:    getEnvBool("CLANG_ENABLE_SHOOTING", true),
		CLangFreedomRadius:     getEnvFloat("CLANG_FREEDOM_RADIUS", -1),
		CLangPositioningRadius: getEnvFloat("CLANG_POSITIONING_RADIUS", -1),
		CLangRulePrefix:        getEnv("CLANG_RULE_PREFIX", ""),

		// Security
		JWTSecret:         getEnv("JWT_SECRET", "change-me-in-production"),
		SessionTimeoutMin: getEnvInt("SESSION_TIMEOUT_MINUTES", 720),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
