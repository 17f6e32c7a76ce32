package main

import (
	"context"
	"log"
	"os"

	"github.com/coachassist/backend/internal/accounts"
	"github.com/coachassist/backend/internal/config"
	"github.com/coachassist/backend/internal/database"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	username := os.Getenv("COACH_USERNAME")
	if username == "" {
		username = "coach"
		log.Printf("Using default coach username: %s", username)
	}

	token := os.Getenv("COACH_TOKEN")
	if token == "" {
		token = "change-me-in-production"
		log.Printf("WARNING: Using default coach token. Set COACH_TOKEN env var in production!")
	}

	displayName := os.Getenv("COACH_DISPLAY_NAME")
	if displayName == "" {
		displayName = "Head Coach"
	}

	if err := accounts.UpsertCoach(db, username, displayName, token); err != nil {
		log.Fatalf("Failed to create coach account: %v", err)
	}

	log.Printf("✓ Coach account created/updated successfully")
	log.Printf("  Username: %s", username)
	log.Printf("  Display Name: %s", displayName)
	log.Println("\nLog in with POST /api/v1/auth/login using this username and token.")
}
