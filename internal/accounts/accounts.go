package accounts

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/coachassist/backend/internal/models"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrCoachNotFound      = errors.New("coach account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// HashToken returns the bcrypt hash stored for a coach access token.
func HashToken(plainToken string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plainToken), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash token: %w", err)
	}
	return string(hashed), nil
}

// VerifyToken checks if the provided token matches the stored hash
func VerifyToken(hashedToken, plainToken string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedToken), []byte(plainToken)) == nil
}

// GetCoach retrieves a coach by username
func GetCoach(db *sqlx.DB, username string) (*models.Coach, error) {
	var coach models.Coach
	err := db.Get(&coach, `SELECT id, username, display_name, token_hash, created_at, updated_at FROM coaches WHERE username=$1`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCoachNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &coach, nil
}

// UpsertCoach creates a coach or replaces the display name and token of an
// existing one (used for seeding).
func UpsertCoach(db *sqlx.DB, username, displayName, plainToken string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username required")
	}
	hashed, err := HashToken(plainToken)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO coaches (username, display_name, token_hash, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (username) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			token_hash = EXCLUDED.token_hash,
			updated_at = NOW()
	`, username, displayName, hashed)
	return err
}

// Authenticate validates a username + token pair.
func Authenticate(db *sqlx.DB, username, token string) (*models.Coach, error) {
	coach, err := GetCoach(db, username)
	if err != nil {
		if errors.Is(err, ErrCoachNotFound) {
			log.Printf("[AUTH] No coach account for %s", username)
			return nil, ErrInvalidCredentials
		}
		log.Printf("[AUTH] Lookup failed for %s: %v", username, err)
		return nil, err
	}

	if !VerifyToken(coach.TokenHash, token) {
		log.Printf("[AUTH] Token verification failed for %s", username)
		return nil, ErrInvalidCredentials
	}
	return coach, nil
}
