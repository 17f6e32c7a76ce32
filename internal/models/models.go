package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Coach is an account allowed to edit and store strategies.
type Coach struct {
	ID          int       `db:"id" json:"id"`
	Username    string    `db:"username" json:"username"`
	DisplayName string    `db:"display_name" json:"display_name"`
	TokenHash   string    `db:"token_hash" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Strategy is a saved .cas document in a coach's library.
type Strategy struct {
	ID         int       `db:"id" json:"-"`
	PublicID   string    `db:"public_id" json:"id"`
	CoachID    int       `db:"coach_id" json:"-"`
	Name       string    `db:"name" json:"name"`
	CasText    string    `db:"cas_text" json:"-"`
	Regions    int       `db:"regions" json:"regions"`
	Partitions int       `db:"partitions" json:"partitions"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Export records one rule generation.
type Export struct {
	ID         int             `db:"id" json:"id"`
	StrategyID sql.NullInt64   `db:"strategy_id" json:"strategy_id,omitempty"`
	CoachID    int             `db:"coach_id" json:"coach_id"`
	Options    json.RawMessage `db:"options" json:"options"`
	Digest     string          `db:"digest" json:"digest"`
	RuleCount  int             `db:"rule_count" json:"rule_count"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}
