// Package store keeps each coach's strategy library and export history in
// postgres.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/coachassist/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("strategy not found")

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

const strategyColumns = `id, public_id, coach_id, name, cas_text, regions, partitions, created_at, updated_at`

// SaveStrategy stores casText under name for the coach. Saving under an
// existing name overwrites the document and keeps its public id.
func (s *Store) SaveStrategy(ctx context.Context, coachID int, name, casText string, regions, partitions int) (*models.Strategy, error) {
	var st models.Strategy
	err := s.db.GetContext(ctx, &st, `
		INSERT INTO strategies (public_id, coach_id, name, cas_text, regions, partitions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (coach_id, name) DO UPDATE SET
			cas_text = EXCLUDED.cas_text,
			regions = EXCLUDED.regions,
			partitions = EXCLUDED.partitions,
			updated_at = NOW()
		RETURNING `+strategyColumns,
		uuid.NewString(), coachID, name, casText, regions, partitions)
	if err != nil {
		return nil, fmt.Errorf("save strategy %q: %w", name, err)
	}
	log.Printf("[STORE] Saved strategy %s (%s) for coach %d", st.Name, st.PublicID, coachID)
	return &st, nil
}

// ListStrategies returns the coach's library, most recently saved first.
func (s *Store) ListStrategies(ctx context.Context, coachID int) ([]models.Strategy, error) {
	list := []models.Strategy{}
	err := s.db.SelectContext(ctx, &list,
		`SELECT `+strategyColumns+` FROM strategies WHERE coach_id=$1 ORDER BY updated_at DESC, name`, coachID)
	if err != nil {
		return nil, fmt.Errorf("list strategies: %w", err)
	}
	return list, nil
}

func (s *Store) GetStrategy(ctx context.Context, coachID int, publicID string) (*models.Strategy, error) {
	if _, err := uuid.Parse(publicID); err != nil {
		return nil, ErrNotFound
	}
	var st models.Strategy
	err := s.db.GetContext(ctx, &st,
		`SELECT `+strategyColumns+` FROM strategies WHERE coach_id=$1 AND public_id=$2`, coachID, publicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get strategy: %w", err)
	}
	return &st, nil
}

func (s *Store) DeleteStrategy(ctx context.Context, coachID int, publicID string) error {
	if _, err := uuid.Parse(publicID); err != nil {
		return ErrNotFound
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM strategies WHERE coach_id=$1 AND public_id=$2`, coachID, publicID)
	if err != nil {
		return fmt.Errorf("delete strategy: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	log.Printf("[STORE] Deleted strategy %s for coach %d", publicID, coachID)
	return nil
}

// RecordExport appends one rule generation to the history. libraryID is the
// public id of the saved strategy it came from, or empty.
func (s *Store) RecordExport(ctx context.Context, e *models.Export, libraryID string) error {
	if len(e.Options) == 0 {
		e.Options = []byte("{}")
	}
	err := s.db.GetContext(ctx, e, `
		INSERT INTO exports (strategy_id, coach_id, options, digest, rule_count, created_at)
		VALUES ((SELECT id FROM strategies WHERE public_id = NULLIF($1, '')::uuid AND coach_id = $2), $2, $3, $4, $5, NOW())
		RETURNING id, strategy_id, coach_id, options, digest, rule_count, created_at`,
		libraryID, e.CoachID, []byte(e.Options), e.Digest, e.RuleCount)
	if err != nil {
		return fmt.Errorf("record export: %w", err)
	}
	return nil
}

// ListExports returns the coach's latest exports.
func (s *Store) ListExports(ctx context.Context, coachID, limit int) ([]models.Export, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	list := []models.Export{}
	err := s.db.SelectContext(ctx, &list, `
		SELECT id, strategy_id, coach_id, options, digest, rule_count, created_at
		FROM exports WHERE coach_id=$1 ORDER BY created_at DESC LIMIT $2`, coachID, limit)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	return list, nil
}
