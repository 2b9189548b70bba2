// Package store persists per-session UI preferences in SQLite. Weather data
// is never stored.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/lox/skycast/internal/models"
)

type Store struct {
	db  *sql.DB
	log zerolog.Logger
	now func() time.Time
}

func New(db *sql.DB, log zerolog.Logger) *Store {
	return &Store{
		db:  db,
		log: log.With().Str("component", "store").Logger(),
		now: time.Now,
	}
}

// Open opens the database at path and applies pending migrations.
func Open(ctx context.Context, path string, log zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One writer avoids SQLITE_BUSY under concurrent sessions.
	db.SetMaxOpenConns(1)

	s := New(db, log)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// LoadPrefs returns the saved preferences for a session, and false when none exist.
func (s *Store) LoadPrefs(ctx context.Context, sessionID string) (models.SessionPrefs, bool, error) {
	var p models.SessionPrefs
	err := s.db.QueryRowContext(ctx,
		`SELECT dark_mode, search_text FROM session_prefs WHERE session_id = ?`, sessionID,
	).Scan(&p.DarkMode, &p.SearchText)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SessionPrefs{}, false, nil
	}
	if err != nil {
		return models.SessionPrefs{}, false, fmt.Errorf("load prefs: %w", err)
	}
	return p, true, nil
}

func (s *Store) SavePrefs(ctx context.Context, sessionID string, p models.SessionPrefs) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_prefs (session_id, dark_mode, search_text, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			dark_mode = excluded.dark_mode,
			search_text = excluded.search_text,
			updated_at = excluded.updated_at
	`, sessionID, p.DarkMode, p.SearchText, s.now().UTC())
	if err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	return nil
}

// DeletePrefsBefore removes preferences not updated since cutoff.
func (s *Store) DeletePrefsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM session_prefs WHERE updated_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete prefs: %w", err)
	}
	return res.RowsAffected()
}

// RunPruner deletes preferences older than maxAge every interval until ctx
// is done.
func (s *Store) RunPruner(ctx context.Context, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.DeletePrefsBefore(ctx, s.now().Add(-maxAge))
			if err != nil {
				s.log.Error().Err(err).Msg("prune prefs")
				continue
			}
			if n > 0 {
				s.log.Info().Int64("deleted", n).Msg("pruned session prefs")
			}
		}
	}
}
