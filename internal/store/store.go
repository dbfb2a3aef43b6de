// Package store persists improvement session traces in SQLite and reuses the
// best translation of an already-improved source text.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/valpere/obratno/internal"
	"github.com/valpere/obratno/internal/session"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		source_text TEXT NOT NULL,
		source_lang TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		service TEXT,
		outcome TEXT NOT NULL,
		iterations INTEGER NOT NULL,
		best_text TEXT NOT NULL,
		best_score REAL,
		best_scored BOOLEAN DEFAULT FALSE,
		usage_count INTEGER DEFAULT 1,
		last_used TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS attempts (
		session_id TEXT NOT NULL,
		iteration INTEGER NOT NULL,
		russian_text TEXT NOT NULL,
		back_translated TEXT NOT NULL,
		score REAL,
		scored BOOLEAN DEFAULT FALSE,
		suggestions TEXT,
		PRIMARY KEY (session_id, iteration),
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_lookup ON sessions(source_text, source_lang, target_lang);
	CREATE INDEX IF NOT EXISTS idx_attempts_session ON attempts(session_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveSession persists the session identified by rec together with its full
// attempt trace. The best attempt's text and score are denormalized into the
// sessions row for cheap cached lookup.
func (s *Store) SaveSession(ctx context.Context, rec internal.SessionRecord, sess *session.Session) error {
	best := sess.BestAttempt()
	if best == nil {
		return fmt.Errorf("session has no attempts")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, source_text, source_lang, target_lang, service, outcome, iterations, best_text, best_score, best_scored, last_used, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, normalizeText(rec.SourceText), rec.SourceLang, rec.TargetLang, rec.Service,
		string(sess.Outcome), len(sess.Attempts), best.RussianText, best.Score, best.Scored,
		rec.Timestamp, rec.Timestamp)
	if err != nil {
		return err
	}

	for _, att := range sess.Attempts {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO attempts (session_id, iteration, russian_text, back_translated, score, scored, suggestions)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, att.Iteration, att.RussianText, att.BackTranslated, att.Score, att.Scored, att.Suggestions)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetCachedBest returns the best known translation for a source text, if any
// session has improved it before. Scored results win over unscored ones, then
// higher scores, then recency. A hit bumps the session's usage counter.
func (s *Store) GetCachedBest(ctx context.Context, sourceText, sourceLang, targetLang string) (string, bool, error) {
	var id, bestText string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, best_text FROM sessions
		 WHERE source_text = ? AND source_lang = ? AND target_lang = ? AND outcome != 'cancelled'
		 ORDER BY best_scored DESC, best_score DESC, created_at DESC
		 LIMIT 1`,
		normalizeText(sourceText), sourceLang, targetLang).Scan(&id, &bestText)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE sessions SET usage_count = usage_count + 1, last_used = ? WHERE id = ?`,
		time.Now(), id)

	return bestText, true, err
}

// SessionEntry is a row from the sessions table.
type SessionEntry struct {
	ID         string
	SourceText string
	SourceLang string
	TargetLang string
	Service    string
	Outcome    string
	Iterations int
	BestText   string
	BestScore  float64
	BestScored bool
	UsageCount int
	CreatedAt  time.Time
}

// ListSessions returns all recorded sessions, most recent first.
func (s *Store) ListSessions(ctx context.Context) ([]SessionEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_text, source_lang, target_lang, service, outcome, iterations, best_text, best_score, best_scored, usage_count, created_at
		 FROM sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []SessionEntry
	for rows.Next() {
		var e SessionEntry
		if err := rows.Scan(&e.ID, &e.SourceText, &e.SourceLang, &e.TargetLang, &e.Service, &e.Outcome,
			&e.Iterations, &e.BestText, &e.BestScore, &e.BestScored, &e.UsageCount, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetAttempts returns the attempt trace of one session ordered by iteration.
func (s *Store) GetAttempts(ctx context.Context, sessionID string) ([]session.Attempt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT iteration, russian_text, back_translated, score, scored, suggestions
		 FROM attempts WHERE session_id = ? ORDER BY iteration`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []session.Attempt
	for rows.Next() {
		var att session.Attempt
		if err := rows.Scan(&att.Iteration, &att.RussianText, &att.BackTranslated, &att.Score, &att.Scored, &att.Suggestions); err != nil {
			return nil, err
		}
		attempts = append(attempts, att)
	}
	return attempts, rows.Err()
}

// HistoryStats summarises the session history.
type HistoryStats struct {
	TotalSessions  int
	TotalAttempts  int
	EarlyStopped   int
	ScoredSessions int
	AvgBestScore   float64
}

func (s *Store) Stats(ctx context.Context) (*HistoryStats, error) {
	stats := &HistoryStats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(iterations), 0),
			COALESCE(SUM(CASE WHEN outcome = 'early_stopped' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN best_scored THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(CASE WHEN best_scored THEN best_score END), 0)
		FROM sessions`).Scan(
		&stats.TotalSessions,
		&stats.TotalAttempts,
		&stats.EarlyStopped,
		&stats.ScoredSessions,
		&stats.AvgBestScore,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// ClearHistory removes all sessions and their attempts, returning the number
// of sessions deleted.
func (s *Store) ClearHistory(ctx context.Context) (int64, error) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM attempts`); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeText trims whitespace and applies Unicode NFC normalization
// for consistent cache key comparison.
func normalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}
