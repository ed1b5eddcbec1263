package server

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/leadscout/leadscout/internal/lead"
)

// dedupeWindow is how long a captured page URL blocks re-capture.
const dedupeWindow = 7 * 24 * time.Hour

const schema = `
CREATE TABLE IF NOT EXISTS captures (
	page_url    TEXT NOT NULL,
	captured_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_captures_page_url ON captures (page_url);

CREATE TABLE IF NOT EXISTS leads (
	id                       INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp_iso            TEXT NOT NULL,
	name                     TEXT NOT NULL,
	title                    TEXT NOT NULL,
	company                  TEXT NOT NULL,
	location                 TEXT NOT NULL,
	page_url                 TEXT NOT NULL,
	score                    INTEGER NOT NULL,
	tier                     TEXT NOT NULL,
	evidence                 TEXT NOT NULL,
	suggested_contact_method TEXT NOT NULL,
	suggested_angle          TEXT NOT NULL,
	outreach_hook            TEXT NOT NULL,
	call_to_action           TEXT NOT NULL,
	onboarding_next_step     TEXT NOT NULL,
	status                   TEXT NOT NULL,
	pipeline_stage           TEXT NOT NULL,
	next_action              TEXT NOT NULL,
	followup_date            TEXT NOT NULL,
	notes                    TEXT NOT NULL
);
`

// CaptureStore persists appended leads and the 7-day dedupe window in a local
// SQLite database.
type CaptureStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewCaptureStore opens (or creates) the database at path and ensures the
// schema exists. Use ":memory:" for an ephemeral store.
func NewCaptureStore(path string) (*CaptureStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open capture store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init capture store schema: %w", err)
	}
	return &CaptureStore{db: db, now: time.Now}, nil
}

// Close releases the underlying database handle.
func (s *CaptureStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close capture store: %w", err)
	}
	return nil
}

// IsDuplicate reports whether pageURL was captured within the dedupe window.
// Expired entries are pruned on every check so the table stays small.
func (s *CaptureStore) IsDuplicate(ctx context.Context, pageURL string) (bool, error) {
	cutoff := s.now().Add(-dedupeWindow).Unix()
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM captures WHERE captured_at <= ?`, cutoff); err != nil {
		return false, fmt.Errorf("prune captures: %w", err)
	}

	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM captures WHERE page_url = ? AND captured_at > ?)`,
		pageURL, cutoff).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check duplicate capture: %w", err)
	}
	return exists, nil
}

// RecordCapture marks pageURL as captured now.
func (s *CaptureStore) RecordCapture(ctx context.Context, pageURL string) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO captures (page_url, captured_at) VALUES (?, ?)`,
		pageURL, s.now().Unix()); err != nil {
		return fmt.Errorf("record capture: %w", err)
	}
	return nil
}

// AppendLead persists one lead row.
func (s *CaptureStore) AppendLead(ctx context.Context, row lead.Row) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leads (
			timestamp_iso, name, title, company, location, page_url,
			score, tier, evidence, suggested_contact_method, suggested_angle,
			outreach_hook, call_to_action, onboarding_next_step,
			status, pipeline_stage, next_action, followup_date, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.TimestampISO, row.Name, row.Title, row.Company, row.Location, row.PageURL,
		row.Score, string(row.Tier), row.Evidence, row.SuggestedContactMethod, row.SuggestedAngle,
		row.OutreachHook, row.CallToAction, row.OnboardingNextStep,
		row.Status, row.PipelineStage, row.NextAction, row.FollowupDate, row.Notes)
	if err != nil {
		return fmt.Errorf("append lead: %w", err)
	}
	return nil
}

// CountLeads reports how many leads have been appended.
func (s *CaptureStore) CountLeads(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return n, nil
}
