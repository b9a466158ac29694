package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"timekeep/internal/store"
)

// Storage keys, one JSON document each.
const (
	keyTracking  = "tracking"
	keyChecklist = "checklist"
	keyReminders = "reminders"
	keyTheme     = "theme"
)

// SnapshotStore implements store.Store on top of the documents table.
type SnapshotStore struct {
	db     *DB
	logger *slog.Logger
}

// NewSnapshotStore creates a new SnapshotStore.
func NewSnapshotStore(db *DB, logger *slog.Logger) *SnapshotStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotStore{db: db, logger: logger}
}

// Load assembles the full snapshot. An absent tracking document seeds the
// default activities; any document that fails to parse is replaced by its
// default and logged, never fatal.
func (s *SnapshotStore) Load(ctx context.Context) (*store.Snapshot, error) {
	snap := &store.Snapshot{
		Checklist: store.DefaultChecklist(),
		Reminders: store.DefaultReminders(),
		Theme:     store.ThemeLight,
	}

	found, err := s.readDocument(ctx, keyTracking, &snap.Tracking)
	if err != nil {
		return nil, err
	}
	if !found {
		snap.Tracking = store.DefaultTracking(uuid.NewString)
	}
	if snap.Tracking.Days == nil {
		snap.Tracking.Days = map[string]store.Day{}
	}

	if _, err := s.readDocument(ctx, keyChecklist, &snap.Checklist); err != nil {
		return nil, err
	}
	if _, err := s.readDocument(ctx, keyReminders, &snap.Reminders); err != nil {
		return nil, err
	}
	if _, err := s.readDocument(ctx, keyTheme, &snap.Theme); err != nil {
		return nil, err
	}
	if snap.Theme != store.ThemeDark {
		snap.Theme = store.ThemeLight
	}

	return snap, nil
}

// SaveTracking writes the tracking document.
func (s *SnapshotStore) SaveTracking(ctx context.Context, t *store.Tracking) error {
	return s.writeDocument(ctx, keyTracking, t)
}

// SaveChecklist writes the checklist document.
func (s *SnapshotStore) SaveChecklist(ctx context.Context, c *store.Checklist) error {
	return s.writeDocument(ctx, keyChecklist, c)
}

// SaveReminders writes the reminder document.
func (s *SnapshotStore) SaveReminders(ctx context.Context, r *store.ReminderState) error {
	return s.writeDocument(ctx, keyReminders, r)
}

// SaveTheme writes the theme document.
func (s *SnapshotStore) SaveTheme(ctx context.Context, theme store.Theme) error {
	return s.writeDocument(ctx, keyTheme, theme)
}

// Save writes every document of the snapshot in one transaction.
func (s *SnapshotStore) Save(ctx context.Context, snap *store.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", store.ErrUnavailable, err)
	}
	defer tx.Rollback()

	sections := []struct {
		key string
		doc any
	}{
		{keyTracking, &snap.Tracking},
		{keyChecklist, &snap.Checklist},
		{keyReminders, &snap.Reminders},
		{keyTheme, snap.Theme},
	}
	for _, section := range sections {
		body, err := json.Marshal(section.doc)
		if err != nil {
			return fmt.Errorf("encoding %s document: %w", section.key, err)
		}
		if err := upsertDocument(ctx, tx, section.key, body); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing snapshot: %v", store.ErrUnavailable, err)
	}
	return nil
}

func (s *SnapshotStore) readDocument(ctx context.Context, key string, out any) (bool, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE key = ?`, key).Scan(&body)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: reading %s document: %v", store.ErrUnavailable, key, err)
	}

	if err := json.Unmarshal([]byte(body), out); err != nil {
		// Treat a corrupt document as absent: fall back to defaults.
		s.logger.Warn("discarding malformed document", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (s *SnapshotStore) writeDocument(ctx context.Context, key string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding %s document: %w", key, err)
	}
	if err := upsertDocument(ctx, s.db.DB, key, body); err != nil {
		return err
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertDocument(ctx context.Context, db execer, key string, body []byte) error {
	query := `
		INSERT INTO documents (key, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`
	if _, err := db.ExecContext(ctx, query, key, string(body), time.Now()); err != nil {
		return fmt.Errorf("%w: writing %s document: %v", store.ErrUnavailable, key, err)
	}
	return nil
}
