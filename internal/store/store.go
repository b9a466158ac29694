package store

import "context"

// Store persists snapshot documents. Every method moves whole documents,
// never individual fields; the caller owns read-modify-write.
type Store interface {
	// Load assembles the full snapshot, substituting defaults for any
	// document that is absent or unreadable.
	Load(ctx context.Context) (*Snapshot, error)

	SaveTracking(ctx context.Context, t *Tracking) error
	SaveChecklist(ctx context.Context, c *Checklist) error
	SaveReminders(ctx context.Context, r *ReminderState) error
	SaveTheme(ctx context.Context, theme Theme) error

	// Save writes every document of the snapshot.
	Save(ctx context.Context, snap *Snapshot) error
}
