package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"timekeep/internal/store"
)

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	return NewSnapshotStore(NewTestDB(t), nil)
}

func readRawDocument(t *testing.T, s *SnapshotStore, key string) string {
	t.Helper()
	var body string
	err := s.db.QueryRow(`SELECT body FROM documents WHERE key = ?`, key).Scan(&body)
	require.NoError(t, err)
	return body
}

func TestLoad_SeedsDefaultActivities(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	snap, err := s.Load(ctx)
	require.NoError(t, err)

	require.Len(t, snap.Tracking.Activities, 3)
	names := make([]string, 0, 3)
	for _, act := range snap.Tracking.Activities {
		names = append(names, act.Name)
		require.NotEmpty(t, act.ID)
		require.Zero(t, act.TotalSeconds)
	}
	require.Equal(t, []string{"Doing Nothing", "Working", "Studying"}, names)
	require.Nil(t, snap.Tracking.Active)
	require.Equal(t, store.ThemeLight, snap.Theme)
}

func TestLoad_DoesNotReseedEmptyActivityList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// An explicitly saved empty list must stay empty on reload.
	require.NoError(t, s.SaveTracking(ctx, &store.Tracking{
		Activities: []store.Activity{},
		Days:       map[string]store.Day{},
	}))

	snap, err := s.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, snap.Tracking.Activities)
}

func TestSave_RoundTripIsByteStable(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	snap := &store.Snapshot{
		Tracking: store.Tracking{
			Activities: []store.Activity{{ID: "a1", Name: "Working", TotalSeconds: 120}},
			SessionHistory: []store.Session{{
				ActivityID:      "a1",
				ActivityName:    "Working",
				StartTime:       start,
				EndTime:         start.Add(2 * time.Minute),
				DurationSeconds: 120,
			}},
			Days: map[string]store.Day{
				"2026-03-14": {Tasks: []store.DayTask{{ID: "a1", Name: "Working", TimeSpent: 120}}},
			},
		},
		Checklist: store.Checklist{
			Todos:       []store.DailyTodo{{ID: "t1", Name: "Stretch"}},
			Completions: []store.TodoCompletion{{TodoID: "t1", Date: "2026-03-14", Completed: true}},
		},
		Reminders: store.ReminderState{
			Reminders: []store.Reminder{{
				ID:              "r1",
				Name:            "Drink water",
				Type:            store.ReminderInterval,
				IntervalSeconds: 3600,
				LastTriggered:   start,
			}},
			LastPollDate: "2026-03-14",
		},
		Theme: store.ThemeDark,
	}
	require.NoError(t, s.Save(ctx, snap))

	before := map[string]string{}
	for _, key := range []string{keyTracking, keyChecklist, keyReminders, keyTheme} {
		before[key] = readRawDocument(t, s, key)
	}

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, loaded))

	for key, body := range before {
		require.Equal(t, body, readRawDocument(t, s, key), "document %s changed on reload+save", key)
	}
	require.Equal(t, snap, loaded)
}

func TestLoad_MalformedDocumentFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.db.Exec(`INSERT INTO documents (key, body) VALUES (?, ?)`, keyTracking, "{not json")
	require.NoError(t, err)
	_, err = s.db.Exec(`INSERT INTO documents (key, body) VALUES (?, ?)`, keyReminders, "[broken")
	require.NoError(t, err)

	snap, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Tracking.Activities, 3)
	require.Empty(t, snap.Reminders.Reminders)
}

func TestSaveSections_Independent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SaveChecklist(ctx, &store.Checklist{
		Todos: []store.DailyTodo{{ID: "t1", Name: "Walk"}},
	}))
	require.NoError(t, s.SaveTheme(ctx, store.ThemeDark))

	snap, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Checklist.Todos, 1)
	require.Equal(t, store.ThemeDark, snap.Theme)
	// Tracking was never written, so defaults are seeded.
	require.Len(t, snap.Tracking.Activities, 3)
}
