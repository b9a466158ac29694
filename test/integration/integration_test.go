package integration_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"timekeep/internal/domain/checklist"
	"timekeep/internal/domain/reminder"
	"timekeep/internal/domain/settings"
	"timekeep/internal/domain/tracking"
	"timekeep/internal/sqlite"
)

type testEnv struct {
	db    *sqlite.DB
	store *sqlite.SnapshotStore

	trackingSvc  *tracking.Service
	checklistSvc *checklist.Service
	reminderSvc  *reminder.Service
	settingsSvc  *settings.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	return newEnvOverDB(t, db)
}

// newEnvOverDB builds fresh services over an existing database, simulating
// a process restart that reloads persisted state.
func newEnvOverDB(t *testing.T, db *sqlite.DB) *testEnv {
	t.Helper()
	ctx := context.Background()

	snapStore := sqlite.NewSnapshotStore(db, nil)
	trackingSvc := tracking.NewService(snapStore, nil)
	checklistSvc := checklist.NewService(snapStore, nil)
	reminderSvc := reminder.NewService(snapStore, nil, nil)
	settingsSvc := settings.NewService(snapStore, nil)

	require.NoError(t, trackingSvc.Initialize(ctx))
	require.NoError(t, checklistSvc.Initialize(ctx))
	require.NoError(t, reminderSvc.Initialize(ctx))
	require.NoError(t, settingsSvc.Initialize(ctx))

	return &testEnv{
		db:           db,
		store:        snapStore,
		trackingSvc:  trackingSvc,
		checklistSvc: checklistSvc,
		reminderSvc:  reminderSvc,
		settingsSvc:  settingsSvc,
	}
}

func TestIntegration_TimerPersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	state, err := env.trackingSvc.Start(ctx, "Working")
	require.NoError(t, err)
	require.NotNil(t, state.Active)

	for i := 0; i < 3; i++ {
		env.trackingSvc.Tick(ctx)
	}

	state, err = env.trackingSvc.Stop(ctx)
	require.NoError(t, err)
	require.Nil(t, state.Active)
	require.Len(t, state.SessionHistory, 1)

	// New services over the same database see the persisted totals.
	restarted := newEnvOverDB(t, env.db)
	reloaded := restarted.trackingSvc.State()
	require.Nil(t, reloaded.Active)
	require.Len(t, reloaded.SessionHistory, 1)

	var total int64
	for _, act := range reloaded.Activities {
		if act.Name == "Working" {
			total = act.TotalSeconds
		}
	}
	require.Equal(t, int64(3), total)
}

func TestIntegration_ChecklistAndRemindersPersist(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	todo, err := env.checklistSvc.AddTodo(ctx, "Stretch")
	require.NoError(t, err)
	_, err = env.checklistSvc.Toggle(ctx, todo.ID, "2026-03-14")
	require.NoError(t, err)

	rem, err := env.reminderSvc.Add(ctx, reminder.AddRequest{
		Name:            "Drink water",
		Type:            "interval",
		IntervalSeconds: 3600,
	})
	require.NoError(t, err)
	_, err = env.reminderSvc.ToggleChecked(ctx, rem.ID)
	require.NoError(t, err)

	restarted := newEnvOverDB(t, env.db)

	require.True(t, restarted.checklistSvc.Completed(todo.ID, "2026-03-14"))

	remState := restarted.reminderSvc.State()
	require.Len(t, remState.Reminders, 1)
	require.True(t, remState.Reminders[0].CheckedToday)
	require.Len(t, remState.History, 1)
}

func TestIntegration_ThemePersists(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.NoError(t, env.settingsSvc.SetTheme(ctx, "dark"))

	restarted := newEnvOverDB(t, env.db)
	require.Equal(t, "dark", string(restarted.settingsSvc.Theme()))
}

func TestIntegration_DefaultActivitiesSeededOnce(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	first := env.trackingSvc.State()
	require.Len(t, first.Activities, 3)

	_, err := env.trackingSvc.Delete(ctx, first.Activities[0].ID)
	require.NoError(t, err)

	// A restart must not reseed the deleted default.
	restarted := newEnvOverDB(t, env.db)
	require.Len(t, restarted.trackingSvc.State().Activities, 2)
}
