package testserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"timekeep/internal/domain/checklist"
	"timekeep/internal/domain/reminder"
	"timekeep/internal/domain/settings"
	"timekeep/internal/domain/tracking"
	"timekeep/internal/export"
	"timekeep/internal/mcp"
	"timekeep/internal/sqlite"
	"timekeep/internal/transport"
)

// TestServer runs the full HTTP stack against an in-memory database.
type TestServer struct {
	Server    *httptest.Server
	DB        *sqlite.DB
	Tracking  *tracking.Service
	Checklist *checklist.Service
	Reminders *reminder.Service
	Settings  *settings.Service
}

func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	snapStore := sqlite.NewSnapshotStore(db, nil)

	trackingSvc := tracking.NewService(snapStore, nil)
	checklistSvc := checklist.NewService(snapStore, nil)
	settingsSvc := settings.NewService(snapStore, nil)
	reminderSvc := reminder.NewService(snapStore, &reminder.LogNotifier{}, nil)

	ctx := context.Background()
	require.NoError(t, trackingSvc.Initialize(ctx))
	require.NoError(t, checklistSvc.Initialize(ctx))
	require.NoError(t, reminderSvc.Initialize(ctx))
	require.NoError(t, settingsSvc.Initialize(ctx))

	exporter := &export.Exporter{
		Tracking:  trackingSvc,
		Checklist: checklistSvc,
		Reminders: reminderSvc,
		Settings:  settingsSvc,
	}

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Tracking:  trackingSvc,
			Checklist: checklistSvc,
			Reminders: reminderSvc,
			Settings:  settingsSvc,
			Export:    exporter,
		},
	})

	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		nil,
	)
	server := httptest.NewServer(transport.NewRouter(mcpHandler, exporter))

	ts := &TestServer{
		Server:    server,
		DB:        db,
		Tracking:  trackingSvc,
		Checklist: checklistSvc,
		Reminders: reminderSvc,
		Settings:  settingsSvc,
	}

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}
