package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"timekeep/internal/domain/reminder"
	"timekeep/internal/store"
)

const serverInstructions = `timekeep tracks time spent on named activities, runs recurring
reminders, and keeps a daily todo checklist. Exactly one activity runs at a
time; starting one stops the previous. Use get_snapshot to see the full
current state, and export_csv for a per-day time report.`

// TrackingService defines the timer operations needed by MCP.
type TrackingService interface {
	AddActivity(ctx context.Context, name string) (*store.Activity, error)
	Start(ctx context.Context, name string) (store.Tracking, error)
	StartByID(ctx context.Context, id string) (store.Tracking, error)
	Stop(ctx context.Context) (store.Tracking, error)
	Rename(ctx context.Context, id, name string) (*store.Activity, error)
	Delete(ctx context.Context, id string) (store.Tracking, error)
	State() store.Tracking
}

// ChecklistService defines the daily-todo operations needed by MCP.
type ChecklistService interface {
	AddTodo(ctx context.Context, name string) (*store.DailyTodo, error)
	Toggle(ctx context.Context, todoID, date string) (store.TodoCompletion, error)
	Completed(todoID, date string) bool
	State() store.Checklist
}

// ReminderService defines the scheduler operations needed by MCP.
type ReminderService interface {
	Add(ctx context.Context, req reminder.AddRequest) (*store.Reminder, error)
	Delete(ctx context.Context, id string) error
	ToggleChecked(ctx context.Context, id string) (*store.Reminder, error)
	State() store.ReminderState
}

// SettingsService defines the preference operations needed by MCP.
type SettingsService interface {
	SetTheme(ctx context.Context, theme store.Theme) error
	Theme() store.Theme
}

// Exporter renders the combined snapshot document.
type Exporter interface {
	JSON() ([]byte, error)
	CSV() string
}

// Services contains all domain services needed by MCP.
type Services struct {
	Tracking  TrackingService
	Checklist ChecklistService
	Reminders ReminderService
	Settings  SettingsService
	Export    Exporter
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "timekeep",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
