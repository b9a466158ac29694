package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"timekeep/internal/domain/reminder"
	"timekeep/internal/store"
)

// registerTools wires every tool onto the server. Each handler delegates to
// a domain service and maps domain errors to tool errors.
func registerTools(server *sdkmcp.Server, svc Services) {
	// Timer
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_activity",
		Description: "Add a new activity without starting it",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in AddActivityParams) (*sdkmcp.CallToolResult, ActivityResult, error) {
		act, err := svc.Tracking.AddActivity(ctx, in.Name)
		if err != nil {
			return toolError(err), ActivityResult{}, nil
		}
		return nil, ActivityResult{Activity: *act}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "start_activity",
		Description: "Start timing an activity by name or id. Starting the running activity stops it; starting another switches to it. An unknown name creates the activity first.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in StartActivityParams) (*sdkmcp.CallToolResult, TrackingResult, error) {
		var (
			state store.Tracking
			err   error
		)
		switch {
		case in.ID != "":
			state, err = svc.Tracking.StartByID(ctx, in.ID)
		case in.Name != "":
			state, err = svc.Tracking.Start(ctx, in.Name)
		default:
			return toolError(fmt.Errorf("%w: name or id is required", errInvalidParams)), TrackingResult{}, nil
		}
		if err != nil {
			return toolError(err), TrackingResult{}, nil
		}
		return nil, trackingResult(state), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "stop_activity",
		Description: "Stop the running activity, if any",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in StopActivityParams) (*sdkmcp.CallToolResult, TrackingResult, error) {
		state, err := svc.Tracking.Stop(ctx)
		if err != nil {
			return toolError(err), TrackingResult{}, nil
		}
		return nil, trackingResult(state), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "rename_activity",
		Description: "Rename an activity, keeping its accumulated time",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in RenameActivityParams) (*sdkmcp.CallToolResult, ActivityResult, error) {
		act, err := svc.Tracking.Rename(ctx, in.ID, in.Name)
		if err != nil {
			return toolError(err), ActivityResult{}, nil
		}
		return nil, ActivityResult{Activity: *act}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_activity",
		Description: "Delete an activity. If it is running, its session is closed first.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in DeleteActivityParams) (*sdkmcp.CallToolResult, TrackingResult, error) {
		state, err := svc.Tracking.Delete(ctx, in.ID)
		if err != nil {
			return toolError(err), TrackingResult{}, nil
		}
		return nil, trackingResult(state), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_activities",
		Description: "List all activities with their accumulated totals",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ListActivitiesParams) (*sdkmcp.CallToolResult, TrackingResult, error) {
		return nil, trackingResult(svc.Tracking.State()), nil
	})

	// Checklist
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_todo",
		Description: "Add a recurring daily todo",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in AddTodoParams) (*sdkmcp.CallToolResult, TodoResult, error) {
		todo, err := svc.Checklist.AddTodo(ctx, in.Name)
		if err != nil {
			return toolError(err), TodoResult{}, nil
		}
		return nil, TodoResult{Todo: *todo}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_todo",
		Description: "Toggle a todo's completion for a date (YYYY-MM-DD, defaults to today)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ToggleTodoParams) (*sdkmcp.CallToolResult, TodoCompletionResult, error) {
		completion, err := svc.Checklist.Toggle(ctx, in.ID, in.Date)
		if err != nil {
			return toolError(err), TodoCompletionResult{}, nil
		}
		return nil, TodoCompletionResult{
			TodoID:    completion.TodoID,
			Date:      completion.Date,
			Completed: completion.Completed,
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_todo",
		Description: "Report whether a todo is completed on a date (YYYY-MM-DD, defaults to today)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in GetTodoParams) (*sdkmcp.CallToolResult, TodoCompletionResult, error) {
		date := in.Date
		if date == "" {
			date = store.Date(timeNow())
		}
		return nil, TodoCompletionResult{
			TodoID:    in.ID,
			Date:      date,
			Completed: svc.Checklist.Completed(in.ID, date),
		}, nil
	})

	// Reminders
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_reminder",
		Description: "Add a reminder. Type 'interval' repeats every interval seconds; type 'daily' fires at dailyTime (HH:MM).",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in AddReminderParams) (*sdkmcp.CallToolResult, ReminderResult, error) {
		rem, err := svc.Reminders.Add(ctx, reminder.AddRequest{
			Name:            in.Name,
			Type:            store.ReminderType(in.Type),
			IntervalSeconds: in.IntervalSeconds,
			DailyTime:       in.DailyTime,
		})
		if err != nil {
			return toolError(err), ReminderResult{}, nil
		}
		return nil, ReminderResult{Reminder: *rem}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_reminder",
		Description: "Delete a reminder. Its acknowledgement history is kept.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in DeleteReminderParams) (*sdkmcp.CallToolResult, DeletedResult, error) {
		if err := svc.Reminders.Delete(ctx, in.ID); err != nil {
			return toolError(err), DeletedResult{}, nil
		}
		return nil, DeletedResult{Deleted: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_reminder",
		Description: "Toggle a reminder's done-for-today acknowledgement",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ToggleReminderParams) (*sdkmcp.CallToolResult, ReminderResult, error) {
		rem, err := svc.Reminders.ToggleChecked(ctx, in.ID)
		if err != nil {
			return toolError(err), ReminderResult{}, nil
		}
		return nil, ReminderResult{Reminder: *rem}, nil
	})

	// Snapshot and export
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_snapshot",
		Description: "Get the full application state as pretty-printed JSON",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in GetSnapshotParams) (*sdkmcp.CallToolResult, any, error) {
		data, err := svc.Export.JSON()
		if err != nil {
			return toolError(err), nil, nil
		}
		return &sdkmcp.CallToolResult{
			Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
		}, nil, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_csv",
		Description: "Export per-day time totals as CSV (Date,Task,Time (hours))",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ExportCSVParams) (*sdkmcp.CallToolResult, ExportCSVResult, error) {
		return nil, ExportCSVResult{CSV: svc.Export.CSV()}, nil
	})

	// Settings
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_theme",
		Description: "Set the UI theme preference (light or dark)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in SetThemeParams) (*sdkmcp.CallToolResult, ThemeResult, error) {
		if err := svc.Settings.SetTheme(ctx, store.Theme(in.Theme)); err != nil {
			return toolError(err), ThemeResult{}, nil
		}
		return nil, ThemeResult{Theme: svc.Settings.Theme()}, nil
	})
}

func trackingResult(state store.Tracking) TrackingResult {
	return TrackingResult{
		Activities: state.Activities,
		ActiveTask: state.Active,
	}
}
