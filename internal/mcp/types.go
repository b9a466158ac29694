package mcp

import (
	"timekeep/internal/store"
)

type AddActivityParams struct {
	Name string `json:"name"`
}

type StartActivityParams struct {
	Name string `json:"name,omitempty"`
	ID   string `json:"id,omitempty"`
}

type StopActivityParams struct{}

type RenameActivityParams struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DeleteActivityParams struct {
	ID string `json:"id"`
}

type ListActivitiesParams struct{}

// TrackingResult is the timer state returned by the mutating timer tools.
type TrackingResult struct {
	Activities []store.Activity    `json:"activities"`
	ActiveTask *store.ActiveMarker `json:"activeTask"`
}

type ActivityResult struct {
	Activity store.Activity `json:"activity"`
}

type AddTodoParams struct {
	Name string `json:"name"`
}

type TodoResult struct {
	Todo store.DailyTodo `json:"todo"`
}

type ToggleTodoParams struct {
	ID   string `json:"id"`
	Date string `json:"date,omitempty"`
}

type GetTodoParams struct {
	ID   string `json:"id"`
	Date string `json:"date,omitempty"`
}

type TodoCompletionResult struct {
	TodoID    string `json:"todoId"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

type AddReminderParams struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	IntervalSeconds int64  `json:"interval,omitempty"`
	DailyTime       string `json:"dailyTime,omitempty"`
}

type DeleteReminderParams struct {
	ID string `json:"id"`
}

type ToggleReminderParams struct {
	ID string `json:"id"`
}

type ReminderResult struct {
	Reminder store.Reminder `json:"reminder"`
}

type DeletedResult struct {
	Deleted bool `json:"deleted"`
}

type GetSnapshotParams struct{}

type ExportCSVParams struct{}

type ExportCSVResult struct {
	CSV string `json:"csv"`
}

type SetThemeParams struct {
	Theme string `json:"theme"`
}

type ThemeResult struct {
	Theme store.Theme `json:"theme"`
}
