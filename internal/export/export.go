package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"timekeep/internal/store"
)

// TrackingSource provides the timer engine's state.
type TrackingSource interface {
	State() store.Tracking
}

// ChecklistSource provides the completion ledger's state.
type ChecklistSource interface {
	State() store.Checklist
}

// ReminderSource provides the reminder scheduler's state.
type ReminderSource interface {
	State() store.ReminderState
}

// ThemeSource provides the current theme.
type ThemeSource interface {
	Theme() store.Theme
}

// Exporter assembles the combined snapshot document from the live services.
type Exporter struct {
	Tracking  TrackingSource
	Checklist ChecklistSource
	Reminders ReminderSource
	Settings  ThemeSource
}

// Document is the full snapshot in its external wire shape.
type Document struct {
	Activities      []store.Activity             `json:"activities"`
	SessionHistory  []store.Session              `json:"sessionHistory"`
	DailyTodos      []store.DailyTodo            `json:"dailyTodos"`
	TodoCompletions []store.TodoCompletion       `json:"todoCompletions"`
	Days            map[string]store.Day         `json:"days"`
	Reminders       []store.Reminder             `json:"reminders"`
	ReminderHistory []store.ReminderHistoryEntry `json:"reminderHistory"`
	ActiveTask      *store.ActiveMarker          `json:"activeTask"`
	Theme           store.Theme                  `json:"theme"`
}

// Document captures the current state of every service.
func (e *Exporter) Document() Document {
	tracking := e.Tracking.State()
	checklist := e.Checklist.State()
	reminders := e.Reminders.State()

	return Document{
		Activities:      tracking.Activities,
		SessionHistory:  tracking.SessionHistory,
		DailyTodos:      checklist.Todos,
		TodoCompletions: checklist.Completions,
		Days:            tracking.Days,
		Reminders:       reminders.Reminders,
		ReminderHistory: reminders.History,
		ActiveTask:      tracking.Active,
		Theme:           e.Settings.Theme(),
	}
}

// JSON renders the snapshot document pretty-printed.
func (e *Exporter) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(e.Document(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// CSV renders one row per task per day, hours to two decimal places, days
// in ascending date order.
func (e *Exporter) CSV() string {
	doc := e.Document()

	dates := make([]string, 0, len(doc.Days))
	for date := range doc.Days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var b strings.Builder
	b.WriteString("Date,Task,Time (hours)\n")
	for _, date := range dates {
		for _, task := range doc.Days[date].Tasks {
			hours := float64(task.TimeSpent) / 3600
			fmt.Fprintf(&b, "%s,%s,%.2f\n", date, task.Name, hours)
		}
	}
	return b.String()
}
