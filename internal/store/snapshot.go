package store

import "time"

// DateLayout is the calendar-day key format used throughout the snapshot.
const DateLayout = "2006-01-02"

// Date formats a timestamp as a calendar-day key in local time.
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// Theme is the UI color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Activity is a named unit of work with an accumulated running total.
type Activity struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	TotalSeconds int64  `json:"totalSeconds"`
}

// Session is an immutable record of one continuous active interval.
type Session struct {
	ActivityID      string    `json:"activityId"`
	ActivityName    string    `json:"activityName"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationSeconds int64     `json:"durationSeconds"`
}

// ActiveMarker points at the single currently running activity, if any.
type ActiveMarker struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"startTime"`
}

// DayTask is the per-day time bucket for one activity.
type DayTask struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TimeSpent int64  `json:"timeSpent"`
}

// Day holds all per-activity buckets for one calendar day.
type Day struct {
	Tasks []DayTask `json:"tasks"`
}

// Tracking is the timer engine's document.
type Tracking struct {
	Activities     []Activity     `json:"activities"`
	SessionHistory []Session      `json:"sessionHistory"`
	Days           map[string]Day `json:"days"`
	Active         *ActiveMarker  `json:"activeTask"`
}

// DailyTodo is a checklist template, not scoped to a date.
type DailyTodo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TodoCompletion marks one todo's completion state on one calendar day.
// Absence of a record means not completed.
type TodoCompletion struct {
	TodoID    string `json:"todoId"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// Checklist is the daily-todo document.
type Checklist struct {
	Todos       []DailyTodo      `json:"dailyTodos"`
	Completions []TodoCompletion `json:"todoCompletions"`
}

// ReminderType selects the trigger rule for a reminder.
type ReminderType string

const (
	ReminderInterval ReminderType = "interval"
	ReminderDaily    ReminderType = "daily"
)

// Reminder is a recurring reminder definition. Exactly one of
// IntervalSeconds and DailyTime is set, matching Type.
type Reminder struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Type            ReminderType `json:"type"`
	IntervalSeconds int64        `json:"interval,omitempty"`
	DailyTime       string       `json:"dailyTime,omitempty"`
	LastTriggered   time.Time    `json:"lastTriggered"`
	CheckedToday    bool         `json:"checkedToday"`
}

// ReminderHistoryEntry logs one manual reminder acknowledgement.
type ReminderHistoryEntry struct {
	ReminderID   string    `json:"reminderId"`
	ReminderName string    `json:"reminderName"`
	CompletedAt  time.Time `json:"completedAt"`
	Date         string    `json:"date"`
}

// ReminderState is the scheduler's document. LastPollDate carries the
// day-rollover bookkeeping across restarts.
type ReminderState struct {
	Reminders    []Reminder             `json:"reminders"`
	History      []ReminderHistoryEntry `json:"reminderHistory"`
	LastPollDate string                 `json:"lastPollDate,omitempty"`
}

// Snapshot aggregates every persisted document.
type Snapshot struct {
	Tracking  Tracking
	Checklist Checklist
	Reminders ReminderState
	Theme     Theme
}

// DefaultActivityNames are seeded when no tracking document exists at all.
var DefaultActivityNames = []string{"Doing Nothing", "Working", "Studying"}

// DefaultTracking returns a freshly seeded tracking document.
func DefaultTracking(newID func() string) Tracking {
	activities := make([]Activity, 0, len(DefaultActivityNames))
	for _, name := range DefaultActivityNames {
		activities = append(activities, Activity{ID: newID(), Name: name})
	}
	return Tracking{
		Activities: activities,
		Days:       map[string]Day{},
	}
}

// DefaultChecklist returns an empty checklist document.
func DefaultChecklist() Checklist {
	return Checklist{}
}

// DefaultReminders returns an empty reminder document.
func DefaultReminders() ReminderState {
	return ReminderState{}
}
