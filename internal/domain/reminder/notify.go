package reminder

import (
	"context"
	"log/slog"
)

// Notification is the payload emitted when a reminder becomes due.
// Presentation (toast, OS notification) is the collaborator's concern.
type Notification struct {
	Name string
	Body string
}

// Notifier receives due-reminder events.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// LogNotifier logs notifications through slog. It is the default sink when
// no presentation collaborator is attached.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l *LogNotifier) Notify(ctx context.Context, n Notification) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "reminder due", "name", n.Name, "body", n.Body)
}
