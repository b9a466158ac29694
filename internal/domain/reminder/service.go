package reminder

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"timekeep/internal/store"
)

// DefaultPollInterval is the scheduler cadence. Correctness does not depend
// on it; a finer cadence only improves responsiveness.
const DefaultPollInterval = time.Minute

const defaultBody = "Time for your reminder!"

// Service owns reminder definitions and the acknowledgement history, and
// polls wall-clock time to raise due events.
type Service struct {
	store    store.Store
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string

	mu    sync.Mutex
	state *store.ReminderState
}

// NewService creates a new reminder scheduler. Call Initialize before use.
func NewService(st store.Store, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = &LogNotifier{Logger: logger}
	}
	return &Service{
		store:    st,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Initialize loads the persisted reminder state.
func (s *Service) Initialize(ctx context.Context) error {
	snap, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("reminder state unavailable, starting with defaults", "error", err)
		snap = &store.Snapshot{Reminders: store.DefaultReminders()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = &snap.Reminders
	return nil
}

// AddRequest describes a new reminder definition.
type AddRequest struct {
	Name            string
	Type            store.ReminderType
	IntervalSeconds int64
	DailyTime       string
}

// Add creates a reminder. Interval reminders need a positive interval in
// seconds; daily reminders need a HH:MM time of day.
func (s *Service) Add(ctx context.Context, req AddRequest) (*store.Reminder, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	rem := store.Reminder{
		ID:            s.newID(),
		Name:          name,
		Type:          req.Type,
		LastTriggered: s.now(),
	}
	switch req.Type {
	case store.ReminderInterval:
		if req.IntervalSeconds <= 0 {
			return nil, ErrInvalidInput
		}
		rem.IntervalSeconds = req.IntervalSeconds
	case store.ReminderDaily:
		if _, err := time.Parse("15:04", req.DailyTime); err != nil {
			return nil, ErrInvalidInput
		}
		rem.DailyTime = req.DailyTime
	default:
		return nil, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Reminders = append(s.state.Reminders, rem)
	s.persistLocked(ctx)
	return &rem, nil
}

// Delete removes a reminder. History entries are an independent append-only
// log and are kept.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Reminders {
		if s.state.Reminders[i].ID == id {
			s.state.Reminders = append(s.state.Reminders[:i], s.state.Reminders[i+1:]...)
			s.persistLocked(ctx)
			return nil
		}
	}
	return ErrReminderNotFound
}

// ToggleChecked flips today's acknowledgement. Every false-to-true flip
// appends one history entry; the ledger records completion events, not
// state, so unchecking and re-checking logs again.
func (s *Service) ToggleChecked(ctx context.Context, id string) (*store.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Reminders {
		rem := &s.state.Reminders[i]
		if rem.ID != id {
			continue
		}
		if !rem.CheckedToday {
			now := s.now()
			s.state.History = append(s.state.History, store.ReminderHistoryEntry{
				ReminderID:   rem.ID,
				ReminderName: rem.Name,
				CompletedAt:  now,
				Date:         store.Date(now),
			})
		}
		rem.CheckedToday = !rem.CheckedToday
		s.persistLocked(ctx)
		copied := *rem
		return &copied, nil
	}
	return nil, ErrReminderNotFound
}

// Poll evaluates every reminder against the current wall-clock time and
// notifies for each one that is due. On the first poll of a new calendar day
// all acknowledgements reset. A daily reminder whose minute passed while the
// process was down is skipped until the next day; there is no catch-up.
func (s *Service) Poll(ctx context.Context) {
	now := s.now()
	today := store.Date(now)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return
	}

	dirty := false
	if s.state.LastPollDate != "" && s.state.LastPollDate != today {
		for i := range s.state.Reminders {
			if s.state.Reminders[i].CheckedToday {
				s.state.Reminders[i].CheckedToday = false
				dirty = true
			}
		}
	}
	if s.state.LastPollDate != today {
		s.state.LastPollDate = today
		dirty = true
	}

	for i := range s.state.Reminders {
		rem := &s.state.Reminders[i]
		if !s.dueLocked(rem, now) {
			continue
		}
		s.notifier.Notify(ctx, Notification{Name: rem.Name, Body: defaultBody})
		rem.LastTriggered = now
		dirty = true
	}

	if dirty {
		s.persistLocked(ctx)
	}
}

func (s *Service) dueLocked(rem *store.Reminder, now time.Time) bool {
	switch rem.Type {
	case store.ReminderInterval:
		if rem.CheckedToday || rem.IntervalSeconds <= 0 {
			return false
		}
		return now.Sub(rem.LastTriggered) >= time.Duration(rem.IntervalSeconds)*time.Second
	case store.ReminderDaily:
		if now.Format("15:04") != rem.DailyTime {
			return false
		}
		return store.Date(rem.LastTriggered) != store.Date(now)
	default:
		return false
	}
}

// State returns a deep copy of the reminder document.
func (s *Service) State() store.ReminderState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return store.ReminderState{
		Reminders:    append([]store.Reminder(nil), s.state.Reminders...),
		History:      append([]store.ReminderHistoryEntry(nil), s.state.History...),
		LastPollDate: s.state.LastPollDate,
	}
}

// Run polls immediately and then on a fixed cadence until the context is
// cancelled.
func (s *Service) Run(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = DefaultPollInterval
	}

	s.Poll(ctx)
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Poll(ctx)
		}
	}
}

func (s *Service) persistLocked(ctx context.Context) {
	if err := s.store.SaveReminders(ctx, s.state); err != nil {
		s.logger.Warn("failed to persist reminder state, continuing in memory", "error", err)
	}
}
